package fraud

import "strconv"

// Clustering constants. These are presentation heuristics tuned so that
// roughly a third of flagged transactions land in a small shared pool of
// addresses, simulating a coordinated fraud ring. The pool lives in the
// 203.0.113.0/24 documentation range, so no synthesized address is ever
// routable.
const (
	sharedPoolModulus = 3
	sharedPoolSize    = 8
	sharedBucketRange = 20
	sharedBucketBase  = 10
	sharedPoolPrefix  = "203.0.113."
)

// Fallback octet values used when a hash byte comes out zero, which would
// render as an invalid-looking address like 0.x.y.z.
var octetFallbacks = [4]uint32{10, 20, 30, 40}

// hashSeed is the 32-bit rolling hash h = h*31 + code over the seed string.
// The multiplier, modulus and left-to-right order are load-bearing: output
// addresses must stay bit-for-bit stable across releases because they are
// persisted in screenshots, exports and test fixtures downstream.
func hashSeed(s string) uint32 {
	var h uint32
	for _, r := range s {
		h = h*31 + uint32(r)
	}
	return h
}

// addressFromSeed extracts four octets from the hash of seed, low byte
// first, substituting the fixed fallbacks for zero bytes.
func addressFromSeed(seed string) string {
	h := hashSeed(seed)
	var octets [4]string
	for i := 0; i < 4; i++ {
		b := (h >> (8 * i)) & 0xff
		if b == 0 {
			b = octetFallbacks[i]
		}
		octets[i] = strconv.FormatUint(uint64(b), 10)
	}
	return octets[0] + "." + octets[1] + "." + octets[2] + "." + octets[3]
}

// sharedAddress returns the pooled fraud-ring address for a bucket index.
func sharedAddress(bucket uint32) string {
	idx := bucket%sharedBucketRange + sharedBucketBase
	return sharedPoolPrefix + strconv.FormatUint(uint64(idx), 10)
}

// SynthesizeIP derives the display IP address for a flagged transaction from
// the (userID, transactionID) pair. It is a pure function: identical inputs
// always yield the identical address. Records whose mix hash is divisible by
// three are assigned to one of eight shared pool addresses; the rest get a
// per-transaction address.
func SynthesizeIP(userID, transactionID string) string {
	h := hashSeed("mix:" + userID + ":" + transactionID)
	if h%sharedPoolModulus == 0 {
		return sharedAddress((h >> 3) % sharedPoolSize)
	}
	return addressFromSeed("fraud:" + userID + ":" + transactionID)
}

// BaselineIP derives a user's stable "home" display address. No clustering
// is applied.
func BaselineIP(userID string) string {
	return addressFromSeed("base:" + userID)
}

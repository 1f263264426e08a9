package fraud

import (
	"github.com/shopspring/decimal"

	"github.com/username/fraudsight/src/models"
)

// unknownUserSeed labels flagged records that arrive without an explicit
// user reference. The IP seed is fixed before attribute matching runs, so a
// later match does not change the synthesized address.
const unknownUserSeed = "unknown"

// Reconcile resolves the owning user for every flagged transaction.
//
// A record carrying an explicit user reference is trusted outright: the
// referenced user is looked up directly, and if absent the record stays
// without a resolved name/city — the attribute scan is never used as a
// fallback. All other records are matched against every transaction of
// every user on exact amount, exact location string and normalized date.
// The scan follows the input iteration order and the last matching pair
// wins; callers must not depend on which candidate prevails when several
// tie across users.
func Reconcile(users []models.User, flagged []models.FlaggedTransaction) []models.EnrichedFlaggedTransaction {
	enriched := make([]models.EnrichedFlaggedTransaction, 0, len(flagged))

	for _, f := range flagged {
		date := ComposeFlaggedDate(f)

		seedUser := f.UserRef
		if seedUser == "" {
			seedUser = unknownUserSeed
		}

		e := models.EnrichedFlaggedTransaction{
			ID:        f.ID,
			Amount:    f.Amount,
			Location:  f.Location,
			Date:      date,
			IPAddress: SynthesizeIP(seedUser, f.ID),
		}

		if f.UserRef != "" {
			ref := f.UserRef
			e.UserID = &ref
			if u, ok := findUser(users, f.UserRef); ok {
				name, city := u.Name, u.City
				e.UserName = &name
				e.UserCity = &city
			}
			enriched = append(enriched, e)
			continue
		}

		for i := range users {
			u := &users[i]
			for _, tx := range u.Transactions {
				if matches(tx, f.Amount, f.Location, date) {
					id, name, city := u.ID, u.Name, u.City
					e.UserID = &id
					e.UserName = &name
					e.UserCity = &city
				}
			}
		}
		enriched = append(enriched, e)
	}

	return enriched
}

// ReconcileForUser returns the flagged transactions attributable to a single
// known user, using the same three-way predicate restricted to that user's
// transactions. Each flagged record appears at most once regardless of how
// many of the user's own transactions tie. The synthesized IP is seeded with
// the known user id.
func ReconcileForUser(user models.User, flagged []models.FlaggedTransaction, userID string) []models.EnrichedFlaggedTransaction {
	var matched []models.EnrichedFlaggedTransaction

	for _, f := range flagged {
		date := ComposeFlaggedDate(f)

		found := false
		for _, tx := range user.Transactions {
			if matches(tx, f.Amount, f.Location, date) {
				found = true
			}
		}
		if !found {
			continue
		}

		id, name, city := userID, user.Name, user.City
		matched = append(matched, models.EnrichedFlaggedTransaction{
			ID:        f.ID,
			Amount:    f.Amount,
			Location:  f.Location,
			Date:      date,
			IPAddress: SynthesizeIP(userID, f.ID),
			UserID:    &id,
			UserName:  &name,
			UserCity:  &city,
		})
	}

	return matched
}

// matches is the three-way attribute predicate: exact amount, exact location
// string (empty matches empty) and normalized-date equality.
func matches(tx models.Transaction, amount decimal.Decimal, location, date string) bool {
	return tx.Amount.Equal(amount) &&
		tx.Location == location &&
		NormalizeDate(tx.Date) == date
}

func findUser(users []models.User, id string) (*models.User, bool) {
	for i := range users {
		if users[i].ID == id {
			return &users[i], true
		}
	}
	return nil, false
}

package store

import (
	"context"
	"encoding/json"

	"github.com/username/fraudsight/src/models"
)

// The source documents carry two parallel naming conventions for the same
// logical fields (a legacy of mixed writers). The adapter accepts both and
// emits only the canonical model.

// LoadUsers returns every user document in collection order, decoded into
// the canonical model with transaction order preserved.
func (s *Store) LoadUsers(ctx context.Context) ([]models.User, error) {
	docs, err := s.List(ctx, CollectionUsers)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, decodeUser(doc.Key, doc.Doc))
	}
	return users, nil
}

// LoadUser fetches and decodes a single user. The second return value
// reports existence.
func (s *Store) LoadUser(ctx context.Context, id string) (models.User, bool, error) {
	raw, ok, err := s.Get(ctx, CollectionUsers, id)
	if err != nil || !ok {
		return models.User{}, false, err
	}
	return decodeUser(id, raw), true, nil
}

// LoadFlagged returns every flagged-transaction document in collection
// order, decoded into the canonical model.
func (s *Store) LoadFlagged(ctx context.Context) ([]models.FlaggedTransaction, error) {
	docs, err := s.List(ctx, CollectionFlagged)
	if err != nil {
		return nil, err
	}
	flagged := make([]models.FlaggedTransaction, 0, len(docs))
	for _, doc := range docs {
		flagged = append(flagged, decodeFlagged(doc.Key, doc.Doc))
	}
	return flagged, nil
}

func decodeUser(id string, raw json.RawMessage) models.User {
	fields := objectFields(raw)
	user := models.User{
		ID:   id,
		Name: stringField(fields, "name", "Name"),
		City: stringField(fields, "city", "City"),
	}

	txRaw, ok := pick(fields, "sendTransaction", "SendTransaction")
	if !ok {
		return user
	}
	entries, err := parseOrderedObject(txRaw)
	if err != nil {
		return user
	}
	for _, entry := range entries {
		txFields := objectFields(entry.Raw)
		user.Transactions = append(user.Transactions, models.Transaction{
			ID:       entry.Key,
			Amount:   models.CoerceAmount(anyField(txFields, "amount", "Amount")),
			Location: stringField(txFields, "location", "Location"),
			Date:     stringField(txFields, "date", "Date"),
		})
	}
	return user
}

func decodeFlagged(id string, raw json.RawMessage) models.FlaggedTransaction {
	fields := objectFields(raw)

	location := stringField(fields, "Location", "location")
	if location == "" {
		// Some writers used a City field for the same attribute.
		location = stringField(fields, "City", "city")
	}

	return models.FlaggedTransaction{
		ID:         id,
		Amount:     models.CoerceAmount(anyField(fields, "Amount", "amount")),
		Location:   location,
		RawDate:    stringField(fields, "Date", "date"),
		Day:        stringField(fields, "Day", "day"),
		Month:      stringField(fields, "Month", "month"),
		Year:       stringField(fields, "Year", "year"),
		UserRef:    stringField(fields, "User", "user"),
		ReportedIP: stringField(fields, "IPAddress", "ipAddress"),
	}
}

// objectFields decodes the top level of a document. Malformed documents
// decode to an empty field set rather than failing; missing fields then
// coerce to zero values downstream.
func objectFields(raw json.RawMessage) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

// pick returns the first present field among the given aliases.
func pick(fields map[string]json.RawMessage, aliases ...string) (json.RawMessage, bool) {
	for _, alias := range aliases {
		if raw, ok := fields[alias]; ok {
			return raw, true
		}
	}
	return nil, false
}

func anyField(fields map[string]json.RawMessage, aliases ...string) any {
	raw, ok := pick(fields, aliases...)
	if !ok {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func stringField(fields map[string]json.RawMessage, aliases ...string) string {
	return models.CoerceString(anyField(fields, aliases...))
}

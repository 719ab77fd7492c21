package handler

import (
	"strings"
	"time"

	domainerrors "dealradar/internal/domain/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// protectedFields can never be set through a partial update.
var protectedFields = map[string]struct{}{
	"id":        {},
	"_id":       {},
	"createdAt": {},
	"updatedAt": {},
	"bounty":    {},
}

// dateFields are wire strings that must be stored as timestamps.
var dateFields = map[string]struct{}{
	"startDate":         {},
	"endDate":           {},
	"manufacturingDate": {},
	"expiryDate":        {},
}

// sanitizeUpdate prepares a bound JSON object for a partial update:
// protected keys are dropped, id references become ObjectIDs, and date
// strings become timestamps. A malformed id or date fails the request.
func sanitizeUpdate(raw map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(raw))

	for key, value := range raw {
		if _, skip := protectedFields[key]; skip {
			continue
		}

		str, isString := value.(string)

		switch {
		case isString && strings.HasSuffix(key, "Id"):
			oid, err := primitive.ObjectIDFromHex(str)
			if err != nil {
				return nil, domainerrors.ErrValidationFailed.WrapMessage("malformed " + key)
			}
			fields[key] = oid

		case isString && isDateField(key):
			ts, err := time.Parse(time.RFC3339, str)
			if err != nil {
				return nil, domainerrors.ErrValidationFailed.WrapMessage("malformed " + key)
			}
			fields[key] = ts

		default:
			fields[key] = value
		}
	}

	if len(fields) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("no updatable fields supplied")
	}

	return fields, nil
}

func isDateField(key string) bool {
	_, ok := dateFields[key]

	return ok
}

// objectIDParam parses the :id route parameter.
func objectIDParam(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domainerrors.ErrValidationFailed.WrapMessage("malformed id")
	}

	return oid, nil
}

// objectIDs parses a list of hex ids.
func objectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		oid, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("malformed id list")
		}
		ids = append(ids, oid)
	}

	return ids, nil
}

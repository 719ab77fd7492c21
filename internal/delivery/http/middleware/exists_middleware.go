package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source names where the checked value is read from.
type Source string

// Value sources.
const (
	SourceBody  Source = "body"
	SourceParam Source = "param"
)

// Policy is the expected existence outcome.
type Policy string

// Policies.
const (
	MustExist    Policy = "mustExist"
	MustNotExist Policy = "mustNotExist"
)

// Check is one closed existence rule, fixed at route registration.
type Check struct {
	Entity repository.EntityKind
	Source Source
	// Field is the JSON key (body source) or route parameter name (param
	// source), and also the store field probed, except "id"/"_id" which
	// probe the primary key.
	Field  string
	Policy Policy
}

// ExistsMiddleware verifies referenced entities before a mutation runs.
// A MustExist miss is a 400, a MustNotExist hit is a 409; controllers
// never see requests that fail their reference checks.
type ExistsMiddleware struct {
	checker repository.ExistenceChecker
}

// NewExistsMiddleware is the constructor for ExistsMiddleware.
func NewExistsMiddleware(checker repository.ExistenceChecker) *ExistsMiddleware {
	return &ExistsMiddleware{checker: checker}
}

// Require builds the middleware enforcing the given checks in order.
func (m *ExistsMiddleware) Require(checks ...Check) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var body map[string]any

			for _, check := range checks {
				raw, ok, err := m.extract(c, check, &body)
				if err != nil {
					return err
				}
				if !ok {
					// Absent optional reference: nothing to verify.
					continue
				}

				field, value, err := storeQuery(check.Field, raw)
				if err != nil {
					return domainerrors.ErrValidationFailed.WrapMessage("malformed " + check.Field)
				}

				exists, err := m.checker.Exists(c.Request().Context(), check.Entity, field, value)
				if err != nil {
					return errors.Wrap(err, "existence check failed")
				}

				if check.Policy == MustExist && !exists {
					return domainerrors.ErrReferenceNotFound.WrapMessage(check.Field + " does not exist")
				}
				if check.Policy == MustNotExist && exists {
					return domainerrors.ErrConflict.WrapMessage(check.Field + " already exists")
				}
			}

			return next(c)
		}
	}
}

// extract pulls the checked value from the configured source. The body
// is read once, cached across checks, and restored for the handler.
func (m *ExistsMiddleware) extract(c echo.Context, check Check, body *map[string]any) (string, bool, error) {
	if check.Source == SourceParam {
		value := c.Param(check.Field)

		return value, value != "", nil
	}

	if *body == nil {
		raw, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return "", false, errors.Wrap(err, "failed to read request body")
		}
		c.Request().Body = io.NopCloser(bytes.NewReader(raw))

		*body = map[string]any{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, body); err != nil {
				return "", false, domainerrors.ErrValidationFailed.WrapMessage("request body is not valid JSON")
			}
		}
	}

	value, ok := (*body)[check.Field]
	if !ok {
		return "", false, nil
	}

	str, ok := value.(string)
	if !ok || str == "" {
		return "", false, nil
	}

	return str, true, nil
}

// storeQuery maps a checked field onto the store field and typed value.
// Id-shaped fields are probed as ObjectIDs; everything else verbatim.
func storeQuery(field, raw string) (string, any, error) {
	if field == "id" || field == "_id" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return "", nil, err
		}

		return "_id", oid, nil
	}

	if strings.HasSuffix(field, "Id") {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return "", nil, err
		}

		return field, oid, nil
	}

	return field, raw, nil
}

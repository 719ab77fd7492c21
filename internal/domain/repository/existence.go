package repository

import (
	"context"

	"github.com/pkg/errors"
)

// EntityKind enumerates the entity collections existence checks can target.
type EntityKind string

// Entity kinds served by the existence checker.
const (
	KindUser        EntityKind = "user"
	KindBusiness    EntityKind = "business"
	KindProduct     EntityKind = "product"
	KindDeal        EntityKind = "deal"
	KindCategory    EntityKind = "category"
	KindSubCategory EntityKind = "subcategory"
)

// ErrUnknownEntityKind is returned for a kind outside the enumeration.
var ErrUnknownEntityKind = errors.New("unknown entity kind")

// ExistenceChecker answers the pre-mutation guard question: does a
// document with field == value exist in the kind's collection? One
// implementation serves every entity kind.
type ExistenceChecker interface {
	Exists(ctx context.Context, kind EntityKind, field string, value any) (bool, error)
}

package scope

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"forms_portal/internal/models"
)

// ErrNoBank is returned for agent identities with no bank assignment.
// Surfacing it beats silently widening the query to every bank's rows.
var ErrNoBank = errors.New("agent is not assigned to any bank")

// ForIdentity returns the row-visibility scope for a table carrying
// user_id/bank_id columns: users see their own rows, agents their bank's
// rows, admins everything.
func ForIdentity(ident models.Identity) (func(*gorm.DB) *gorm.DB, error) {
	switch ident.Role {
	case models.RoleUser:
		userID := ident.UserID
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", userID)
		}, nil
	case models.RoleAgent:
		if ident.BankID == nil {
			return nil, ErrNoBank
		}
		bankID := *ident.BankID
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("bank_id = ?", bankID)
		}, nil
	case models.RoleAdmin:
		return func(db *gorm.DB) *gorm.DB {
			return db
		}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", ident.Role)
	}
}

// Filters are caller-supplied narrowing criteria. They are ANDed after the
// identity scope, so a user-scoped caller passing someone else's userId
// narrows their own rows to nothing instead of widening visibility.
type Filters struct {
	BankID      *uint
	SectionID   *uint
	UserID      *uint
	IsSubmitted *bool
}

// Apply adds the filters to the query.
func (f Filters) Apply(db *gorm.DB) *gorm.DB {
	if f.BankID != nil {
		db = db.Where("bank_id = ?", *f.BankID)
	}
	if f.SectionID != nil {
		db = db.Where("section_id = ?", *f.SectionID)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.IsSubmitted != nil {
		db = db.Where("is_submitted = ?", *f.IsSubmitted)
	}
	return db
}

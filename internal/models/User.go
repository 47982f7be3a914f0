package models

import "gorm.io/gorm"

const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
	RoleUser  = "user"
)

// ValidRole reports whether r is one of the three portal roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	}
	return false
}

// Identity is the decoded credential attached to a request after
// authentication. BankID is set only for agents.
type Identity struct {
	UserID uint
	Role   string
	BankID *uint
}

type User struct {
	gorm.Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // "admin", "agent", "user"
	BankID       *uint  `json:"bank_id,omitempty"`

	Bank *Bank `gorm:"foreignKey:BankID" json:"bank,omitempty"`
}

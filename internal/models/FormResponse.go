package models

import (
	"time"

	"gorm.io/gorm"
)

// FormResponse holds one user's answers to one section. The composite
// unique index backs the atomic save upsert: two concurrent first saves
// for the same (user, section) collapse into a single row.
type FormResponse struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_responses_user_section"`
	SectionID   uint       `json:"section_id" gorm:"uniqueIndex:idx_responses_user_section"`
	BankID      uint       `json:"bank_id"`
	Answers     AnswerList `json:"responses" gorm:"column:answers;type:jsonb"`
	IsSubmitted bool       `json:"is_submitted"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Section *Section `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Bank    *Bank    `gorm:"foreignKey:BankID" json:"bank,omitempty"`
}

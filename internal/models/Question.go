package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Question types rendered by the portal frontend.
const (
	QuestionText     = "text"
	QuestionTextarea = "textarea"
	QuestionMCQ      = "mcq"
	QuestionCheckbox = "checkbox"
	QuestionDropdown = "dropdown"
	QuestionNumber   = "number"
	QuestionDate     = "date"
	QuestionEmail    = "email"
	QuestionPhone    = "phone"
)

// ValidQuestionType reports whether t is a renderable question type.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionText, QuestionTextarea, QuestionMCQ, QuestionCheckbox,
		QuestionDropdown, QuestionNumber, QuestionDate, QuestionEmail, QuestionPhone:
		return true
	}
	return false
}

// ChoiceType reports whether t requires a non-empty options list.
func ChoiceType(t string) bool {
	return t == QuestionMCQ || t == QuestionCheckbox || t == QuestionDropdown
}

type QuestionOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// QuestionOptions is stored as a jsonb column.
type QuestionOptions []QuestionOption

func (o QuestionOptions) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *QuestionOptions) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("unsupported options column type %T", src)
	}
}

type Question struct {
	gorm.Model
	SectionID   uint            `json:"section_id"`
	Type        string          `json:"type"`
	Label       string          `json:"label"`
	Placeholder string          `json:"placeholder,omitempty"`
	Required    bool            `json:"required"`
	Options     QuestionOptions `json:"options,omitempty" gorm:"type:jsonb"`
	Order       int             `json:"order" gorm:"column:order_index"`
}

// Validate checks the type enum and the options-for-choice-types rule.
func (q *Question) Validate() error {
	if !ValidQuestionType(q.Type) {
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	if ChoiceType(q.Type) && len(q.Options) == 0 {
		return errors.New("options are required for choice question types")
	}
	return nil
}

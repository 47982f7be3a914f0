package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AnswerValue is the value half of one answer. Checkbox questions carry a
// list of selected option values; every other type carries a single string.
// The wire form is either a JSON string or a JSON array of strings.
type AnswerValue struct {
	str  string
	list []string
	many bool
}

// StringValue builds a single-string answer value.
func StringValue(s string) AnswerValue {
	return AnswerValue{str: s}
}

// ListValue builds a multi-select answer value.
func ListValue(vs ...string) AnswerValue {
	return AnswerValue{list: vs, many: true}
}

// IsList reports whether the value is a multi-select list.
func (v AnswerValue) IsList() bool { return v.many }

// Text returns the single-string form; empty for list values.
func (v AnswerValue) Text() string { return v.str }

// List returns the multi-select form; nil for string values.
func (v AnswerValue) List() []string { return v.list }

// Empty reports whether nothing has been answered yet. Auto-save payloads
// routinely contain empty values for questions the user has not reached.
func (v AnswerValue) Empty() bool {
	if v.many {
		return len(v.list) == 0
	}
	return v.str == ""
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.many {
		return json.Marshal(v.list)
	}
	return json.Marshal(v.str)
}

func (v *AnswerValue) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		v.many = true
		v.str = ""
		return json.Unmarshal(b, &v.list)
	}
	v.many = false
	v.list = nil
	return json.Unmarshal(b, &v.str)
}

// Answer is one user's value for one question.
type Answer struct {
	QuestionID uint        `json:"questionId"`
	Value      AnswerValue `json:"value"`
}

// AnswerList is stored as a jsonb column on form_responses.
type AnswerList []Answer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AnswerList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported answers column type %T", src)
	}
}

// ValidateAnswers checks an answer payload against the section's questions:
// every answer must reference a known question and carry a value of the
// shape its question type expects. Empty values pass, since partial
// auto-saves are the normal case.
func ValidateAnswers(answers AnswerList, questions []Question) error {
	byID := make(map[uint]*Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	for _, ans := range answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			return fmt.Errorf("question %d does not belong to this section", ans.QuestionID)
		}
		if ans.Value.Empty() {
			continue
		}
		if err := validateValue(q, ans.Value); err != nil {
			return fmt.Errorf("question %d: %w", ans.QuestionID, err)
		}
	}
	return nil
}

func validateValue(q *Question, v AnswerValue) error {
	if q.Type == QuestionCheckbox {
		if !v.IsList() {
			return fmt.Errorf("%s answers must be a list", q.Type)
		}
		for _, item := range v.List() {
			if !optionAllowed(q.Options, item) {
				return fmt.Errorf("%q is not one of the offered options", item)
			}
		}
		return nil
	}

	if v.IsList() {
		return fmt.Errorf("%s answers must be a single value", q.Type)
	}

	switch q.Type {
	case QuestionMCQ, QuestionDropdown:
		if !optionAllowed(q.Options, v.Text()) {
			return fmt.Errorf("%q is not one of the offered options", v.Text())
		}
	case QuestionNumber:
		if _, err := strconv.ParseFloat(v.Text(), 64); err != nil {
			return fmt.Errorf("%q is not a number", v.Text())
		}
	case QuestionDate:
		if _, err := time.Parse("2006-01-02", v.Text()); err != nil {
			return fmt.Errorf("%q is not a date", v.Text())
		}
	case QuestionEmail:
		if !strings.Contains(v.Text(), "@") {
			return fmt.Errorf("%q is not an email address", v.Text())
		}
	}
	return nil
}

func optionAllowed(opts QuestionOptions, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

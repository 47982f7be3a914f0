package models

import "gorm.io/gorm"

// Section is a named group of questions belonging to one bank.
// Deleting a section cascades to its questions at the storage layer.
type Section struct {
	gorm.Model
	BankID      uint   `json:"bank_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order" gorm:"column:order_index"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	Questions []Question `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE;" json:"questions"`
}

package models

import "gorm.io/gorm"

// Bank is a tenant organization owning a set of form sections.
type Bank struct {
	gorm.Model
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	Sections []Section `gorm:"foreignKey:BankID;constraint:OnDelete:CASCADE;" json:"sections,omitempty"`
}

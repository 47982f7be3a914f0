package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"forms_portal/internal/config"
	"forms_portal/internal/models"
)

func preloadQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("order_index")
}

// ListSections lists sections, optionally restricted to one bank, with
// their questions in display order.
func ListSections(c *gin.Context) {
	bankID, err := parseUintQuery(c, "bankId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid bankId filter")
		return
	}

	query := config.DB.Preload("Questions", preloadQuestions).Order("order_index")
	if bankID != nil {
		query = query.Where("bank_id = ?", *bankID)
	}

	var sections []models.Section
	if err := query.Find(&sections).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, sections)
}

// GetSection retrieves one section with its questions
func GetSection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var section models.Section
	if err := config.DB.Preload("Questions", preloadQuestions).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Section not found")
		} else {
			respondServerError(c, err)
		}
		return
	}
	respondOK(c, section)
}

// CreateSection adds a section to a bank
func CreateSection(c *gin.Context) {
	var input struct {
		BankID      uint   `json:"bank_id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Order       int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var bank models.Bank
	if err := config.DB.First(&bank, input.BankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusBadRequest, "bank with the provided bank_id does not exist")
		} else {
			respondServerError(c, err)
		}
		return
	}

	section := models.Section{
		BankID:      input.BankID,
		Title:       input.Title,
		Description: input.Description,
		Order:       input.Order,
		IsActive:    true,
		Questions:   []models.Question{},
	}
	if err := config.DB.Create(&section).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondCreated(c, section)
}

// UpdateSection modifies an existing section
func UpdateSection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var section models.Section
	if err := config.DB.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Section not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Order       *int    `json:"order"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Title != nil {
		section.Title = *input.Title
	}
	if input.Description != nil {
		section.Description = *input.Description
	}
	if input.Order != nil {
		section.Order = *input.Order
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&section).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, section)
}

// DeleteSection removes a section and its questions
func DeleteSection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var section models.Section
	if err := config.DB.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Section not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	if err := config.DB.Where("section_id = ?", section.ID).Delete(&models.Question{}).Error; err != nil {
		respondServerError(c, err)
		return
	}
	if err := config.DB.Delete(&section).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondMessage(c, "Section deleted successfully")
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"forms_portal/internal/config"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"
)

// CreateBank registers a new tenant bank
func CreateBank(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Logo        string `json:"logo"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	bank := models.Bank{
		Name:        input.Name,
		Logo:        input.Logo,
		Description: input.Description,
		IsActive:    true,
	}
	if err := config.DB.Create(&bank).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondCreated(c, bank)
}

// ListBanks lists banks. Admins see every bank; everyone else only the
// active ones.
func ListBanks(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	query := config.DB.Model(&models.Bank{})
	if ident.Role != models.RoleAdmin {
		query = query.Where("is_active = ?", true)
	}

	var banks []models.Bank
	if err := query.Order("name").Find(&banks).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, banks)
}

// GetBank retrieves a bank by ID
func GetBank(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var bank models.Bank
	if err := config.DB.First(&bank, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Bank not found")
		} else {
			respondServerError(c, err)
		}
		return
	}
	respondOK(c, bank)
}

// UpdateBank modifies an existing bank
func UpdateBank(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var bank models.Bank
	if err := config.DB.First(&bank, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Bank not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Logo        *string `json:"logo"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			respondError(c, http.StatusBadRequest, "name must not be empty")
			return
		}
		bank.Name = *input.Name
	}
	if input.Logo != nil {
		bank.Logo = *input.Logo
	}
	if input.Description != nil {
		bank.Description = *input.Description
	}
	if input.IsActive != nil {
		bank.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&bank).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, bank)
}

// DeleteBank removes a bank; its sections and questions go with it.
func DeleteBank(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var bank models.Bank
	if err := config.DB.First(&bank, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Bank not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	if err := config.DB.Delete(&bank).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondMessage(c, "Bank deleted successfully")
}

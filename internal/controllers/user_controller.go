package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"forms_portal/internal/config"
	"forms_portal/internal/models"
)

// ListUsers lists accounts, optionally filtered by role.
func ListUsers(c *gin.Context) {
	query := config.DB.Preload("Bank")
	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			respondError(c, http.StatusBadRequest, "invalid role filter")
			return
		}
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, users)
}

// DeleteUser removes an account by ID
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondMessage(c, "User deleted successfully")
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"forms_portal/internal/config"
	"forms_portal/internal/models"
)

// CreateQuestion adds a question to a section
func CreateQuestion(c *gin.Context) {
	var input struct {
		SectionID   uint                   `json:"section_id" binding:"required"`
		Type        string                 `json:"type" binding:"required"`
		Label       string                 `json:"label" binding:"required"`
		Placeholder string                 `json:"placeholder"`
		Required    bool                   `json:"required"`
		Options     models.QuestionOptions `json:"options"`
		Order       int                    `json:"order"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var section models.Section
	if err := config.DB.First(&section, input.SectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusBadRequest, "section with the provided section_id does not exist")
		} else {
			respondServerError(c, err)
		}
		return
	}

	question := models.Question{
		SectionID:   input.SectionID,
		Type:        input.Type,
		Label:       input.Label,
		Placeholder: input.Placeholder,
		Required:    input.Required,
		Options:     input.Options,
		Order:       input.Order,
	}
	if err := question.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Create(&question).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondCreated(c, question)
}

// UpdateQuestion applies a partial update to a question
func UpdateQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var question models.Question
	if err := config.DB.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Question not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	var input struct {
		Type        *string                 `json:"type"`
		Label       *string                 `json:"label"`
		Placeholder *string                 `json:"placeholder"`
		Required    *bool                   `json:"required"`
		Options     *models.QuestionOptions `json:"options"`
		Order       *int                    `json:"order"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Type != nil {
		question.Type = *input.Type
	}
	if input.Label != nil {
		question.Label = *input.Label
	}
	if input.Placeholder != nil {
		question.Placeholder = *input.Placeholder
	}
	if input.Required != nil {
		question.Required = *input.Required
	}
	if input.Options != nil {
		question.Options = *input.Options
	}
	if input.Order != nil {
		question.Order = *input.Order
	}
	if err := question.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Save(&question).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, question)
}

// DeleteQuestion removes a question by ID
func DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var question models.Question
	if err := config.DB.First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Question not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	if err := config.DB.Delete(&question).Error; err != nil {
		respondServerError(c, err)
		return
	}
	respondMessage(c, "Question deleted successfully")
}

package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"forms_portal/internal/config"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"
	"forms_portal/internal/scope"
)

func requireIdentity(c *gin.Context) (models.Identity, bool) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
	}
	return ident, ok
}

// scopedResponses builds the role-restricted base query for form responses.
func scopedResponses(c *gin.Context, ident models.Identity) (*gorm.DB, bool) {
	restrict, err := scope.ForIdentity(ident)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return config.DB.Scopes(restrict), true
}

// ListResponses returns the responses visible to the caller: their own for
// users, their bank's for agents, everything for admins. Caller filters
// narrow the scope, never widen it.
func ListResponses(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}

	var filters scope.Filters
	var err error
	if filters.BankID, err = parseUintQuery(c, "bankId"); err != nil {
		respondError(c, http.StatusBadRequest, "invalid bankId filter")
		return
	}
	if filters.SectionID, err = parseUintQuery(c, "sectionId"); err != nil {
		respondError(c, http.StatusBadRequest, "invalid sectionId filter")
		return
	}
	if filters.UserID, err = parseUintQuery(c, "userId"); err != nil {
		respondError(c, http.StatusBadRequest, "invalid userId filter")
		return
	}
	if filters.IsSubmitted, err = parseBoolQuery(c, "isSubmitted"); err != nil {
		respondError(c, http.StatusBadRequest, "invalid isSubmitted filter")
		return
	}

	query, ok := scopedResponses(c, ident)
	if !ok {
		return
	}

	var responses []models.FormResponse
	err = filters.Apply(query).
		Preload("User").
		Preload("Section").
		Preload("Bank").
		Order("updated_at DESC").
		Find(&responses).Error
	if err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, responses)
}

// GetResponse returns one response through the caller's scope. Absent and
// out-of-scope are indistinguishable on purpose: both are 404, so ids of
// other users' responses cannot be probed.
func GetResponse(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	query, ok := scopedResponses(c, ident)
	if !ok {
		return
	}

	var response models.FormResponse
	err := query.
		Preload("User").
		Preload("Section").
		Preload("Bank").
		Where("id = ?", id).
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Response not found")
		} else {
			respondServerError(c, err)
		}
		return
	}
	respondOK(c, response)
}

// GetUserSectionResponse returns the caller's response for a section, or
// null when they have not started it. Absence is not an error here.
func GetUserSectionResponse(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	sectionID, ok := parseID(c, "sectionId")
	if !ok {
		return
	}

	var response models.FormResponse
	err := config.DB.
		Where("user_id = ? AND section_id = ?", ident.UserID, sectionID).
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondOK(c, nil)
		} else {
			respondServerError(c, err)
		}
		return
	}
	respondOK(c, response)
}

type saveInput struct {
	SectionID uint              `json:"sectionId"`
	BankID    uint              `json:"bankId"`
	Answers   models.AnswerList `json:"responses"`
}

// SaveResponse is the auto-save path: it fully replaces the caller's
// stored answers for a section, creating the row on first save. The
// insert-or-update races with itself across concurrent saves, so it runs
// as a single ON CONFLICT upsert against the (user_id, section_id) index.
func SaveResponse(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}

	var input saveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if input.SectionID == 0 || input.BankID == 0 || input.Answers == nil {
		respondError(c, http.StatusBadRequest, "sectionId, bankId and responses are required")
		return
	}

	var section models.Section
	if err := config.DB.Preload("Questions").First(&section, input.SectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusBadRequest, "section does not exist")
		} else {
			respondServerError(c, err)
		}
		return
	}
	if section.BankID != input.BankID {
		respondError(c, http.StatusBadRequest, "section does not belong to the given bank")
		return
	}
	if err := models.ValidateAnswers(input.Answers, section.Questions); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Submitted responses are read-only
	var existing models.FormResponse
	err := config.DB.
		Where("user_id = ? AND section_id = ?", ident.UserID, input.SectionID).
		First(&existing).Error
	if err == nil && existing.IsSubmitted {
		respondError(c, http.StatusConflict, "response has already been submitted")
		return
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServerError(c, err)
		return
	}

	response := models.FormResponse{
		UserID:    ident.UserID,
		SectionID: input.SectionID,
		BankID:    input.BankID,
		Answers:   input.Answers,
	}
	err = config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "section_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answers", "bank_id", "updated_at"}),
	}).Create(&response).Error
	if err != nil {
		respondServerError(c, err)
		return
	}

	// Reload so the conflict-update path reports stored timestamps
	var saved models.FormResponse
	err = config.DB.
		Where("user_id = ? AND section_id = ?", ident.UserID, input.SectionID).
		First(&saved).Error
	if err != nil {
		respondServerError(c, err)
		return
	}
	respondOK(c, saved)
}

// SubmitResponse marks the caller's response as submitted. A row that does
// not exist and a row owned by someone else both come back 404. Submitting
// twice leaves the first submission timestamp untouched.
func SubmitResponse(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var response models.FormResponse
	err := config.DB.
		Where("id = ? AND user_id = ?", id, ident.UserID).
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Response not found")
		} else {
			respondServerError(c, err)
		}
		return
	}

	if response.IsSubmitted {
		respondOK(c, response)
		return
	}

	now := time.Now()
	err = config.DB.Model(&response).Updates(map[string]interface{}{
		"is_submitted": true,
		"submitted_at": now,
	}).Error
	if err != nil {
		respondServerError(c, err)
		return
	}

	response.IsSubmitted = true
	response.SubmittedAt = &now
	respondOK(c, response)
}

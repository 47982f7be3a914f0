package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"forms_portal/internal/config"
	"forms_portal/internal/models"
)

type adminStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalAgents        int64 `json:"totalAgents"`
	TotalBanks         int64 `json:"totalBanks"`
	TotalResponses     int64 `json:"totalResponses"`
	SubmittedResponses int64 `json:"submittedResponses"`
	PendingResponses   int64 `json:"pendingResponses"`
}

type agentStats struct {
	TotalResponses     int64 `json:"totalResponses"`
	SubmittedResponses int64 `json:"submittedResponses"`
	PendingResponses   int64 `json:"pendingResponses"`
	TotalUsers         int64 `json:"totalUsers"`
}

// AdminStats returns global portal counts. Every call recounts against
// current state; nothing is cached.
func AdminStats(c *gin.Context) {
	var stats adminStats

	counts := []func() error{
		func() error {
			return config.DB.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&stats.TotalUsers).Error
		},
		func() error {
			return config.DB.Model(&models.User{}).Where("role = ?", models.RoleAgent).Count(&stats.TotalAgents).Error
		},
		func() error {
			return config.DB.Model(&models.Bank{}).Count(&stats.TotalBanks).Error
		},
		func() error {
			return config.DB.Model(&models.FormResponse{}).Count(&stats.TotalResponses).Error
		},
		func() error {
			return config.DB.Model(&models.FormResponse{}).Where("is_submitted = ?", true).Count(&stats.SubmittedResponses).Error
		},
		func() error {
			return config.DB.Model(&models.FormResponse{}).Where("is_submitted = ?", false).Count(&stats.PendingResponses).Error
		},
	}
	for _, count := range counts {
		if err := count(); err != nil {
			respondServerError(c, err)
			return
		}
	}

	respondOK(c, stats)
}

// AgentStats returns the same response counts restricted to the agent's
// bank, plus how many distinct users have responded.
func AgentStats(c *gin.Context) {
	ident, ok := requireIdentity(c)
	if !ok {
		return
	}
	if ident.BankID == nil {
		respondError(c, http.StatusBadRequest, "Agent not assigned to any bank")
		return
	}
	bankID := *ident.BankID

	var stats agentStats

	scoped := func() *gorm.DB {
		return config.DB.Model(&models.FormResponse{}).Where("bank_id = ?", bankID)
	}

	if err := scoped().Count(&stats.TotalResponses).Error; err != nil {
		respondServerError(c, err)
		return
	}
	if err := scoped().Where("is_submitted = ?", true).Count(&stats.SubmittedResponses).Error; err != nil {
		respondServerError(c, err)
		return
	}
	if err := scoped().Where("is_submitted = ?", false).Count(&stats.PendingResponses).Error; err != nil {
		respondServerError(c, err)
		return
	}
	if err := scoped().Distinct("user_id").Count(&stats.TotalUsers).Error; err != nil {
		respondServerError(c, err)
		return
	}

	respondOK(c, stats)
}

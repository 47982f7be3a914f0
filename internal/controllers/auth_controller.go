package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"forms_portal/internal/config"
	"forms_portal/internal/middleware"
	"forms_portal/internal/models"
)

type registerInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	BankID   *uint  `json:"bankId"`
}

// Register creates an account. Agents must name the bank they work for;
// the other roles must not carry one.
func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		respondError(c, http.StatusBadRequest, "invalid role")
		return
	}

	var bankID *uint
	if role == models.RoleAgent {
		if input.BankID == nil {
			respondError(c, http.StatusBadRequest, "bankId is required for the agent role")
			return
		}
		var bank models.Bank
		if err := config.DB.First(&bank, *input.BankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusBadRequest, "bank with the provided bankId does not exist")
			} else {
				respondServerError(c, err)
			}
			return
		}
		bankID = input.BankID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondServerError(c, err)
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         role,
		BankID:       bankID,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			respondError(c, http.StatusConflict, "email already in use")
			return
		}
		respondServerError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, user.BankID)
	if err != nil {
		respondServerError(c, err)
		return
	}

	respondCreated(c, gin.H{"token": token, "user": user})
}

// Login verifies credentials and issues a token.
func Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", body.Email).Preload("Bank").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "invalid credentials")
		} else {
			respondServerError(c, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, user.BankID)
	if err != nil {
		respondServerError(c, err)
		return
	}

	respondOK(c, gin.H{"token": token, "user": user})
}

// Me returns the account behind the presented token.
func Me(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var user models.User
	if err := config.DB.Preload("Bank").First(&user, ident.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
		} else {
			respondServerError(c, err)
		}
		return
	}
	respondOK(c, user)
}

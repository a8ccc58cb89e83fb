package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/auth"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/types"
	"github.com/planit-dev/planit/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
	GoogleID string `json:"googleId"`
	DOB      string `json:"dob"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	GoogleID string `json:"googleId"`
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:             user.ID,
		Username:       user.Name,
		Email:          user.Email,
		Bio:            user.Bio,
		DateOfBirth:    user.DateOfBirth,
		ProfilePicture: user.ProfilePicture,
		Federated:      user.Federated(),
	}
}

// Register creates either a credential-based account (password) or a
// federated one (googleId) - exactly one of the two.
func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and email are required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email format"})
		return
	}

	if (req.Password == "") == (req.GoogleID == "") {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Provide either a password or a Google account, not both"})
		return
	}

	if req.GoogleID == "" && len(req.Password) < 6 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 6 characters long"})
		return
	}

	var dob *string
	if req.DOB != "" {
		parsed, err := utils.ParseDate(req.DOB)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format for date of birth"})
			return
		}
		dob = &parsed
	}

	var existing models.User

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed", "error": err.Error()})
		return
	}

	newUser := models.User{
		Name:        req.Username,
		Email:       req.Email,
		DateOfBirth: dob,
	}

	if req.GoogleID != "" {
		err := db.DB.Where("google_id = ?", req.GoogleID).First(&existing).Error
		if err == nil {
			ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Google account already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking existing Google account: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed", "error": err.Error()})
			return
		}
		newUser.GoogleID = &req.GoogleID
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed", "error": err.Error()})
			return
		}
		digest := string(hash)
		newUser.PasswordHash = &digest
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed", "error": err.Error()})
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"userId":  newUser.ID,
		"token":   token,
	})
}

// Login accepts exactly one of password (with email) or googleId. Both
// failure modes answer with the same message.
func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	if (req.Password == "") == (req.GoogleID == "") {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Provide either a password or a Google account, not both"})
		return
	}

	var user models.User

	if req.GoogleID != "" {
		err := db.DB.Where("google_id = ?", req.GoogleID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
				return
			}
			log.Printf("Database error when fetching user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed", "error": err.Error()})
			return
		}
	} else {
		if req.Email == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		err := db.DB.Where("email = ?", email).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
				return
			}
			log.Printf("Database error when fetching user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed", "error": err.Error()})
			return
		}

		if user.PasswordHash == nil || bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    userResponse(user),
		"token":   token,
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": userResponse(user)})
}

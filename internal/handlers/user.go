package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/services"
	"github.com/planit-dev/planit/internal/types"
	"github.com/planit-dev/planit/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	searchDefaultLimit = 20
	searchMaxLimit     = 50
)

type UpdateUserRequest struct {
	Username        string `json:"username"`
	Bio             *string `json:"bio"`
	DOB             string `json:"dob"`
	ProfilePicture  *string `json:"profilePicture"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func GetUser(ctx *gin.Context) {
	userID, err := utils.UintParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user", "error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": userResponse(user)})
}

func GetUserByEmail(ctx *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(ctx.Param("email")))

	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user", "error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": userResponse(user)})
}

// SearchUsers matches name or email case-insensitively and ranks:
// exact email, exact name, email prefix, name prefix, then substring.
func SearchUsers(ctx *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(ctx.Query("q")))

	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query is required"})
		return
	}

	limit := searchDefaultLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}

	var users []models.User

	pattern := "%" + query + "%"

	if err := db.DB.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).Find(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Search failed", "error": err.Error()})
		return
	}

	rank := func(u models.User) int {
		name := strings.ToLower(u.Name)
		email := strings.ToLower(u.Email)
		switch {
		case email == query:
			return 0
		case name == query:
			return 1
		case strings.HasPrefix(email, query):
			return 2
		case strings.HasPrefix(name, query):
			return 3
		default:
			return 4
		}
	}

	sort.SliceStable(users, func(i, j int) bool {
		ri, rj := rank(users[i]), rank(users[j])
		if ri != rj {
			return ri < rj
		}
		return users[i].ID < users[j].ID
	})

	if len(users) > limit {
		users = users[:limit]
	}

	results := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		results = append(results, userResponse(user))
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "users": results})
}

// UpdateUser covers both profile edits and password changes. Password
// changes require the current password and are refused for federated
// accounts, which have none.
func UpdateUser(ctx *gin.Context) {
	userID, err := utils.UintParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user", "error": err.Error()})
		}
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.Username != "" {
		updates["name"] = strings.TrimSpace(req.Username)
	}

	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}

	if req.DOB != "" {
		parsed, err := utils.ParseDate(req.DOB)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format for date of birth"})
			return
		}
		updates["date_of_birth"] = parsed
	}

	if req.NewPassword != "" {
		if user.Federated() {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password change is not available for Google-linked accounts"})
			return
		}

		if len(req.NewPassword) < 6 {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 6 characters long"})
			return
		}

		if req.CurrentPassword == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current password is required to change password"})
			return
		}

		if user.PasswordHash == nil || bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Current password is incorrect"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash new password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user", "error": err.Error()})
			return
		}

		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update user %d: %v", user.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user", "error": err.Error()})
		return
	}

	if err := db.DB.First(&user, user.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to refresh user", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user":    userResponse(user),
	})
}

func DeleteUser(ctx *gin.Context) {
	userID, err := utils.UintParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user", "error": err.Error()})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return services.DeleteUserCascade(tx, user)
	})

	if err != nil {
		log.Printf("Failed to delete user %d: %v", user.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}

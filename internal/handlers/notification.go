package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/utils"
)

type NotificationResponse struct {
	ID        uint            `json:"notificationId"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	RelatedID *uint           `json:"relatedId"`
	IsRead    bool            `json:"isRead"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

// GetNotifications lists a user's notifications, newest first.
func GetNotifications(ctx *gin.Context) {
	userID, err := utils.UintQuery(ctx, "userId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	var notifications []models.Notification

	err = db.DB.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&notifications).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch notifications", "error": err.Error()})
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))
	unread := 0

	for _, notification := range notifications {
		if !notification.IsRead {
			unread++
		}

		response = append(response, NotificationResponse{
			ID:        notification.ID,
			Type:      notification.Type,
			Title:     notification.Title,
			Message:   notification.Message,
			RelatedID: notification.RelatedID,
			IsRead:    notification.IsRead,
			Meta:      json.RawMessage(notification.Meta),
			CreatedAt: notification.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": response,
		"unreadCount":   unread,
	})
}

// MarkAllNotificationsRead flips every unread notification of a user.
func MarkAllNotificationsRead(ctx *gin.Context) {
	userID, err := utils.UintQuery(ctx, "userId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	err = db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error

	if err != nil {
		log.Printf("Failed to mark notifications read for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to mark notifications as read", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})
}

func MarkNotificationRead(ctx *gin.Context) {
	notificationID, err := utils.UintParam(ctx, "notification_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result := db.DB.Model(&models.Notification{}).Where("id = ?", notificationID).Update("is_read", true)

	if result.Error != nil {
		log.Printf("Failed to mark notification %d read: %v", notificationID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to mark notification as read", "error": result.Error.Error()})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

func DeleteNotification(ctx *gin.Context) {
	notificationID, err := utils.UintParam(ctx, "notification_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result := db.DB.Delete(&models.Notification{}, notificationID)

	if result.Error != nil {
		log.Printf("Failed to delete notification %d: %v", notificationID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete notification", "error": result.Error.Error()})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification deleted successfully"})
}

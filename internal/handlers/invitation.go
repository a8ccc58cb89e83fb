package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/utils"
	"gorm.io/gorm"
)

type RespondInvitationRequest struct {
	UserID   uint   `json:"userId"`
	Response string `json:"response" binding:"required"`
}

// RespondInvitation moves a pending invitation to accepted or declined and
// marks the notification that announced it as read.
func RespondInvitation(ctx *gin.Context) {
	meetingID, err := utils.UintParam(ctx, "meeting_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var req RespondInvitationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Response is required"})
		return
	}

	if req.UserID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	if req.Response != models.InvitationAccepted && req.Response != models.InvitationDeclined {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Response must be \"accepted\" or \"declined\""})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var invitation models.MeetingInvitation

		err := tx.Where("meeting_id = ? AND user_id = ?", meetingID, req.UserID).First(&invitation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if invitation.Status != models.InvitationPending {
			return errAlreadyResponded
		}

		now := time.Now()

		err = tx.Model(&invitation).Updates(map[string]interface{}{
			"status":       req.Response,
			"responded_at": now,
		}).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Notification{}).
			Where("user_id = ? AND related_id = ? AND type = ?", req.UserID, meetingID, models.NotificationMeetingInvitation).
			Update("is_read", true).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, errNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invitation not found"})
		case errors.Is(err, errAlreadyResponded):
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invitation has already been responded to"})
		default:
			log.Printf("Failed to respond to invitation for meeting %d: %v", meetingID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to respond to invitation", "error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Invitation " + req.Response})
}

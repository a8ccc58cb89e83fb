package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/services"
	"github.com/planit-dev/planit/internal/utils"
	"gorm.io/gorm"
)

type MeetingRequest struct {
	Title          string   `json:"meetingTitle" binding:"required"`
	Description    string   `json:"meetingDescription"`
	Date           string   `json:"meetingDate" binding:"required"`
	StartTime      string   `json:"meetingStartTime"`
	EndTime        string   `json:"meetingEndTime"`
	InvitationType string   `json:"invitationType"`
	InvitedEmails  []string `json:"invitedEmails"`
}

type UpdateMeetingRequest struct {
	MeetingRequest
	NewMemberEmails  []string `json:"newMemberEmails"`
	RemovedMemberIDs []uint   `json:"removedMemberIds"`
}

// buildMeeting validates a meeting payload into a row without a team.
func buildMeeting(req MeetingRequest) (models.TeamMeeting, error) {
	if req.Title == "" || req.Date == "" {
		return models.TeamMeeting{}, fmt.Errorf("meeting title and date are required")
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return models.TeamMeeting{}, err
	}

	start, err := utils.ParseOptionalTimeOfDay(req.StartTime)
	if err != nil {
		return models.TeamMeeting{}, err
	}

	end, err := utils.ParseOptionalTimeOfDay(req.EndTime)
	if err != nil {
		return models.TeamMeeting{}, err
	}

	if !utils.ValidTimeRange(start, end) {
		return models.TeamMeeting{}, errInvalidTimeRange
	}

	invitationType := req.InvitationType
	if invitationType == "" {
		invitationType = models.InvitationTypeMandatory
	}
	if invitationType != models.InvitationTypeMandatory && invitationType != models.InvitationTypeRequest {
		return models.TeamMeeting{}, fmt.Errorf("invitation type must be %q or %q", models.InvitationTypeMandatory, models.InvitationTypeRequest)
	}

	return models.TeamMeeting{
		Title:          req.Title,
		Description:    req.Description,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		InvitationType: invitationType,
	}, nil
}

// inviteByEmail resolves each email to a user, adds them to the team when
// missing, and creates their invitation. Mandatory meetings pre-accept;
// request meetings stay pending and notify. Unknown addresses are skipped.
// Returns the user IDs that received a notification.
func inviteByEmail(tx *gorm.DB, teamID uint, meeting models.TeamMeeting, emails []string) ([]uint, error) {
	var notified []uint

	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		var user models.User

		err := tx.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := ensureMembership(tx, teamID, user.ID); err != nil {
			return nil, err
		}

		status := models.InvitationPending
		if meeting.InvitationType == models.InvitationTypeMandatory {
			status = models.InvitationAccepted
		}

		invitation := models.MeetingInvitation{
			MeetingID:      meeting.ID,
			UserID:         user.ID,
			InvitationType: meeting.InvitationType,
			Status:         status,
		}

		if err := tx.Create(&invitation).Error; err != nil {
			return nil, err
		}

		if meeting.InvitationType == models.InvitationTypeRequest {
			if err := services.NotifyMeetingInvitation(tx, user.ID, meeting); err != nil {
				return nil, err
			}
			notified = append(notified, user.ID)
		}
	}

	return notified, nil
}

func ensureMembership(tx *gorm.DB, teamID, userID uint) error {
	var count int64

	err := tx.Model(&models.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error

	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	return tx.Create(&models.TeamMembership{TeamID: teamID, UserID: userID}).Error
}

// CreateMeeting adds one meeting to an existing team.
func CreateMeeting(ctx *gin.Context) {
	teamID, err := utils.UintParam(ctx, "team_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var team models.Team

	if err := db.DB.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Team not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch team", "error": err.Error()})
		}
		return
	}

	var req MeetingRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Meeting title and date are required"})
		return
	}

	meeting, err := buildMeeting(req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	meeting.TeamID = team.ID

	var notified []uint

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meeting).Error; err != nil {
			return err
		}

		invited, err := inviteByEmail(tx, team.ID, meeting, req.InvitedEmails)
		if err != nil {
			return err
		}
		notified = invited

		return nil
	})

	if err != nil {
		log.Printf("Failed to create meeting: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create meeting", "error": err.Error()})
		return
	}

	services.BroadcastRefresh(notified...)

	ctx.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Meeting created successfully",
		"meetingId": meeting.ID,
	})
}

// UpdateMeeting replaces the meeting fields and reconciles membership: a
// changelog of the field diffs goes to everyone who accepted, removed
// members lose their invitation and are told, and new members always get a
// pending request invitation no matter the meeting's own type.
func UpdateMeeting(ctx *gin.Context) {
	meetingID, err := utils.UintParam(ctx, "meeting_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var req UpdateMeetingRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and date are required"})
		return
	}

	updated, err := buildMeeting(req.MeetingRequest)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var changes []string
	var notified []uint

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var meeting models.TeamMeeting

		if err := tx.First(&meeting, meetingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		updated.ID = meeting.ID
		updated.TeamID = meeting.TeamID
		changes = services.MeetingChangelog(meeting, updated)

		err := tx.Model(&meeting).Updates(map[string]interface{}{
			"title":           updated.Title,
			"description":     updated.Description,
			"date":            updated.Date,
			"start_time":      updated.StartTime,
			"end_time":        updated.EndTime,
			"invitation_type": updated.InvitationType,
		}).Error
		if err != nil {
			return err
		}

		if len(changes) > 0 {
			var accepted []models.MeetingInvitation

			err := tx.Where("meeting_id = ? AND status = ?", meeting.ID, models.InvitationAccepted).Find(&accepted).Error
			if err != nil {
				return err
			}

			for _, invitation := range accepted {
				if err := services.NotifyMeetingUpdate(tx, invitation.UserID, updated, changes); err != nil {
					return err
				}
				notified = append(notified, invitation.UserID)
			}
		}

		for _, removedID := range req.RemovedMemberIDs {
			result := tx.Where("meeting_id = ? AND user_id = ?", meeting.ID, removedID).Delete(&models.MeetingInvitation{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				continue
			}

			if err := services.NotifyMeetingRemoval(tx, removedID, updated); err != nil {
				return err
			}
			notified = append(notified, removedID)
		}

		for _, email := range req.NewMemberEmails {
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" {
				continue
			}

			var user models.User

			err := tx.Where("email = ?", email).First(&user).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if err := ensureMembership(tx, meeting.TeamID, user.ID); err != nil {
				return err
			}

			invitation := models.MeetingInvitation{
				MeetingID:      meeting.ID,
				UserID:         user.ID,
				InvitationType: models.InvitationTypeRequest,
				Status:         models.InvitationPending,
			}

			if err := tx.Create(&invitation).Error; err != nil {
				return err
			}

			if err := services.NotifyMeetingInvitation(tx, user.ID, updated); err != nil {
				return err
			}
			notified = append(notified, user.ID)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, errNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Meeting not found"})
			return
		}
		log.Printf("Failed to update meeting %d: %v", meetingID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update meeting", "error": err.Error()})
		return
	}

	services.BroadcastRefresh(notified...)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meeting updated successfully",
		"changes": changes,
	})
}

func DeleteMeeting(ctx *gin.Context) {
	meetingID, err := utils.UintParam(ctx, "meeting_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var meeting models.TeamMeeting

	if err := db.DB.First(&meeting, meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Meeting not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch meeting", "error": err.Error()})
		}
		return
	}

	var invitedIDs []uint
	if err := db.DB.Model(&models.MeetingInvitation{}).Where("meeting_id = ?", meetingID).Pluck("user_id", &invitedIDs).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch meeting", "error": err.Error()})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return services.DeleteMeetingCascade(tx, meeting)
	})

	if err != nil {
		log.Printf("Failed to delete meeting %d: %v", meetingID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete meeting", "error": err.Error()})
		return
	}

	services.BroadcastRefresh(invitedIDs...)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Meeting deleted successfully"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/utils"
)

type BusySlot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Source    string `json:"source"`
	Title     string `json:"title"`
}

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// GetAvailability aggregates a user's busy slots over a date range: personal
// activities with a full time window plus meetings the user accepted. Working
// hours come from every team the user belongs to, deduplicated.
func GetAvailability(ctx *gin.Context) {
	userID, err := utils.UintQuery(ctx, "userId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	startDate, err := utils.ParseDate(ctx.Query("startDate"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start date must be YYYY-MM-DD"})
		return
	}

	endDate, err := utils.ParseDate(ctx.Query("endDate"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "End date must be YYYY-MM-DD"})
		return
	}

	if startDate > endDate {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Start date must not be after end date"})
		return
	}

	var activities []models.Activity

	err = db.DB.Where("user_id = ? AND date >= ? AND date <= ? AND start_time IS NOT NULL AND end_time IS NOT NULL", userID, startDate, endDate).
		Order("date, start_time").
		Find(&activities).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch availability", "error": err.Error()})
		return
	}

	var meetings []models.TeamMeeting

	err = db.DB.Joins("JOIN meeting_invitations ON meeting_invitations.meeting_id = team_meetings.id").
		Where("meeting_invitations.user_id = ? AND meeting_invitations.status = ?", userID, models.InvitationAccepted).
		Where("team_meetings.date >= ? AND team_meetings.date <= ?", startDate, endDate).
		Order("team_meetings.date, team_meetings.start_time").
		Find(&meetings).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch availability", "error": err.Error()})
		return
	}

	busy := make([]BusySlot, 0, len(activities)+len(meetings))

	for _, activity := range activities {
		busy = append(busy, BusySlot{
			Date:      activity.Date,
			StartTime: *activity.StartTime,
			EndTime:   *activity.EndTime,
			Source:    "activity",
			Title:     activity.Title,
		})
	}

	for _, meeting := range meetings {
		if meeting.StartTime == nil || meeting.EndTime == nil {
			continue
		}
		busy = append(busy, BusySlot{
			Date:      meeting.Date,
			StartTime: *meeting.StartTime,
			EndTime:   *meeting.EndTime,
			Source:    "meeting",
			Title:     meeting.Title,
		})
	}

	var teams []models.Team

	err = db.DB.Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("team_memberships.user_id = ?", userID).
		Find(&teams).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch availability", "error": err.Error()})
		return
	}

	seen := make(map[WorkingHours]bool)
	workingHours := make([]WorkingHours, 0, len(teams))

	for _, team := range teams {
		if team.StartWorkingHour == nil || team.EndWorkingHour == nil {
			continue
		}

		window := WorkingHours{Start: *team.StartWorkingHour, End: *team.EndWorkingHour}
		if seen[window] {
			continue
		}
		seen[window] = true
		workingHours = append(workingHours, window)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":      true,
		"busySlots":    busy,
		"workingHours": workingHours,
	})
}

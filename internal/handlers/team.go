package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/services"
	"github.com/planit-dev/planit/internal/utils"
	"gorm.io/gorm"
)

type CreateTeamRequest struct {
	CreatedByUserID  uint             `json:"createdByUserId"`
	Name             string           `json:"teamName" binding:"required"`
	Description      string           `json:"teamDescription"`
	StartWorkingHour string           `json:"teamStartWorkingHour"`
	EndWorkingHour   string           `json:"teamEndWorkingHour"`
	Meetings         []MeetingRequest `json:"meetings"`
}

type UpdateTeamRequest struct {
	Name             string `json:"teamName" binding:"required"`
	Description      string `json:"teamDescription"`
	StartWorkingHour string `json:"teamStartWorkingHour"`
	EndWorkingHour   string `json:"teamEndWorkingHour"`
}

type MeetingResponse struct {
	ID               uint    `json:"meetingId"`
	Title            string  `json:"meetingTitle"`
	Description      string  `json:"meetingDescription"`
	Date             string  `json:"meetingDate"`
	StartTime        *string `json:"meetingStartTime"`
	EndTime          *string `json:"meetingEndTime"`
	InvitationType   string  `json:"invitationType"`
	InvitationStatus *string `json:"invitationStatus"`
}

type TeamResponse struct {
	ID               uint              `json:"teamId"`
	Name             string            `json:"teamName"`
	Description      string            `json:"teamDescription"`
	StartWorkingHour *string           `json:"teamStartWorkingHour"`
	EndWorkingHour   *string           `json:"teamEndWorkingHour"`
	CreatedByUserID  uint              `json:"createdByUserId"`
	Meetings         []MeetingResponse `json:"meetings"`
}

func meetingResponse(meeting models.TeamMeeting, invitationStatus *string) MeetingResponse {
	return MeetingResponse{
		ID:               meeting.ID,
		Title:            meeting.Title,
		Description:      meeting.Description,
		Date:             meeting.Date,
		StartTime:        meeting.StartTime,
		EndTime:          meeting.EndTime,
		InvitationType:   meeting.InvitationType,
		InvitationStatus: invitationStatus,
	}
}

func parseWorkingHours(start, end string) (*string, *string, error) {
	startHour, err := utils.ParseOptionalTimeOfDay(start)
	if err != nil {
		return nil, nil, err
	}

	endHour, err := utils.ParseOptionalTimeOfDay(end)
	if err != nil {
		return nil, nil, err
	}

	if !utils.ValidTimeRange(startHour, endHour) {
		return nil, nil, errInvalidTimeRange
	}

	return startHour, endHour, nil
}

// CreateTeam creates the team, its creator membership, and every supplied
// meeting with its invitations, all in one transaction.
func CreateTeam(ctx *gin.Context) {
	var req CreateTeamRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Creator user ID and team name are required"})
		return
	}

	if req.CreatedByUserID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Creator user ID and team name are required"})
		return
	}

	if len(req.Meetings) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one meeting is required"})
		return
	}

	startHour, endHour, err := parseWorkingHours(req.StartWorkingHour, req.EndWorkingHour)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	meetings := make([]models.TeamMeeting, 0, len(req.Meetings))
	for _, meetingReq := range req.Meetings {
		meeting, err := buildMeeting(meetingReq)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		meetings = append(meetings, meeting)
	}

	team := models.Team{
		Name:             req.Name,
		Description:      req.Description,
		StartWorkingHour: startHour,
		EndWorkingHour:   endHour,
		CreatorID:        req.CreatedByUserID,
	}

	var meetingIDs []uint
	var notified []uint

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.TeamMembership{TeamID: team.ID, UserID: team.CreatorID}).Error; err != nil {
			return err
		}

		for i := range meetings {
			meetings[i].TeamID = team.ID

			if err := tx.Create(&meetings[i]).Error; err != nil {
				return err
			}
			meetingIDs = append(meetingIDs, meetings[i].ID)

			invited, err := inviteByEmail(tx, team.ID, meetings[i], req.Meetings[i].InvitedEmails)
			if err != nil {
				return err
			}
			notified = append(notified, invited...)
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to create team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create team", "error": err.Error()})
		return
	}

	services.BroadcastRefresh(notified...)

	ctx.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Team created successfully",
		"teamId":     team.ID,
		"meetingIds": meetingIDs,
	})
}

// GetTeams returns the teams the user belongs to. A meeting is visible when
// nobody was invited to it, when this user accepted it, or when the user
// created the team.
func GetTeams(ctx *gin.Context) {
	userID, err := utils.UintQuery(ctx, "userId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	var teams []models.Team

	err = db.DB.Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("team_memberships.user_id = ?", userID).
		Order("teams.id").
		Find(&teams).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch teams", "error": err.Error()})
		return
	}

	response := make([]TeamResponse, 0, len(teams))

	for _, team := range teams {
		var meetings []models.TeamMeeting

		err := db.DB.Where("team_id = ?", team.ID).Order("date, start_time").Find(&meetings).Error
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch teams", "error": err.Error()})
			return
		}

		meetingIDs := make([]uint, 0, len(meetings))
		for _, meeting := range meetings {
			meetingIDs = append(meetingIDs, meeting.ID)
		}

		inviteCount := make(map[uint]int)
		myStatus := make(map[uint]string)

		if len(meetingIDs) > 0 {
			var invitations []models.MeetingInvitation

			err := db.DB.Where("meeting_id IN ?", meetingIDs).Find(&invitations).Error
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch teams", "error": err.Error()})
				return
			}

			for _, invitation := range invitations {
				inviteCount[invitation.MeetingID]++
				if invitation.UserID == userID {
					myStatus[invitation.MeetingID] = invitation.Status
				}
			}
		}

		visible := make([]MeetingResponse, 0, len(meetings))

		for _, meeting := range meetings {
			status, hasStatus := myStatus[meeting.ID]

			switch {
			case inviteCount[meeting.ID] == 0:
				// Nobody invited: visible to every member
			case team.CreatorID == userID:
				// Creator sees everything
			case hasStatus && status == models.InvitationAccepted:
			default:
				continue
			}

			var statusPtr *string
			if hasStatus {
				statusPtr = &status
			}

			visible = append(visible, meetingResponse(meeting, statusPtr))
		}

		response = append(response, TeamResponse{
			ID:               team.ID,
			Name:             team.Name,
			Description:      team.Description,
			StartWorkingHour: team.StartWorkingHour,
			EndWorkingHour:   team.EndWorkingHour,
			CreatedByUserID:  team.CreatorID,
			Meetings:         visible,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "teams": response})
}

func GetTeam(ctx *gin.Context) {
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

	var members []models.User

	err = db.DB.Joins("JOIN team_memberships ON team_memberships.user_id = users.id").
		Where("team_memberships.team_id = ?", teamID).
		Order("users.id").
		Find(&members).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch team", "error": err.Error()})
		return
	}

	var meetings []models.TeamMeeting

	if err := db.DB.Where("team_id = ?", teamID).Order("date, start_time").Find(&meetings).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch team", "error": err.Error()})
		return
	}

	memberResponses := make([]gin.H, 0, len(members))
	for _, member := range members {
		memberResponses = append(memberResponses, gin.H{
			"id":       member.ID,
			"username": member.Name,
			"email":    member.Email,
		})
	}

	meetingResponses := make([]MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		meetingResponses = append(meetingResponses, meetingResponse(meeting, nil))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"team": TeamResponse{
			ID:               team.ID,
			Name:             team.Name,
			Description:      team.Description,
			StartWorkingHour: team.StartWorkingHour,
			EndWorkingHour:   team.EndWorkingHour,
			CreatedByUserID:  team.CreatorID,
			Meetings:         meetingResponses,
		},
		"members": memberResponses,
	})
}

func UpdateTeam(ctx *gin.Context) {
	teamID, err := utils.UintParam(ctx, "team_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var req UpdateTeamRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Team name is required"})
		return
	}

	startHour, endHour, err := parseWorkingHours(req.StartWorkingHour, req.EndWorkingHour)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result := db.DB.Model(&models.Team{}).Where("id = ?", teamID).Updates(map[string]interface{}{
		"name":               req.Name,
		"description":        req.Description,
		"start_working_hour": startHour,
		"end_working_hour":   endHour,
	})

	if result.Error != nil {
		log.Printf("Failed to update team %d: %v", teamID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update team", "error": result.Error.Error()})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Team not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Team updated successfully"})
}

func DeleteTeam(ctx *gin.Context) {
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

	var memberIDs []uint
	if err := db.DB.Model(&models.TeamMembership{}).Where("team_id = ?", teamID).Pluck("user_id", &memberIDs).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch team", "error": err.Error()})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return services.DeleteTeamCascade(tx, team)
	})

	if err != nil {
		log.Printf("Failed to delete team %d: %v", teamID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete team", "error": err.Error()})
		return
	}

	services.BroadcastRefresh(memberIDs...)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Team and all meetings deleted successfully"})
}

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

type TimelineRequest struct {
	Title     string `json:"timelineTitle" binding:"required"`
	StartDate string `json:"timelineStartDate" binding:"required"`
	EndDate   string `json:"timelineEndDate"`
	StartTime string `json:"timelineStartTime"`
	EndTime   string `json:"timelineEndTime"`
}

type GoalRequest struct {
	UserID      uint              `json:"userId"`
	Title       string            `json:"goalTitle" binding:"required"`
	Description string            `json:"goalDescription"`
	Category    string            `json:"goalCategory"`
	Progress    int               `json:"goalProgress"`
	Timelines   []TimelineRequest `json:"timelines"`
}

type TimelineResponse struct {
	ID        uint    `json:"timelineId"`
	Title     string  `json:"timelineTitle"`
	StartDate string  `json:"timelineStartDate"`
	EndDate   string  `json:"timelineEndDate"`
	StartTime *string `json:"timelineStartTime"`
	EndTime   *string `json:"timelineEndTime"`
}

type GoalResponse struct {
	ID          uint               `json:"goalId"`
	Title       string             `json:"goalTitle"`
	Description string             `json:"goalDescription"`
	Category    string             `json:"goalCategory"`
	Progress    int                `json:"goalProgress"`
	Timelines   []TimelineResponse `json:"timelines"`
}

// buildTimelines validates the supplied timeline set and converts it to
// rows for the given goal.
func buildTimelines(goalID uint, requests []TimelineRequest) ([]models.Timeline, error) {
	timelines := make([]models.Timeline, 0, len(requests))

	for _, req := range requests {
		startDate, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return nil, err
		}

		endDate := ""
		if req.EndDate != "" {
			endDate, err = utils.ParseDate(req.EndDate)
			if err != nil {
				return nil, err
			}
		}

		start, err := utils.ParseOptionalTimeOfDay(req.StartTime)
		if err != nil {
			return nil, err
		}

		end, err := utils.ParseOptionalTimeOfDay(req.EndTime)
		if err != nil {
			return nil, err
		}

		if !utils.ValidTimeRange(start, end) {
			return nil, errInvalidTimeRange
		}

		timelines = append(timelines, models.Timeline{
			GoalID:    goalID,
			Title:     req.Title,
			StartDate: startDate,
			EndDate:   endDate,
			StartTime: start,
			EndTime:   end,
		})
	}

	return timelines, nil
}

func CreateGoal(ctx *gin.Context) {
	var req GoalRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID and title are required"})
		return
	}

	if req.UserID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID and title are required"})
		return
	}

	if len(req.Timelines) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one timeline is required"})
		return
	}

	goal := models.Goal{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Progress:    req.Progress,
	}

	var timelineIDs []uint

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&goal).Error; err != nil {
			return err
		}

		timelines, err := buildTimelines(goal.ID, req.Timelines)
		if err != nil {
			return err
		}

		for i := range timelines {
			if err := tx.Create(&timelines[i]).Error; err != nil {
				return err
			}
			timelineIDs = append(timelineIDs, timelines[i].ID)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, errInvalidTimeRange) || isValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		log.Printf("Failed to create goal: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create goal", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Goal created successfully",
		"goalId":      goal.ID,
		"timelineIds": timelineIDs,
	})
}

func ListGoals(ctx *gin.Context) {
	userID, err := utils.UintQuery(ctx, "userId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	var goals []models.Goal

	err = db.DB.Preload("Timelines", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("start_date")
	}).Where("user_id = ?", userID).Order("id").Find(&goals).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch goals", "error": err.Error()})
		return
	}

	response := make([]GoalResponse, 0, len(goals))

	for _, goal := range goals {
		timelines := make([]TimelineResponse, 0, len(goal.Timelines))
		for _, timeline := range goal.Timelines {
			timelines = append(timelines, TimelineResponse{
				ID:        timeline.ID,
				Title:     timeline.Title,
				StartDate: timeline.StartDate,
				EndDate:   timeline.EndDate,
				StartTime: timeline.StartTime,
				EndTime:   timeline.EndTime,
			})
		}

		response = append(response, GoalResponse{
			ID:          goal.ID,
			Title:       goal.Title,
			Description: goal.Description,
			Category:    goal.Category,
			Progress:    goal.Progress,
			Timelines:   timelines,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "goals": response})
}

// UpdateGoal replaces the goal row and its whole timeline set.
func UpdateGoal(ctx *gin.Context) {
	goalID, err := utils.UintParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var req GoalRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title is required"})
		return
	}

	if len(req.Timelines) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one timeline is required"})
		return
	}

	var timelineIDs []uint

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Goal{}).Where("id = ?", goalID).Updates(map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
			"category":    req.Category,
			"progress":    req.Progress,
		})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return errNotFound
		}

		if err := tx.Where("goal_id = ?", goalID).Delete(&models.Timeline{}).Error; err != nil {
			return err
		}

		timelines, err := buildTimelines(goalID, req.Timelines)
		if err != nil {
			return err
		}

		for i := range timelines {
			if err := tx.Create(&timelines[i]).Error; err != nil {
				return err
			}
			timelineIDs = append(timelineIDs, timelines[i].ID)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, errNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Goal not found"})
		case errors.Is(err, errInvalidTimeRange) || isValidationError(err):
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			log.Printf("Failed to update goal %d: %v", goalID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update goal", "error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Goal updated successfully",
		"timelineIds": timelineIDs,
	})
}

func DeleteGoal(ctx *gin.Context) {
	goalID, err := utils.UintParam(ctx, "goal_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var goal models.Goal

	if err := db.DB.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Goal not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch goal", "error": err.Error()})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return services.DeleteGoalCascade(tx, goal)
	})

	if err != nil {
		log.Printf("Failed to delete goal %d: %v", goalID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete goal", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Goal and all timelines deleted successfully"})
}

// DeleteTimeline refuses to leave a goal with no timelines.
func DeleteTimeline(ctx *gin.Context) {
	timelineID, err := utils.UintParam(ctx, "timeline_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var timeline models.Timeline

	if err := db.DB.First(&timeline, timelineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Timeline not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch timeline", "error": err.Error()})
		}
		return
	}

	var siblings int64

	if err := db.DB.Model(&models.Timeline{}).Where("goal_id = ?", timeline.GoalID).Count(&siblings).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch timeline", "error": err.Error()})
		return
	}

	if siblings <= 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete the last timeline of a goal"})
		return
	}

	if err := db.DB.Delete(&timeline).Error; err != nil {
		log.Printf("Failed to delete timeline %d: %v", timelineID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete timeline", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Timeline deleted successfully"})
}

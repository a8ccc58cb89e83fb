package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/utils"
)

type ActivityRequest struct {
	UserID      uint   `json:"userId"`
	Title       string `json:"activityTitle" binding:"required"`
	Description string `json:"activityDescription"`
	Category    string `json:"activityCategory"`
	Urgency     string `json:"activityUrgency"`
	Date        string `json:"activityDate" binding:"required"`
	StartTime   string `json:"activityStartTime"`
	EndTime     string `json:"activityEndTime"`
}

type ActivityResponse struct {
	ID          uint    `json:"activityId"`
	Title       string  `json:"activityTitle"`
	Description string  `json:"activityDescription"`
	Category    string  `json:"activityCategory"`
	Urgency     string  `json:"activityUrgency"`
	Date        string  `json:"activityDate"`
	StartTime   *string `json:"activityStartTime"`
	EndTime     *string `json:"activityEndTime"`
}

func activityResponse(activity models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          activity.ID,
		Title:       activity.Title,
		Description: activity.Description,
		Category:    activity.Category,
		Urgency:     activity.Urgency,
		Date:        activity.Date,
		StartTime:   activity.StartTime,
		EndTime:     activity.EndTime,
	}
}

// validateActivity normalizes the date/time fields, rejecting anything
// malformed and reversed time ranges.
func validateActivity(req *ActivityRequest) (date string, start, end *string, err error) {
	date, err = utils.ParseDate(req.Date)
	if err != nil {
		return "", nil, nil, err
	}

	start, err = utils.ParseOptionalTimeOfDay(req.StartTime)
	if err != nil {
		return "", nil, nil, err
	}

	end, err = utils.ParseOptionalTimeOfDay(req.EndTime)
	if err != nil {
		return "", nil, nil, err
	}

	if !utils.ValidTimeRange(start, end) {
		return "", nil, nil, errInvalidTimeRange
	}

	return date, start, end, nil
}

func CreateActivity(ctx *gin.Context) {
	var req ActivityRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and date are required"})
		return
	}

	if req.UserID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID, title, and date are required"})
		return
	}

	date, start, end, err := validateActivity(&req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	activity := models.Activity{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Urgency:     req.Urgency,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
	}

	if err := db.DB.Create(&activity).Error; err != nil {
		log.Printf("Failed to create activity: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create activity", "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Activity created successfully",
		"activityId": activity.ID,
	})
}

func ListActivities(ctx *gin.Context) {
	userID, err := utils.UintQuery(ctx, "userId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID is required"})
		return
	}

	var activities []models.Activity

	if err := db.DB.Where("user_id = ?", userID).Order("date, start_time").Find(&activities).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch activities", "error": err.Error()})
		return
	}

	response := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		response = append(response, activityResponse(activity))
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "activities": response})
}

func UpdateActivity(ctx *gin.Context) {
	activityID, err := utils.UintParam(ctx, "activity_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var req ActivityRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title and date are required"})
		return
	}

	date, start, end, err := validateActivity(&req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result := db.DB.Model(&models.Activity{}).Where("id = ?", activityID).Updates(map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
		"urgency":     req.Urgency,
		"date":        date,
		"start_time":  start,
		"end_time":    end,
	})

	if result.Error != nil {
		log.Printf("Failed to update activity %d: %v", activityID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update activity", "error": result.Error.Error()})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Activity updated successfully"})
}

func DeleteActivity(ctx *gin.Context) {
	activityID, err := utils.UintParam(ctx, "activity_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result := db.DB.Where("id = ?", activityID).Delete(&models.Activity{})

	if result.Error != nil {
		log.Printf("Failed to delete activity %d: %v", activityID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete activity", "error": result.Error.Error()})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Activity not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Activity deleted successfully"})
}

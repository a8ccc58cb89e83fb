package services

import (
	"encoding/json"
	"fmt"

	"github.com/planit-dev/planit/internal/models"
	"github.com/planit-dev/planit/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifications are written on the caller's transaction so they commit or
// roll back together with the meeting mutation that caused them.

func NotifyMeetingInvitation(tx *gorm.DB, userID uint, meeting models.TeamMeeting) error {
	message := fmt.Sprintf("You have been invited to %q on %s", meeting.Title, meeting.Date)
	if schedule := utils.FormatTimeRange(meeting.StartTime, meeting.EndTime); schedule != "" {
		message += " " + schedule
	}
	message += "."
	if meeting.Description != "" {
		message += " " + meeting.Description
	}

	meetingID := meeting.ID

	return tx.Create(&models.Notification{
		UserID:    userID,
		Type:      models.NotificationMeetingInvitation,
		Title:     "Meeting invitation",
		Message:   message,
		RelatedID: &meetingID,
	}).Error
}

func NotifyMeetingUpdate(tx *gorm.DB, userID uint, meeting models.TeamMeeting, changes []string) error {
	message := fmt.Sprintf("%q has been updated", meeting.Title)
	for _, change := range changes {
		message += ": " + change
	}

	meta, err := json.Marshal(map[string]interface{}{"changes": changes})
	if err != nil {
		return err
	}

	meetingID := meeting.ID

	return tx.Create(&models.Notification{
		UserID:    userID,
		Type:      models.NotificationMeetingUpdate,
		Title:     "Meeting updated",
		Message:   message,
		RelatedID: &meetingID,
		Meta:      datatypes.JSON(meta),
	}).Error
}

func NotifyMeetingRemoval(tx *gorm.DB, userID uint, meeting models.TeamMeeting) error {
	meetingID := meeting.ID

	return tx.Create(&models.Notification{
		UserID:    userID,
		Type:      models.NotificationMeetingUpdate,
		Title:     "Removed from meeting",
		Message:   fmt.Sprintf("You have been removed from %q on %s.", meeting.Title, meeting.Date),
		RelatedID: &meetingID,
	}).Error
}

// NotifyMeetingCancelled leaves RelatedID empty: the meeting row is about to
// be deleted, so there is nothing left to point at.
func NotifyMeetingCancelled(tx *gorm.DB, userID uint, meeting models.TeamMeeting) error {
	return tx.Create(&models.Notification{
		UserID:  userID,
		Type:    models.NotificationMeetingCancelled,
		Title:   "Meeting cancelled",
		Message: fmt.Sprintf("%q on %s has been cancelled.", meeting.Title, meeting.Date),
	}).Error
}

// MeetingChangelog describes what changed between two revisions of a meeting,
// in the order title, description, date, time.
func MeetingChangelog(before, after models.TeamMeeting) []string {
	var changes []string

	if before.Title != after.Title {
		changes = append(changes, fmt.Sprintf("title changed from %q to %q", before.Title, after.Title))
	}
	if before.Description != after.Description {
		changes = append(changes, "description updated")
	}
	if before.Date != after.Date {
		changes = append(changes, fmt.Sprintf("moved from %s to %s", before.Date, after.Date))
	}
	if !sameClock(before.StartTime, after.StartTime) || !sameClock(before.EndTime, after.EndTime) {
		if schedule := utils.FormatTimeRange(after.StartTime, after.EndTime); schedule != "" {
			changes = append(changes, "now runs "+schedule)
		} else {
			changes = append(changes, "time cleared")
		}
	}

	return changes
}

func sameClock(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

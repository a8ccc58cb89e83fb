package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/planit-dev/planit/db"
	"github.com/planit-dev/planit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMeeting(t *testing.T) {
	r := setupApp(t)

	aliceID, token := registerUser(t, r, "alice", "alice@example.com", "secret123")

	teamID, _ := createTeam(t, r, token, aliceID, gin.H{
		"meetingTitle": "Kickoff",
		"meetingDate":  "2026-04-06",
	})

	t.Run("add meeting to team", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/teams/%d/meetings", teamID), token, gin.H{
			"meetingTitle":     "Review",
			"meetingDate":      "2026-04-13",
			"meetingStartTime": "10:00",
			"meetingEndTime":   "11:00",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.NotZero(t, decode(t, w)["meetingId"])
	})

	t.Run("unknown team", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/teams/9999/meetings", token, gin.H{
			"meetingTitle": "Ghost",
			"meetingDate":  "2026-04-13",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad invitation type", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/teams/%d/meetings", teamID), token, gin.H{
			"meetingTitle":   "Odd",
			"meetingDate":    "2026-04-13",
			"invitationType": "optional",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reversed times", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/teams/%d/meetings", teamID), token, gin.H{
			"meetingTitle":     "Odd",
			"meetingDate":      "2026-04-13",
			"meetingStartTime": "11:00",
			"meetingEndTime":   "10:00",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateMeeting(t *testing.T) {
	r := setupApp(t)

	aliceID, token := registerUser(t, r, "alice", "alice@example.com", "secret123")
	bobID, _ := registerUser(t, r, "bob", "bob@example.com", "secret123")
	carolID, _ := registerUser(t, r, "carol", "carol@example.com", "secret123")

	teamID, meetingID := createTeam(t, r, token, aliceID, gin.H{
		"meetingTitle":     "Sprint planning",
		"meetingDate":      "2026-04-06",
		"meetingStartTime": "09:00",
		"meetingEndTime":   "10:00",
		"invitationType":   "mandatory",
		"invitedEmails":    []string{"bob@example.com"},
	})

	t.Run("changelog notifies accepted members", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/meetings/%d", meetingID), token, gin.H{
			"meetingTitle":     "Sprint planning",
			"meetingDate":      "2026-04-07",
			"meetingStartTime": "10:00",
			"meetingEndTime":   "11:00",
			"invitationType":   "mandatory",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		changes := decode(t, w)["changes"].([]interface{})
		assert.Contains(t, changes, "moved from 2026-04-06 to 2026-04-07")
		assert.Contains(t, changes, "now runs from 10:00 to 11:00")

		// Bob accepted (mandatory pre-accept), so he gets an update notification
		var notification models.Notification
		require.NoError(t, db.DB.Where("user_id = ? AND type = ?", bobID, models.NotificationMeetingUpdate).First(&notification).Error)
		assert.Contains(t, notification.Message, "has been updated")
	})

	t.Run("no-op update sends nothing new", func(t *testing.T) {
		var before int64
		require.NoError(t, db.DB.Model(&models.Notification{}).Count(&before).Error)

		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/meetings/%d", meetingID), token, gin.H{
			"meetingTitle":     "Sprint planning",
			"meetingDate":      "2026-04-07",
			"meetingStartTime": "10:00",
			"meetingEndTime":   "11:00",
			"invitationType":   "mandatory",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, decode(t, w)["changes"])

		var after int64
		require.NoError(t, db.DB.Model(&models.Notification{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("new members get a pending request invitation", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/meetings/%d", meetingID), token, gin.H{
			"meetingTitle":     "Sprint planning",
			"meetingDate":      "2026-04-07",
			"meetingStartTime": "10:00",
			"meetingEndTime":   "11:00",
			"invitationType":   "mandatory",
			"newMemberEmails":  []string{"carol@example.com"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Even on a mandatory meeting, late additions must opt in
		var invitation models.MeetingInvitation
		require.NoError(t, db.DB.Where("meeting_id = ? AND user_id = ?", meetingID, carolID).First(&invitation).Error)
		assert.Equal(t, models.InvitationPending, invitation.Status)
		assert.Equal(t, models.InvitationTypeRequest, invitation.InvitationType)

		var count int64
		require.NoError(t, db.DB.Model(&models.TeamMembership{}).
			Where("team_id = ? AND user_id = ?", teamID, carolID).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		require.NoError(t, db.DB.Model(&models.Notification{}).
			Where("user_id = ? AND type = ?", carolID, models.NotificationMeetingInvitation).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("removed members lose their invitation and are told", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/meetings/%d", meetingID), token, gin.H{
			"meetingTitle":     "Sprint planning",
			"meetingDate":      "2026-04-07",
			"meetingStartTime": "10:00",
			"meetingEndTime":   "11:00",
			"invitationType":   "mandatory",
			"removedMemberIds": []uint{bobID},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var count int64
		require.NoError(t, db.DB.Model(&models.MeetingInvitation{}).
			Where("meeting_id = ? AND user_id = ?", meetingID, bobID).Count(&count).Error)
		assert.Zero(t, count)

		var removal models.Notification
		require.NoError(t, db.DB.Where("user_id = ? AND title = ?", bobID, "Removed from meeting").First(&removal).Error)
		assert.Contains(t, removal.Message, "removed from")
	})

	t.Run("removing a non-invitee is a no-op", func(t *testing.T) {
		var before int64
		require.NoError(t, db.DB.Model(&models.Notification{}).Count(&before).Error)

		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/meetings/%d", meetingID), token, gin.H{
			"meetingTitle":     "Sprint planning",
			"meetingDate":      "2026-04-07",
			"meetingStartTime": "10:00",
			"meetingEndTime":   "11:00",
			"invitationType":   "mandatory",
			"removedMemberIds": []uint{bobID},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var after int64
		require.NoError(t, db.DB.Model(&models.Notification{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/meetings/9999", token, gin.H{
			"meetingTitle": "Ghost",
			"meetingDate":  "2026-04-07",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteMeeting(t *testing.T) {
	r := setupApp(t)

	aliceID, token := registerUser(t, r, "alice", "alice@example.com", "secret123")
	bobID, _ := registerUser(t, r, "bob", "bob@example.com", "secret123")

	_, meetingID := createTeam(t, r, token, aliceID, gin.H{
		"meetingTitle":   "Retro",
		"meetingDate":    "2026-04-10",
		"invitationType": "request",
		"invitedEmails":  []string{"bob@example.com"},
	})

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/meetings/%d", meetingID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64

	require.NoError(t, db.DB.Model(&models.MeetingInvitation{}).Where("meeting_id = ?", meetingID).Count(&count).Error)
	assert.Zero(t, count)

	// Invitation notification is swept, cancellation remains with no target
	require.NoError(t, db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", bobID, models.NotificationMeetingInvitation).Count(&count).Error)
	assert.Zero(t, count)

	var cancelled models.Notification
	require.NoError(t, db.DB.Where("user_id = ? AND type = ?", bobID, models.NotificationMeetingCancelled).First(&cancelled).Error)
	assert.Nil(t, cancelled.RelatedID)
	assert.Contains(t, cancelled.Message, "cancelled")

	t.Run("second delete is a 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/meetings/%d", meetingID), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

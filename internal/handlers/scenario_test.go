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

// TestPlanningWeek walks one user through a typical first week: sign up,
// plan a goal, create a team that invites herself to a request meeting,
// and decline it.
func TestPlanningWeek(t *testing.T) {
	r := setupApp(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "dana",
		"email":    "dana@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	danaID := uint(body["userId"].(float64))
	token := body["token"].(string)

	// Re-registration with the same email fails
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "dana again",
		"email":    "dana@example.com",
		"password": "secret456",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// A typo'd password does not get in
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "dana@example.com",
		"password": "secret124",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Plan a goal with two timelines
	w = doJSON(t, r, http.MethodPost, "/api/goals", token, gin.H{
		"userId":    danaID,
		"goalTitle": "Ship the side project",
		"timelines": []gin.H{
			{"timelineTitle": "Prototype", "timelineStartDate": "2026-04-01", "timelineEndDate": "2026-04-15"},
			{"timelineTitle": "Polish", "timelineStartDate": "2026-04-16", "timelineEndDate": "2026-04-30"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	goalID := uint(decode(t, w)["goalId"].(float64))

	// Trim it down to one timeline, then hit the guard
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/goals/%d", goalID), token, gin.H{
		"goalTitle": "Ship the side project",
		"timelines": []gin.H{
			{"timelineTitle": "Just ship it", "timelineStartDate": "2026-04-01"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	lastTimelineID := uint(decode(t, w)["timelineIds"].([]interface{})[0].(float64))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/timelines/%d", lastTimelineID), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// A solo team whose request meeting invites her own address. The
	// creator is resolved like any other invitee: pending invitation plus
	// a notification.
	w = doJSON(t, r, http.MethodPost, "/api/teams", token, gin.H{
		"createdByUserId": danaID,
		"teamName":        "Just me",
		"meetings": []gin.H{
			{
				"meetingTitle":   "Focus block",
				"meetingDate":    "2026-04-03",
				"invitationType": "request",
				"invitedEmails":  []string{"dana@example.com"},
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	meetingID := uint(decode(t, w)["meetingIds"].([]interface{})[0].(float64))

	// Membership was not duplicated by the self-invite
	var memberships int64
	require.NoError(t, db.DB.Model(&models.TeamMembership{}).Where("user_id = ?", danaID).Count(&memberships).Error)
	assert.Equal(t, int64(1), memberships)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/notifications?userId=%d", danaID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), decode(t, w)["unreadCount"])

	// Decline her own meeting; the notification flips to read
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/meeting-invitations/%d/respond", meetingID), token, gin.H{
		"userId":   danaID,
		"response": "declined",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/notifications?userId=%d", danaID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["unreadCount"])

	// As creator she still sees the meeting despite declining
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/teams?userId=%d", danaID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	teams := decode(t, w)["teams"].([]interface{})
	require.Len(t, teams, 1)

	meetings := teams[0].(map[string]interface{})["meetings"].([]interface{})
	require.Len(t, meetings, 1)
	assert.Equal(t, "declined", meetings[0].(map[string]interface{})["invitationStatus"])
}

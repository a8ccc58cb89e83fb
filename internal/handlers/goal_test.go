package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalLifecycle(t *testing.T) {
	r := setupApp(t)

	userID, token := registerUser(t, r, "alice", "alice@example.com", "secret123")

	w := doJSON(t, r, http.MethodPost, "/api/goals", token, gin.H{
		"userId":          userID,
		"goalTitle":       "Learn guitar",
		"goalDescription": "Three chords and the truth",
		"goalCategory":    "hobby",
		"goalProgress":    10,
		"timelines": []gin.H{
			{"timelineTitle": "Basics", "timelineStartDate": "2026-04-01", "timelineEndDate": "2026-05-01"},
			{"timelineTitle": "First song", "timelineStartDate": "2026-05-02"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	goalID := uint(body["goalId"].(float64))
	timelineIDs := body["timelineIds"].([]interface{})
	require.Len(t, timelineIDs, 2)

	t.Run("list includes timelines ordered by start date", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/goals?userId=%d", userID), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		goals := decode(t, w)["goals"].([]interface{})
		require.Len(t, goals, 1)

		goal := goals[0].(map[string]interface{})
		assert.Equal(t, "Learn guitar", goal["goalTitle"])

		timelines := goal["timelines"].([]interface{})
		require.Len(t, timelines, 2)
		assert.Equal(t, "Basics", timelines[0].(map[string]interface{})["timelineTitle"])
		assert.Equal(t, "First song", timelines[1].(map[string]interface{})["timelineTitle"])
	})

	t.Run("update replaces the timeline set", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/goals/%d", goalID), token, gin.H{
			"goalTitle":    "Learn guitar properly",
			"goalProgress": 25,
			"timelines": []gin.H{
				{"timelineTitle": "Scales", "timelineStartDate": "2026-04-15"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		newIDs := decode(t, w)["timelineIds"].([]interface{})
		require.Len(t, newIDs, 1)

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/goals?userId=%d", userID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		goal := decode(t, w)["goals"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, "Learn guitar properly", goal["goalTitle"])
		assert.Equal(t, float64(25), goal["goalProgress"])
		assert.Len(t, goal["timelines"].([]interface{}), 1)
	})

	t.Run("cannot delete the last timeline", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/goals?userId=%d", userID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		goal := decode(t, w)["goals"].([]interface{})[0].(map[string]interface{})
		timelines := goal["timelines"].([]interface{})
		require.Len(t, timelines, 1)
		lastID := uint(timelines[0].(map[string]interface{})["timelineId"].(float64))

		w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/timelines/%d", lastID), token, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cannot delete the last timeline of a goal", decode(t, w)["message"])
	})

	t.Run("delete goal removes timelines", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/goals/%d", goalID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Goal and all timelines deleted successfully", decode(t, w)["message"])

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/goals?userId=%d", userID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["goals"])
	})
}

func TestGoalValidation(t *testing.T) {
	r := setupApp(t)

	userID, token := registerUser(t, r, "alice", "alice@example.com", "secret123")

	t.Run("at least one timeline", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/goals", token, gin.H{
			"userId":    userID,
			"goalTitle": "Empty goal",
			"timelines": []gin.H{},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "At least one timeline is required", decode(t, w)["message"])
	})

	t.Run("bad timeline date rolls back the goal", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/goals", token, gin.H{
			"userId":    userID,
			"goalTitle": "Broken goal",
			"timelines": []gin.H{
				{"timelineTitle": "Bad", "timelineStartDate": "April 1st"},
			},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/goals?userId=%d", userID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["goals"])
	})

	t.Run("reversed timeline times", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/goals", token, gin.H{
			"userId":    userID,
			"goalTitle": "Broken goal",
			"timelines": []gin.H{
				{
					"timelineTitle":     "Bad",
					"timelineStartDate": "2026-04-01",
					"timelineStartTime": "15:00",
					"timelineEndTime":   "14:00",
				},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update unknown goal", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/goals/9999", token, gin.H{
			"goalTitle": "Ghost",
			"timelines": []gin.H{
				{"timelineTitle": "T", "timelineStartDate": "2026-04-01"},
			},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

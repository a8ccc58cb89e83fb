package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLifecycle(t *testing.T) {
	r := setupApp(t)

	userID, token := registerUser(t, r, "alice", "alice@example.com", "secret123")

	w := doJSON(t, r, http.MethodPost, "/api/activities", token, gin.H{
		"userId":            userID,
		"activityTitle":     "Morning run",
		"activityCategory":  "health",
		"activityUrgency":   "low",
		"activityDate":      "2026-04-02",
		"activityStartTime": "07:00",
		"activityEndTime":   "08:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	activityID := uint(decode(t, w)["activityId"].(float64))

	// A second activity a day earlier, untimed
	w = doJSON(t, r, http.MethodPost, "/api/activities", token, gin.H{
		"userId":        userID,
		"activityTitle": "Groceries",
		"activityDate":  "2026-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("list is ordered by date then time", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/activities?userId=%d", userID), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		activities := decode(t, w)["activities"].([]interface{})
		require.Len(t, activities, 2)
		assert.Equal(t, "Groceries", activities[0].(map[string]interface{})["activityTitle"])
		assert.Equal(t, "Morning run", activities[1].(map[string]interface{})["activityTitle"])
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/activities/%d", activityID), token, gin.H{
			"activityTitle":     "Evening run",
			"activityDate":      "2026-04-02",
			"activityStartTime": "18:00",
			"activityEndTime":   "19:00",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("update unknown id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/activities/9999", token, gin.H{
			"activityTitle": "Ghost",
			"activityDate":  "2026-04-02",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/activities/%d", activityID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/activities/%d", activityID), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestActivityValidation(t *testing.T) {
	r := setupApp(t)

	userID, token := registerUser(t, r, "alice", "alice@example.com", "secret123")

	t.Run("malformed date", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/activities", token, gin.H{
			"userId":        userID,
			"activityTitle": "Run",
			"activityDate":  "02/04/2026",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed time", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/activities", token, gin.H{
			"userId":            userID,
			"activityTitle":     "Run",
			"activityDate":      "2026-04-02",
			"activityStartTime": "7am",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reversed time range", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/activities", token, gin.H{
			"userId":            userID,
			"activityTitle":     "Run",
			"activityDate":      "2026-04-02",
			"activityStartTime": "09:00",
			"activityEndTime":   "08:00",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "start time must not be after end time", decode(t, w)["message"])
	})

	t.Run("missing user id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/activities", token, gin.H{
			"activityTitle": "Run",
			"activityDate":  "2026-04-02",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

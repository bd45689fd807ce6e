package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
)

func TestNewMeResponse(t *testing.T) {
	user := models.User{
		ID:           3,
		BranchID:     1,
		Branch:       models.Branch{ID: 1, Name: "North", Timezone: "Asia/Tokyo"},
		Name:         "Sam",
		Email:        "sam@care.example",
		PasswordHash: "secret",
		Role:         "coordinator",
	}

	before := timezone.Today("Asia/Tokyo")
	resp := newMeResponse(user, rosterCounts{Carers: 12, Clients: 40, Unassigned: 5})
	after := timezone.Today("Asia/Tokyo")

	assert.Equal(t, meUser{ID: 3, Name: "Sam", Email: "sam@care.example", Role: "coordinator", BranchID: 1}, resp.User)
	assert.Equal(t, "North", resp.Branch.Name)
	assert.Equal(t, int64(5), resp.Roster.Unassigned)

	// Today follows the branch clock, not the server's.
	assert.Contains(t, []string{before, after}, resp.Today)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func TestGetMeRequiresIdentity(t *testing.T) {
	h := NewMeHandler(nil)
	r := gin.New()
	r.GET("/me", h.GetMe)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user_not_in_context", body.Code)
}

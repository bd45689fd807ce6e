package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSlots(t *testing.T) {
	h := NewScheduleHandler(nil)
	r := gin.New()
	r.GET("/api/schedule/slots", h.Slots)

	tests := []struct {
		query     string
		wantCode  int
		wantCount int
	}{
		{query: "", wantCode: http.StatusOK, wantCount: 24},
		{query: "?interval=30", wantCode: http.StatusOK, wantCount: 48},
		{query: "?interval=45", wantCode: http.StatusBadRequest},
		{query: "?interval=half", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schedule/slots"+tt.query, nil))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusOK {
				var body httperr.HTTPError
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "invalid_interval", body.Code)
				return
			}

			var body struct {
				Count int      `json:"count"`
				Slots []string `json:"slots"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCount, body.Count)
			assert.Len(t, body.Slots, tt.wantCount)
			assert.Equal(t, "00:00", body.Slots[0])
		})
	}
}

func TestGridRejectsNonNumericInterval(t *testing.T) {
	h := NewScheduleHandler(nil)
	r := gin.New()
	r.GET("/grid", withIdentity(1, 1), h.StaffGrid)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/grid?interval=hourly", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMapBookingErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{err: httperr.ErrBusiness("booking_not_found"), wantCode: http.StatusNotFound, wantBody: "booking_not_found"},
		{err: httperr.ErrBusiness("staff_not_found"), wantCode: http.StatusNotFound, wantBody: "staff_not_found"},
		{err: httperr.ErrBusiness("invalid_state"), wantCode: http.StatusBadRequest, wantBody: "invalid_state"},
		{err: httperr.ErrBusiness("status_unchanged"), wantCode: http.StatusBadRequest, wantBody: "status_unchanged"},
		{err: httperr.ErrBusiness("invalid_date"), wantCode: http.StatusBadRequest, wantBody: "invalid_date_or_time"},
		{err: httperr.ErrBusiness("time_conflict"), wantCode: http.StatusConflict, wantBody: "time_conflict"},
		{err: errors.New("connection reset"), wantCode: http.StatusInternalServerError, wantBody: "failed_to_update_booking"},
	}

	for _, tt := range tests {
		t.Run(tt.wantBody, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			mapBookingErrors(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var body httperr.HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}

func TestBookingHandlerValidatesBody(t *testing.T) {
	h := NewBookingHandler(nil, nil)
	r := gin.New()
	r.PATCH("/bookings/:id/reassign", withIdentity(1, 1), h.Reassign)
	r.PATCH("/bookings/:id/status", withIdentity(1, 1), h.UpdateStatus)

	tests := []struct {
		name     string
		path     string
		body     string
		wantBody string
	}{
		{name: "reassign malformed", path: "/bookings/b1/reassign", body: `{`, wantBody: "invalid_request"},
		{name: "reassign empty", path: "/bookings/b1/reassign", body: `{}`, wantBody: "nothing_to_change"},
		{name: "status missing", path: "/bookings/b1/status", body: `{}`, wantBody: "invalid_request"},
		{name: "status unknown", path: "/bookings/b1/status", body: `{"status":"pending"}`, wantBody: "invalid_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body httperr.HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}

func withIdentity(userID, branchID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextBranchID, branchID)
		c.Next()
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

func TestParseAuditLogFilter(t *testing.T) {
	tests := []struct {
		query    string
		wantCode string
		want     auditLogFilter
	}{
		{
			query: "",
			want:  auditLogFilter{Page: 1, Limit: 50},
		},
		{
			query: "?action=booking_reassigned&booking_id=b1&from=2025-03-01&to=2025-03-31&page=3&limit=20",
			want: auditLogFilter{
				Action:    audit.ActionBookingReassigned,
				BookingID: "b1",
				From:      "2025-03-01",
				To:        "2025-03-31",
				Page:      3,
				Limit:     20,
			},
		},
		{
			query: "?page=-2&limit=500",
			want:  auditLogFilter{Page: 1, Limit: 50},
		},
		{query: "?action=login", wantCode: "invalid_action"},
		{query: "?from=01/03/2025", wantCode: "invalid_date"},
		{query: "?from=2025-03-10&to=2025-03-01", wantCode: "invalid_date"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/audit-logs"+tt.query, nil)

			got, code := parseAuditLogFilter(c)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantCode == "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAuditLogsRejectsBadFilter(t *testing.T) {
	h := NewAuditLogsHandler(nil)
	r := gin.New()
	r.GET("/audit-logs", withIdentity(1, 1), h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit-logs?action=drop_table", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid_action", body.Code)
}

func TestToAuditLogView(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uint(7)

	v := toAuditLogView(models.AuditLog{
		ID:        1,
		UserID:    &userID,
		Action:    audit.ActionBookingStatusChanged,
		Entity:    audit.EntityBooking,
		EntityID:  "b1",
		Metadata:  `{"from":"assigned","to":"done"}`,
		CreatedAt: at,
	})

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"user_id": 7,
		"action": "booking_status_changed",
		"booking_id": "b1",
		"metadata": {"from": "assigned", "to": "done"},
		"created_at": "2025-03-10T09:00:00Z"
	}`, string(raw))

	legacy := toAuditLogView(models.AuditLog{Action: "booking_reassigned", Metadata: "moved"})
	assert.JSONEq(t, `"moved"`, string(legacy.Metadata))
	assert.Empty(t, legacy.BookingID)

	empty := toAuditLogView(models.AuditLog{})
	assert.JSONEq(t, `null`, string(empty.Metadata))
}

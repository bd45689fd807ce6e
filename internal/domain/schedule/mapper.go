package schedule

import (
	"strings"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

// BookingFromModel copies a stored booking into the layout engine's shape.
// It does not validate; run ValidBookings on the result.
func BookingFromModel(m models.Booking) Booking {
	b := Booking{
		ID:               m.ID,
		ClientID:         m.ClientID,
		ClientName:       m.Client.FullName(),
		Date:             m.Date,
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		Status:           Status(m.Status),
		Notes:            m.Notes,
		IsLateStart:      m.IsLateStart,
		IsMissed:         m.IsMissed,
		LateStartMinutes: m.LateStartMinutes,
	}
	if m.StaffID != nil {
		b.CarerID = *m.StaffID
	}
	if m.Staff != nil {
		b.CarerName = m.Staff.FullName()
	}
	return b
}

func LeaveFromModel(m models.LeaveRequest) Leave {
	return Leave{
		StaffID:   m.StaffID,
		Type:      m.LeaveType,
		Status:    m.Status,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
	}
}

func HolidayFromModel(m models.Holiday) Holiday {
	h := Holiday{
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Yearly:    m.Yearly,
	}
	for _, id := range strings.Split(m.StaffIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			h.StaffIDs = append(h.StaffIDs, id)
		}
	}
	return h
}

func WorkingHoursFromModel(m models.WorkingHours) WorkingHours {
	return WorkingHours{
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
}

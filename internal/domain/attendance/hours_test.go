package attendance

import (
	"testing"
	"time"
)

func ts(hour, min int) *time.Time {
	t := time.Date(2025, 6, 16, hour, min, 0, 0, time.UTC)
	return &t
}

func TestComputeHours(t *testing.T) {
	cases := []struct {
		name         string
		checkIn      *time.Time
		checkOut     *time.Time
		breakStart   *time.Time
		breakEnd     *time.Time
		wantTotal    float64
		wantOvertime float64
		wantStatus   string
	}{
		{
			name:     "full day with overtime",
			checkIn:  ts(9, 0), checkOut: ts(18, 0),
			wantTotal: 9.00, wantOvertime: 1.00, wantStatus: StatusPresent,
		},
		{
			name:    "half day",
			checkIn: ts(9, 0), checkOut: ts(13, 0),
			wantTotal: 4.00, wantOvertime: 0, wantStatus: StatusHalfDay,
		},
		{
			name:    "partial",
			checkIn: ts(9, 0), checkOut: ts(11, 0),
			wantTotal: 2.00, wantOvertime: 0, wantStatus: StatusPartial,
		},
		{
			name:    "break subtracted",
			checkIn: ts(9, 0), checkOut: ts(18, 0),
			breakStart: ts(13, 0), breakEnd: ts(14, 0),
			wantTotal: 8.00, wantOvertime: 0, wantStatus: StatusPresent,
		},
		{
			name:    "open break ignored",
			checkIn: ts(9, 0), checkOut: ts(18, 0),
			breakStart: ts(13, 0),
			wantTotal:  9.00, wantOvertime: 1.00, wantStatus: StatusPresent,
		},
		{
			name:    "fractional hours rounded to two decimals",
			checkIn: ts(9, 0), checkOut: ts(17, 20),
			wantTotal: 8.33, wantOvertime: 0.33, wantStatus: StatusPresent,
		},
		{
			// Negative durations are not guarded; the record falls
			// into the partial bucket.
			name:    "check-out before check-in",
			checkIn: ts(18, 0), checkOut: ts(9, 0),
			wantTotal: -9.00, wantOvertime: 0, wantStatus: StatusPartial,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := &Attendance{
				CheckIn:    c.checkIn,
				CheckOut:   c.checkOut,
				BreakStart: c.breakStart,
				BreakEnd:   c.breakEnd,
				Status:     StatusOpen,
			}
			now := time.Now()
			ComputeHours(a, now)

			if a.TotalHours == nil || *a.TotalHours != c.wantTotal {
				t.Errorf("TotalHours = %v, want %v", a.TotalHours, c.wantTotal)
			}
			if a.OvertimeHours == nil || *a.OvertimeHours != c.wantOvertime {
				t.Errorf("OvertimeHours = %v, want %v", a.OvertimeHours, c.wantOvertime)
			}
			if a.Status != c.wantStatus {
				t.Errorf("Status = %q, want %q", a.Status, c.wantStatus)
			}
			if !a.UpdatedAt.Equal(now) {
				t.Errorf("UpdatedAt = %v, want %v", a.UpdatedAt, now)
			}
		})
	}
}

func TestComputeHoursOpenSession(t *testing.T) {
	a := &Attendance{
		CheckIn: ts(9, 0),
		Status:  StatusOpen,
	}
	now := time.Now()
	ComputeHours(a, now)

	if a.TotalHours != nil || a.OvertimeHours != nil {
		t.Errorf("open session must keep derived hours nil, got total=%v overtime=%v",
			a.TotalHours, a.OvertimeHours)
	}
	if a.Status != StatusOpen {
		t.Errorf("open session status = %q, want %q", a.Status, StatusOpen)
	}
	if !a.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt must be stamped on every save, got %v", a.UpdatedAt)
	}
}

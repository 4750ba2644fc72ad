package attendance

import (
	"math"
	"time"
)

const (
	standardDayHours  = 8.0
	halfDayFloorHours = 4.0
)

// ComputeHours derives total hours, overtime and the status label for a
// record. It runs before every save of an attendance record, inside the
// same transaction as the write.
//
// When check-out is absent the record is an open session and the derived
// fields are left untouched. updated_at is stamped either way.
//
// A check-out earlier than check-in is not guarded: the negative total
// lands in the "partial" bucket. Callers that care should log it.
func ComputeHours(a *Attendance, now time.Time) {
	a.UpdatedAt = now

	if a.CheckIn == nil || a.CheckOut == nil {
		return
	}

	workHours := a.CheckOut.Sub(*a.CheckIn).Seconds() / 3600

	var breakHours float64
	if a.BreakStart != nil && a.BreakEnd != nil {
		breakHours = a.BreakEnd.Sub(*a.BreakStart).Seconds() / 3600
	}

	total := round2(workHours - breakHours)

	overtime := 0.0
	if total > standardDayHours {
		overtime = round2(total - standardDayHours)
	}

	status := StatusPartial
	switch {
	case total >= standardDayHours:
		status = StatusPresent
	case total >= halfDayFloorHours:
		status = StatusHalfDay
	}

	a.TotalHours = &total
	a.OvertimeHours = &overtime
	a.Status = status
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/attendance"
)

const staleSessionAge = 24 * time.Hour

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{attendanceRepo: attendanceRepo}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_open_sessions", 1*time.Hour, j.CloseOpenSessions)
}

// CloseOpenSessions force-closes sessions whose check-in is older than
// the stale cutoff. The forced check-out goes through the same hours
// computation as a regular clock-out, so the derived fields stay
// consistent with manual records.
func (j *AttendanceJobs) CloseOpenSessions(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-staleSessionAge)

	sessions, err := j.attendanceRepo.ListOpenSessionsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	now := time.Now().UTC()
	closed := 0
	for _, session := range sessions {
		checkOut := now
		if session.CheckIn != nil {
			checkOut = session.CheckIn.Add(staleSessionAge)
		}
		session.CheckOut = &checkOut

		note := "auto-closed: no check-out recorded"
		if session.Notes != nil && *session.Notes != "" {
			note = *session.Notes + "; " + note
		}
		session.Notes = &note

		attendance.ComputeHours(&session, now)

		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: Auto-closed stale attendance sessions", "count", closed)
	return nil
}

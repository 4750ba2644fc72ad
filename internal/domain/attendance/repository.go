package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update persists all mutable and derived fields of a record
	Update(ctx context.Context, attendance Attendance) error

	// HasCheckedInToday reports whether the employee already has a record
	// for the given date. Used to prevent double check-in.
	HasCheckedInToday(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// GetOpenSession retrieves the employee's attendance record without a
	// check-out, if any.
	GetOpenSession(ctx context.Context, employeeID string) (Attendance, error)

	// ListOpenSessionsBefore retrieves open sessions whose check-in is
	// older than the cutoff. Used by the auto close job.
	ListOpenSessionsBefore(ctx context.Context, cutoff time.Time) ([]Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves attendance records for a specific employee
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]Attendance, int64, error)
}

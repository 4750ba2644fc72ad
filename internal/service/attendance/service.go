package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/attendance"
	"github.com/armadahr/hrm-backend-go/internal/domain/employee"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	nowUTC := time.Now().UTC()
	workDate := nowUTC.Truncate(24 * time.Hour)

	hasCheckedIn, err := a.AttendanceRepository.HasCheckedInToday(ctx, emp.ID, workDate)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if hasCheckedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       workDate,
		CheckIn:    &nowUTC,
		Status:     attendance.StatusOpen,
		Notes:      req.Notes,
	}

	// Before-save hook. An open session only gets its updated_at
	// stamped; derived fields stay untouched.
	attendance.ComputeHours(&record, nowUTC)

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return toResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
// A missing open session means either the employee never clocked in
// today or the session is already closed; the two get distinct errors.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			workDate := time.Now().UTC().Truncate(24 * time.Hour)
			checkedIn, checkErr := a.AttendanceRepository.HasCheckedInToday(ctx, employeeID, workDate)
			if checkErr != nil {
				return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", checkErr)
			}
			if checkedIn {
				return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
			}
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	nowUTC := time.Now().UTC()
	record.CheckOut = &nowUTC
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	a.computeAndWarn(&record, nowUTC)

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toResponse(record), nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if record.BreakStart != nil {
		return attendance.AttendanceResponse{}, attendance.ErrBreakAlreadyTaken
	}

	nowUTC := time.Now().UTC()
	record.BreakStart = &nowUTC

	attendance.ComputeHours(&record, nowUTC)

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toResponse(record), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if record.BreakStart == nil {
		return attendance.AttendanceResponse{}, attendance.ErrBreakNotStarted
	}
	if record.BreakEnd != nil {
		return attendance.AttendanceResponse{}, attendance.ErrBreakAlreadyTaken
	}

	nowUTC := time.Now().UTC()
	record.BreakEnd = &nowUTC

	attendance.ComputeHours(&record, nowUTC)

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toResponse(record), nil
}

// Update implements attendance.AttendanceService.
// The manual correction path: only the provided fields change, and the
// derived values are recomputed by the same rule as the clock-out path.
// A record without a check-out keeps its derived fields untouched, no
// matter which other fields are edited.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckIn)
		record.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.CheckOut)
		record.CheckOut = &t
	}
	if req.BreakStart != nil {
		t, _ := time.Parse(time.RFC3339, *req.BreakStart)
		record.BreakStart = &t
	}
	if req.BreakEnd != nil {
		t, _ := time.Parse(time.RFC3339, *req.BreakEnd)
		record.BreakEnd = &t
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	a.computeAndWarn(&record, time.Now().UTC())

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return toResponse(record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return toResponses(records), total, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return toResponses(records), total, nil
}

func (a *AttendanceServiceImpl) computeAndWarn(record *attendance.Attendance, now time.Time) {
	attendance.ComputeHours(record, now)
	if record.TotalHours != nil && *record.TotalHours < 0 {
		slog.Warn("attendance record has negative total hours",
			"attendance_id", record.ID,
			"employee_id", record.EmployeeID,
			"total_hours", *record.TotalHours,
		)
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func toResponse(record attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		EmployeeName:  record.EmployeeName,
		Date:          record.Date.Format("2006-01-02"),
		CheckIn:       timePtrToString(record.CheckIn),
		CheckOut:      timePtrToString(record.CheckOut),
		BreakStart:    timePtrToString(record.BreakStart),
		BreakEnd:      timePtrToString(record.BreakEnd),
		TotalHours:    record.TotalHours,
		OvertimeHours: record.OvertimeHours,
		Status:        record.Status,
		Notes:         record.Notes,
	}
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses
}

package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/attendance"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date,
	a.check_in, a.check_out, a.break_start, a.break_end,
	a.total_hours, a.overtime_hours, a.status, a.notes,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date,
		&a.CheckIn, &a.CheckOut, &a.BreakStart, &a.BreakEnd,
		&a.TotalHours, &a.OvertimeHours, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date,
			check_in, check_out, break_start, break_end,
			total_hours, overtime_hours, status, notes,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6,
			$7, $8, $9, $10,
			NOW(), $11
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.Date,
		a.CheckIn, a.CheckOut, a.BreakStart, a.BreakEnd,
		a.TotalHours, a.OvertimeHours, a.Status, a.Notes,
		a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return attendance.Attendance{}, err
	}

	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.id = $1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

// Update implements attendance.AttendanceRepository.
// Persists every mutable field, derived values included; the service is
// the only writer of the derived columns.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_in = $2, check_out = $3,
			break_start = $4, break_end = $5,
			total_hours = $6, overtime_hours = $7,
			status = $8, notes = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		a.ID,
		a.CheckIn, a.CheckOut,
		a.BreakStart, a.BreakEnd,
		a.TotalHours, a.OvertimeHours,
		a.Status, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// HasCheckedInToday implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) HasCheckedInToday(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE employee_id = $1 AND date = $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists)
	return exists, err
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1 AND a.check_out IS NULL
		ORDER BY a.date DESC
		LIMIT 1
	`

	return scanAttendance(q.QueryRow(ctx, query, employeeID))
}

// ListOpenSessionsBefore implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpenSessionsBefore(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.check_out IS NULL AND a.check_in < $1
		ORDER BY a.check_in
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	i := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", i))
		args = append(args, *filter.EmployeeID)
		i++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", i))
		args = append(args, *filter.DateFrom)
		i++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", i))
		args = append(args, *filter.DateTo)
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name
		FROM attendance_records a
		JOIN employees e ON a.employee_id = e.id
		WHERE %s
		ORDER BY a.date DESC, a.check_in DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, i, i+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date,
			&a.CheckIn, &a.CheckOut, &a.BreakStart, &a.BreakEnd,
			&a.TotalHours, &a.OvertimeHours, &a.Status, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, a)
	}

	return records, total, rows.Err()
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	f := attendance.AttendanceFilter{
		EmployeeID: &employeeID,
		DateFrom:   filter.DateFrom,
		DateTo:     filter.DateTo,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	return r.List(ctx, f)
}

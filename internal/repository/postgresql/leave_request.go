package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/leave"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id,
			start_date, end_date, total_days,
			reason, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5,
			$6, $7,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.TotalDays,
		request.Reason, string(request.Status),
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.total_days,
			   lr.reason, lr.status,
			   lr.approved_by, lr.approved_at, lr.rejection_reason,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.id = $1
	`

	var request leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.EmployeeID, &request.LeaveTypeID,
		&request.StartDate, &request.EndDate, &request.TotalDays,
		&request.Reason, &request.Status,
		&request.ApprovedBy, &request.ApprovedAt, &request.RejectionReason,
		&request.CreatedAt, &request.UpdatedAt,
		&request.LeaveTypeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2,
			approved_by = $3, approved_at = $4,
			rejection_reason = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		request.ID, string(request.Status),
		request.ApprovedBy, request.ApprovedAt,
		request.RejectionReason,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// CountOverlapping implements leave.LeaveRequestRepository.
// The overlap test is inclusive on both endpoints: requests that share a
// single boundary day count as overlapping.
func (r *leaveRequestRepositoryImpl) CountOverlapping(
	ctx context.Context,
	employeeID, excludeID string,
	startDate, endDate time.Time,
) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// On the insert path the request has no id yet; a NULL exclusion
	// matches nothing instead of failing the uuid comparison.
	var exclude *string
	if excludeID != "" {
		exclude = &excludeID
	}

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE employee_id = $1
		AND ($2::uuid IS NULL OR id <> $2::uuid)
		AND status IN ('pending', 'approved')
		AND (
			($3 BETWEEN start_date AND end_date) OR
			($4 BETWEEN start_date AND end_date) OR
			(start_date BETWEEN $3 AND $4) OR
			(end_date BETWEEN $3 AND $4)
		)
	`

	var count int64
	err := q.QueryRow(ctx, query, employeeID, exclude, startDate, endDate).Scan(&count)
	return count, err
}

// GetByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, &employeeID, filter)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, nil, filter)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, employeeID *string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	i := 1

	if employeeID != nil {
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", i))
		args = append(args, *employeeID)
		i++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("lr.end_date >= $%d", i))
		args = append(args, *filter.DateFrom)
		i++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("lr.start_date <= $%d", i))
		args = append(args, *filter.DateTo)
		i++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM leave_requests lr WHERE " + where
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
		SELECT lr.id, lr.employee_id, lr.leave_type_id,
			   lr.start_date, lr.end_date, lr.total_days,
			   lr.reason, lr.status,
			   lr.approved_by, lr.approved_at, lr.rejection_reason,
			   lr.created_at, lr.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_requests lr
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		JOIN employees e ON lr.employee_id = e.id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, i, i+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var request leave.LeaveRequest
		if err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.LeaveTypeID,
			&request.StartDate, &request.EndDate, &request.TotalDays,
			&request.Reason, &request.Status,
			&request.ApprovedBy, &request.ApprovedAt, &request.RejectionReason,
			&request.CreatedAt, &request.UpdatedAt,
			&request.LeaveTypeName,
			&request.EmployeeName,
		); err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}

	return requests, total, rows.Err()
}

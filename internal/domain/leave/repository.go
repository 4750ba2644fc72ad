package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// EnsureExists lazily provisions the balance row for the natural key
	// with the default annual entitlement. Idempotent under concurrent
	// writers (insert-if-absent, conflict ignored).
	EnsureExists(ctx context.Context, employeeID, leaveTypeID string, year int) error

	// ApplyDebit moves days from current_balance to used_balance.
	// Returns the number of rows affected; zero means the balance row
	// does not exist and the adjustment was dropped.
	ApplyDebit(ctx context.Context, employeeID, leaveTypeID string, year int, days float64) (int64, error)

	// ApplyCredit reverses a debit by the same amount. Same no-op
	// semantics as ApplyDebit when the row is missing.
	ApplyCredit(ctx context.Context, employeeID, leaveTypeID string, year int, days float64) (int64, error)

	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	ListByYear(ctx context.Context, year int) ([]LeaveBalance, error)
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string, filter RequestFilter) ([]LeaveRequest, int64, error)
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, int64, error)

	// UpdateStatus persists a status change together with the approval
	// audit fields.
	UpdateStatus(ctx context.Context, request LeaveRequest) error

	// CountOverlapping counts other active (pending or approved)
	// requests of the employee whose date range touches or overlaps
	// [startDate, endDate] inclusively on both endpoints. The record
	// identified by excludeID is ignored; an empty excludeID excludes
	// nothing, for requests that have not been inserted yet.
	CountOverlapping(ctx context.Context, employeeID, excludeID string, startDate, endDate time.Time) (int64, error)
}

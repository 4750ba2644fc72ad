package leave

import (
	"time"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Code        *string
	Description *string
	IsActive    *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// IsActiveStatus reports whether a request in this status participates in
// overlap checking.
func IsActiveStatus(s LeaveRequestStatus) bool {
	return s == LeaveRequestStatusPending || s == LeaveRequestStatusApproved
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	TotalDays float64

	Reason string

	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// LedgerYear is the calendar year that scopes the balance row for this
// request, derived from the start date at write time. Editing the start
// date after approval moves the year the reversal targets; that quirk is
// kept as-is.
func (r LeaveRequest) LedgerYear() int {
	return r.StartDate.Year()
}

// LeaveBalance entity, one row per (employee, leave type, year).
// current_balance = accrued_balance - used_balance, maintained
// incrementally by the ledger.
type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	AccruedBalance float64
	UsedBalance    float64
	CurrentBalance float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	LeaveTypeName *string
	EmployeeName  *string
}

// DefaultAnnualEntitlement is the accrued balance a lazily created
// balance row starts with.
const DefaultAnnualEntitlement = 20.0

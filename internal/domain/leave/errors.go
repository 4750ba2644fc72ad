package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveTypeInactive            = errors.New("leave type is not active")
	ErrBalanceNotFound              = errors.New("leave balance not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")

	// ErrOverlappingRequest is the overlap guard firing: the employee
	// already holds an active request touching the same date range.
	ErrOverlappingRequest = errors.New("overlapping leave request exists for this employee")

	ErrInvalidDateRange = errors.New("end date must not be before start date")
)

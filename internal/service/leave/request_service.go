package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/employee"
	"github.com/armadahr/hrm-backend-go/internal/domain/leave"
	"github.com/armadahr/hrm-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// CreateRequest implements leave.LeaveService.
//
// The overlap guard, the insert and the balance provisioning run inside
// one transaction: a rejected write leaves no trace.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	if leaveType.IsActive != nil && !*leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if endDate.Before(startDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	request := leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: leaveType.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   calculateTotalDays(startDate, endDate),
		Reason:      req.Reason,
		Status:      leave.LeaveRequestStatusPending,
	}

	var created leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.checkOverlap(txCtx, request); err != nil {
			return err
		}

		created, err = s.LeaveRequestRepository.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		return s.applyLedger(txCtx, created, "")
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	return toRequestResponse(created), nil
}

// ApproveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveRequest(ctx context.Context, requestID string, approverID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.LeaveRequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		oldStatus := request.Status
		now := time.Now()
		request.Status = leave.LeaveRequestStatusApproved
		request.ApprovedBy = &approverID
		request.ApprovedAt = &now

		// Guard first: an overlap must abort before any ledger write.
		if err := s.checkOverlap(txCtx, request); err != nil {
			return err
		}

		if err := s.LeaveRequestRepository.UpdateStatus(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		return s.applyLedger(txCtx, request, oldStatus)
	})
}

// RejectRequest implements leave.LeaveService.
// Rejecting an approved request reverses the original debit; rejecting a
// pending one only flips the status.
func (s *LeaveServiceImpl) RejectRequest(ctx context.Context, requestID string, reason string, approverID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.LeaveRequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending &&
			request.Status != leave.LeaveRequestStatusApproved {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		oldStatus := request.Status
		now := time.Now()
		request.Status = leave.LeaveRequestStatusRejected
		request.RejectionReason = &reason
		request.ApprovedBy = &approverID
		request.ApprovedAt = &now

		if err := s.LeaveRequestRepository.UpdateStatus(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		return s.applyLedger(txCtx, request, oldStatus)
	})
}

// CancelRequest implements leave.LeaveService.
// Cancellation never touches the balance, even for approved requests.
func (s *LeaveServiceImpl) CancelRequest(ctx context.Context, requestID string, employeeID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.LeaveRequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.EmployeeID != employeeID {
			return leave.ErrLeaveRequestNotFound
		}
		if request.Status != leave.LeaveRequestStatusPending &&
			request.Status != leave.LeaveRequestStatusApproved {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		oldStatus := request.Status
		request.Status = leave.LeaveRequestStatusCancelled

		if err := s.LeaveRequestRepository.UpdateStatus(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		return s.applyLedger(txCtx, request, oldStatus)
	})
}

// checkOverlap is the overlap guard. It only applies to writes that put
// the request into an active status; the record being written is
// excluded from the count by identity once it has one (inserts don't).
func (s *LeaveServiceImpl) checkOverlap(ctx context.Context, request leave.LeaveRequest) error {
	if !leave.IsActiveStatus(request.Status) {
		return nil
	}

	count, err := s.LeaveRequestRepository.CountOverlapping(
		ctx, request.EmployeeID, request.ID, request.StartDate, request.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if count > 0 {
		return leave.ErrOverlappingRequest
	}
	return nil
}

// calculateTotalDays counts calendar days, both endpoints inclusive.
func calculateTotalDays(startDate, endDate time.Time) float64 {
	return float64(int(endDate.Sub(startDate).Hours()/24) + 1)
}

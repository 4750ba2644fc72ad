package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/employee"
	"github.com/armadahr/hrm-backend-go/internal/domain/leave"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return toRequestResponse(request), nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	requests, total, err := s.LeaveRequestRepository.GetByEmployeeID(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toRequestResponses(requests), total, nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toRequestResponses(requests), total, nil
}

// GetMyBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	balances, err := s.LeaveBalanceRepository.GetByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	return toBalanceResponses(balances), nil
}

// ListBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) ListBalances(ctx context.Context, year int) ([]leave.LeaveBalanceResponse, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	balances, err := s.LeaveBalanceRepository.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	return toBalanceResponses(balances), nil
}

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	leaveType := leave.LeaveType{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	created, err := s.LeaveTypeRepository.Create(ctx, leaveType)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return s.LeaveTypeRepository.List(ctx)
}

func toRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:              request.ID,
		EmployeeID:      request.EmployeeID,
		EmployeeName:    request.EmployeeName,
		LeaveTypeID:     request.LeaveTypeID,
		LeaveTypeName:   request.LeaveTypeName,
		StartDate:       request.StartDate.Format("2006-01-02"),
		EndDate:         request.EndDate.Format("2006-01-02"),
		TotalDays:       request.TotalDays,
		Reason:          request.Reason,
		Status:          string(request.Status),
		ApprovedBy:      request.ApprovedBy,
		RejectionReason: request.RejectionReason,
	}
}

func toRequestResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toRequestResponse(request))
	}
	return responses
}

func toBalanceResponses(balances []leave.LeaveBalance) []leave.LeaveBalanceResponse {
	responses := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.LeaveBalanceResponse{
			ID:             b.ID,
			EmployeeID:     b.EmployeeID,
			EmployeeName:   b.EmployeeName,
			LeaveTypeID:    b.LeaveTypeID,
			LeaveTypeName:  b.LeaveTypeName,
			Year:           b.Year,
			AccruedBalance: b.AccruedBalance,
			UsedBalance:    b.UsedBalance,
			CurrentBalance: b.CurrentBalance,
		})
	}
	return responses
}

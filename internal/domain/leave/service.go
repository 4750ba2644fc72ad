package leave

import "context"

type LeaveService interface {
	CreateRequest(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveRequest(ctx context.Context, requestID string, approverID string) error
	RejectRequest(ctx context.Context, requestID string, reason string, approverID string) error
	CancelRequest(ctx context.Context, requestID string, employeeID string) error

	GetRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	GetMyRequests(ctx context.Context, employeeID string, filter RequestFilter) ([]LeaveRequestResponse, int64, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]LeaveRequestResponse, int64, error)

	GetMyBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
	ListBalances(ctx context.Context, year int) ([]LeaveBalanceResponse, error)

	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
}

package attendance

import "context"

type AttendanceService interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	StartBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)
	EndBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter) ([]AttendanceResponse, int64, error)
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error)
}

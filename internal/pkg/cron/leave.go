package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/employee"
	"github.com/armadahr/hrm-backend-go/internal/domain/leave"
)

type LeaveJobs struct {
	balanceRepo   leave.LeaveBalanceRepository
	leaveTypeRepo leave.LeaveTypeRepository
	employeeRepo  employee.EmployeeRepository
}

func NewLeaveJobs(
	balanceRepo leave.LeaveBalanceRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
) *LeaveJobs {
	return &LeaveJobs{
		balanceRepo:   balanceRepo,
		leaveTypeRepo: leaveTypeRepo,
		employeeRepo:  employeeRepo,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("provision_balances", 24*time.Hour, j.ProvisionBalances)
}

// ProvisionBalances creates the current year's balance row for every
// active employee and active leave type. Rows that already exist are
// left alone, so the job can run as often as it likes.
func (j *LeaveJobs) ProvisionBalances(ctx context.Context) error {
	year := time.Now().Year()

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	leaveTypes, err := j.leaveTypeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leave types: %w", err)
	}

	provisioned := 0
	for _, emp := range employees {
		for _, lt := range leaveTypes {
			if lt.IsActive != nil && !*lt.IsActive {
				continue
			}
			if err := j.balanceRepo.EnsureExists(ctx, emp.ID, lt.ID, year); err != nil {
				slog.Error("Cron: Failed to provision leave balance",
					"employee_id", emp.ID,
					"leave_type_id", lt.ID,
					"year", year,
					"error", err)
				continue
			}
			provisioned++
		}
	}

	slog.Info("Cron: Provisioned leave balances", "year", year, "pairs", provisioned)
	return nil
}

package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/armadahr/hrm-backend-go/internal/domain/leave"
)

// applyLedger keeps the balance row consistent with a status change. It
// runs after the request write, inside the same transaction, and must
// only run once the overlap guard has passed.
//
// The balance row for the request's ledger year is provisioned on every
// firing; the transition table decides whether anything moves.
func (s *LeaveServiceImpl) applyLedger(ctx context.Context, request leave.LeaveRequest, oldStatus leave.LeaveRequestStatus) error {
	year := request.LedgerYear()

	if err := s.LeaveBalanceRepository.EnsureExists(ctx, request.EmployeeID, request.LeaveTypeID, year); err != nil {
		return fmt.Errorf("failed to ensure leave balance row: %w", err)
	}

	var affected int64
	var err error

	switch leave.EffectFor(oldStatus, request.Status) {
	case leave.EffectDebit:
		affected, err = s.LeaveBalanceRepository.ApplyDebit(ctx, request.EmployeeID, request.LeaveTypeID, year, request.TotalDays)
	case leave.EffectCredit:
		affected, err = s.LeaveBalanceRepository.ApplyCredit(ctx, request.EmployeeID, request.LeaveTypeID, year, request.TotalDays)
	case leave.EffectNone:
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to adjust leave balance: %w", err)
	}

	// Historically a missing balance row dropped the adjustment without
	// an error. The row is provisioned above so this should not happen;
	// log it loudly if it ever does.
	if affected == 0 {
		slog.Warn("leave balance adjustment dropped, no balance row matched",
			"employee_id", request.EmployeeID,
			"leave_type_id", request.LeaveTypeID,
			"year", year,
			"request_id", request.ID,
			"transition", fmt.Sprintf("%s->%s", oldStatus, request.Status),
		)
	}

	return nil
}

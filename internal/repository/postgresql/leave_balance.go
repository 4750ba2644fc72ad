package postgresql

import (
	"context"

	"github.com/armadahr/hrm-backend-go/internal/domain/leave"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// EnsureExists implements leave.LeaveBalanceRepository.
// Lazily provisions the balance row for the natural key. The conflict
// target makes first-time accrual idempotent under concurrent writers.
func (r *leaveBalanceRepositoryImpl) EnsureExists(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year,
			accrued_balance, used_balance, current_balance,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, 0, $4,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
	`

	_, err := q.Exec(ctx, query, employeeID, leaveTypeID, year, leave.DefaultAnnualEntitlement)
	return err
}

// ApplyDebit implements leave.LeaveBalanceRepository.
// A missing balance row is a silent no-op at this layer; the caller
// inspects the affected-row count.
func (r *leaveBalanceRepositoryImpl) ApplyDebit(ctx context.Context, employeeID, leaveTypeID string, year int, days float64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_balance = used_balance + $4,
			current_balance = current_balance - $4,
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, year, days)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ApplyCredit implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ApplyCredit(ctx context.Context, employeeID, leaveTypeID string, year int, days float64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_balance = used_balance - $4,
			current_balance = current_balance + $4,
			updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, year, days)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year,
			   accrued_balance, used_balance, current_balance,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.AccruedBalance, &b.UsedBalance, &b.CurrentBalance,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// GetByEmployeeAndYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year,
			   lb.accrued_balance, lb.used_balance, lb.current_balance,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.AccruedBalance, &b.UsedBalance, &b.CurrentBalance,
			&b.CreatedAt, &b.UpdatedAt,
			&b.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// ListByYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByYear(ctx context.Context, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.year,
			   lb.accrued_balance, lb.used_balance, lb.current_balance,
			   lb.created_at, lb.updated_at,
			   lt.name AS leave_type_name,
			   e.full_name AS employee_name
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		JOIN employees e ON lb.employee_id = e.id
		WHERE lb.year = $1
		ORDER BY e.full_name, lt.name
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.AccruedBalance, &b.UsedBalance, &b.CurrentBalance,
			&b.CreatedAt, &b.UpdatedAt,
			&b.LeaveTypeName,
			&b.EmployeeName,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

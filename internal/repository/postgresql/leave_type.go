package postgresql

import (
	"context"

	"github.com/armadahr/hrm-backend-go/internal/domain/leave"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (
			id, name, code, description, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, COALESCE($4, true),
			NOW(), NOW()
		) RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.Name, leaveType.Code, leaveType.Description, leaveType.IsActive,
	).Scan(&leaveType.ID, &leaveType.IsActive, &leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, err
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var leaveType leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&leaveType.ID, &leaveType.Name, &leaveType.Code,
		&leaveType.Description, &leaveType.IsActive,
		&leaveType.CreatedAt, &leaveType.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return leaveType, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, is_active, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var leaveType leave.LeaveType
		if err := rows.Scan(
			&leaveType.ID, &leaveType.Name, &leaveType.Code,
			&leaveType.Description, &leaveType.IsActive,
			&leaveType.CreatedAt, &leaveType.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, leaveType)
	}

	return types, rows.Err()
}

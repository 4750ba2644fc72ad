package employee

import "time"

// Employee is a lookup-only entity here. Employee CRUD lives outside
// this service.
type Employee struct {
	ID       string
	UserID   *string
	FullName string
	IsActive bool
	HireDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

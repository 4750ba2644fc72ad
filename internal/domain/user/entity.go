package user

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	EmployeeID   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

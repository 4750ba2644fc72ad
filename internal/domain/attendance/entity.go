package attendance

import (
	"time"
)

// Attendance status labels. Open sessions keep StatusOpen until the
// hours calculation runs on check-out.
const (
	StatusOpen    = "open"
	StatusPresent = "present"
	StatusHalfDay = "half_day"
	StatusPartial = "partial"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	CheckIn    *time.Time
	CheckOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time

	// Derived values, owned by the hours calculation. Application code
	// must never set these directly.
	TotalHours    *float64
	OvertimeHours *float64
	Status        string

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

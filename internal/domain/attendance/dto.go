package attendance

import (
	"github.com/armadahr/hrm-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// UpdateAttendanceRequest is the manual correction path. Timestamps are
// RFC3339 strings; only provided fields are touched. Derived fields are
// recomputed by the service, never accepted from the caller.
type UpdateAttendanceRequest struct {
	ID         string  `json:"attendance_id"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	for field, value := range map[string]*string{
		"check_in":    r.CheckIn,
		"check_out":   r.CheckOut,
		"break_start": r.BreakStart,
		"break_end":   r.BreakEnd,
	} {
		if value == nil {
			continue
		}
		if _, ok := validator.IsValidDateTime(*value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a valid RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	EmployeeID *string
	Status     *string
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

type MyAttendanceFilter struct {
	DateFrom *string
	DateTo   *string
	Page     int
	Limit    int
}

type AttendanceResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  *string  `json:"employee_name,omitempty"`
	Date          string   `json:"date"`
	CheckIn       *string  `json:"check_in"`
	CheckOut      *string  `json:"check_out"`
	BreakStart    *string  `json:"break_start,omitempty"`
	BreakEnd      *string  `json:"break_end,omitempty"`
	TotalHours    *float64 `json:"total_hours"`
	OvertimeHours *float64 `json:"overtime_hours"`
	Status        string   `json:"status"`
	Notes         *string  `json:"notes,omitempty"`
}

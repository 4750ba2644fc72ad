package attendance

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/armadahr/hrm-backend-go/internal/domain/attendance"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
	"github.com/armadahr/hrm-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAttendanceDB *database.DB

func attendanceTestInit(t *testing.T) {
	if testAttendanceDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	var err error
	testAttendanceDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
}

func truncateAttendanceTables(t *testing.T, ctx context.Context) {
	tables := []string{"attendance_records", "employees"}

	for _, table := range tables {
		_, err := testAttendanceDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			continue
		}
	}
}

func createAttendanceTestEmployee(t *testing.T, ctx context.Context, active bool) string {
	var employeeID string
	name := fmt.Sprintf("Test Employee %d", time.Now().UnixNano())
	err := testAttendanceDB.QueryRow(ctx, `
		INSERT INTO employees (id, full_name, is_active, hire_date, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, '2023-01-15', NOW(), NOW())
		RETURNING id
	`, name, active).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func newTestAttendanceService() attendance.AttendanceService {
	attendanceRepo := postgresql.NewAttendanceRepository(testAttendanceDB)
	employeeRepo := postgresql.NewEmployeeRepository(testAttendanceDB)
	return NewAttendanceService(testAttendanceDB, attendanceRepo, employeeRepo)
}

func TestClockInClockOutFlow(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID := createAttendanceTestEmployee(t, ctx, true)
	svc := newTestAttendanceService()

	record, err := svc.ClockIn(ctx, employeeID, attendance.ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOpen, record.Status)
	assert.NotNil(t, record.CheckIn)
	assert.Nil(t, record.CheckOut)
	assert.Nil(t, record.TotalHours)

	// Second check-in the same day is rejected.
	_, err = svc.ClockIn(ctx, employeeID, attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	record, err = svc.ClockOut(ctx, employeeID, attendance.ClockOutRequest{})
	require.NoError(t, err)
	assert.NotNil(t, record.CheckOut)
	require.NotNil(t, record.TotalHours)
	require.NotNil(t, record.OvertimeHours)
	// A same-minute clock-out is a short day.
	assert.Equal(t, attendance.StatusPartial, record.Status)

	// The day's session is already closed.
	_, err = svc.ClockOut(ctx, employeeID, attendance.ClockOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID := createAttendanceTestEmployee(t, ctx, true)
	svc := newTestAttendanceService()

	_, err := svc.ClockOut(ctx, employeeID, attendance.ClockOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestClockIn_InactiveEmployee(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID := createAttendanceTestEmployee(t, ctx, false)
	svc := newTestAttendanceService()

	_, err := svc.ClockIn(ctx, employeeID, attendance.ClockInRequest{})
	assert.Error(t, err)
}

func TestBreakFlow(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID := createAttendanceTestEmployee(t, ctx, true)
	svc := newTestAttendanceService()

	_, err := svc.ClockIn(ctx, employeeID, attendance.ClockInRequest{})
	require.NoError(t, err)

	// End before start is rejected.
	_, err = svc.EndBreak(ctx, employeeID)
	assert.ErrorIs(t, err, attendance.ErrBreakNotStarted)

	record, err := svc.StartBreak(ctx, employeeID)
	require.NoError(t, err)
	assert.NotNil(t, record.BreakStart)

	// One break per session.
	_, err = svc.StartBreak(ctx, employeeID)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyTaken)

	record, err = svc.EndBreak(ctx, employeeID)
	require.NoError(t, err)
	assert.NotNil(t, record.BreakEnd)

	_, err = svc.EndBreak(ctx, employeeID)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyTaken)
}

func TestUpdate_OpenSessionKeepsDerivedFieldsEmpty(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID := createAttendanceTestEmployee(t, ctx, true)
	svc := newTestAttendanceService()

	record, err := svc.ClockIn(ctx, employeeID, attendance.ClockInRequest{})
	require.NoError(t, err)

	notes := "badge reader was down"
	updated, err := svc.Update(ctx, attendance.UpdateAttendanceRequest{
		ID:    record.ID,
		Notes: &notes,
	})
	require.NoError(t, err)

	// Editing notes on an open session must not invent hours.
	assert.Nil(t, updated.TotalHours)
	assert.Nil(t, updated.OvertimeHours)
	assert.Equal(t, attendance.StatusOpen, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
}

func TestUpdate_CorrectionRecomputesHours(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	employeeID := createAttendanceTestEmployee(t, ctx, true)
	svc := newTestAttendanceService()

	record, err := svc.ClockIn(ctx, employeeID, attendance.ClockInRequest{})
	require.NoError(t, err)

	day := time.Now().UTC().Format("2006-01-02")
	checkIn := day + "T09:00:00Z"
	checkOut := day + "T18:00:00Z"
	breakStart := day + "T13:00:00Z"
	breakEnd := day + "T14:00:00Z"

	updated, err := svc.Update(ctx, attendance.UpdateAttendanceRequest{
		ID:         record.ID,
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.TotalHours)
	require.NotNil(t, updated.OvertimeHours)
	assert.Equal(t, 8.0, *updated.TotalHours)
	assert.Equal(t, 0.0, *updated.OvertimeHours)
	assert.Equal(t, attendance.StatusPresent, updated.Status)
}

func TestUpdate_InvalidTimestampRejected(t *testing.T) {
	ctx := context.Background()
	attendanceTestInit(t)
	truncateAttendanceTables(t, ctx)

	svc := newTestAttendanceService()

	bad := "not-a-timestamp"
	_, err := svc.Update(ctx, attendance.UpdateAttendanceRequest{
		ID:      "00000000-0000-0000-0000-000000000000",
		CheckIn: &bad,
	})
	assert.Error(t, err)
}

package assignment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
)

var testAsgDB *database.DB

func asgTestInit(t *testing.T) {
	if testAsgDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	var err error
	testAsgDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
}

func truncateAsgTables(t *testing.T, ctx context.Context) {
	tables := []string{"attendances", "shift_assignments", "shift_templates", "employees"}
	for _, table := range tables {
		_, err := testAsgDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func seedAsgEmployee(t *testing.T, ctx context.Context) string {
	var id string
	email := fmt.Sprintf("worker-%d@example.com", time.Now().UnixNano())
	err := testAsgDB.QueryRow(ctx, `
		INSERT INTO employees (id, full_name, email, phone, is_active, is_admin, created_at, updated_at)
		VALUES (uuidv7(), 'Worker', $1, NULL, TRUE, FALSE, NOW(), NOW())
		RETURNING id
	`, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedAsgShift(t *testing.T, ctx context.Context, name, start, end string, active bool) string {
	var id string
	err := testAsgDB.QueryRow(ctx, `
		INSERT INTO shift_templates (id, name, start_time, end_time, is_part_time, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, FALSE, $4, NOW(), NOW())
		RETURNING id
	`, name, start, end, active).Scan(&id)
	require.NoError(t, err)
	return id
}

func newAsgService(fakeNow time.Time) assignment.AssignmentService {
	svc := NewAssignmentService(
		testAsgDB,
		postgresql.NewAssignmentRepository(testAsgDB),
		postgresql.NewEmployeeRepository(testAsgDB),
		postgresql.NewShiftRepository(testAsgDB),
	)
	svc.(*assignmentServiceImpl).now = func() time.Time { return fakeNow }
	return svc
}

func TestAddAssignmentRejectsOverlap(t *testing.T) {
	asgTestInit(t)
	ctx := context.Background()
	truncateAsgTables(t, ctx)

	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	svc := newAsgService(now)

	employeeID := seedAsgEmployee(t, ctx)
	morning := seedAsgShift(t, ctx, "Morning", "09:00", "17:00", true)
	overlapping := seedAsgShift(t, ctx, "Midday", "12:00", "20:00", true)
	evening := seedAsgShift(t, ctx, "Evening", "17:00", "23:00", true)

	_, err := svc.AddAssignment(ctx, assignment.CreateAssignmentRequest{
		EmployeeID: employeeID, ShiftID: morning, Date: "2025-06-20",
	})
	require.NoError(t, err)

	_, err = svc.AddAssignment(ctx, assignment.CreateAssignmentRequest{
		EmployeeID: employeeID, ShiftID: overlapping, Date: "2025-06-20",
	})
	assert.ErrorIs(t, err, assignment.ErrAssignmentOverlap)

	// Back to back windows do not overlap.
	_, err = svc.AddAssignment(ctx, assignment.CreateAssignmentRequest{
		EmployeeID: employeeID, ShiftID: evening, Date: "2025-06-20",
	})
	assert.NoError(t, err)
}

func TestAddAssignmentConcurrentOverlap(t *testing.T) {
	asgTestInit(t)
	ctx := context.Background()
	truncateAsgTables(t, ctx)

	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	svc := newAsgService(now)

	employeeID := seedAsgEmployee(t, ctx)
	morning := seedAsgShift(t, ctx, "Morning", "09:00", "17:00", true)
	midday := seedAsgShift(t, ctx, "Midday", "12:00", "20:00", true)

	// Two simultaneous creates with intersecting windows: serializable
	// isolation must let exactly one through.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, shiftID := range []string{morning, midday} {
		wg.Add(1)
		go func(shiftID string) {
			defer wg.Done()
			_, err := svc.AddAssignment(ctx, assignment.CreateAssignmentRequest{
				EmployeeID: employeeID, ShiftID: shiftID, Date: "2025-06-20",
			})
			errs <- err
		}(shiftID)
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		if err == nil {
			ok++
		} else if errors.Is(err, assignment.ErrAssignmentOverlap) {
			conflict++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)

	var count int
	require.NoError(t, testAsgDB.QueryRow(ctx,
		`SELECT COUNT(*) FROM shift_assignments WHERE employee_id = $1`, employeeID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAddAssignmentGuards(t *testing.T) {
	asgTestInit(t)
	ctx := context.Background()
	truncateAsgTables(t, ctx)

	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	svc := newAsgService(now)

	employeeID := seedAsgEmployee(t, ctx)
	inactive := seedAsgShift(t, ctx, "Retired", "09:00", "17:00", false)
	active := seedAsgShift(t, ctx, "Morning", "09:00", "17:00", true)

	_, err := svc.AddAssignment(ctx, assignment.CreateAssignmentRequest{
		EmployeeID: employeeID, ShiftID: active, Date: "2025-06-10",
	})
	assert.ErrorIs(t, err, assignment.ErrPastDate)

	_, err = svc.AddAssignment(ctx, assignment.CreateAssignmentRequest{
		EmployeeID: employeeID, ShiftID: inactive, Date: "2025-06-20",
	})
	assert.Error(t, err)
}

func TestDeleteAssignmentOwnership(t *testing.T) {
	asgTestInit(t)
	ctx := context.Background()
	truncateAsgTables(t, ctx)

	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	svc := newAsgService(now)

	owner := seedAsgEmployee(t, ctx)
	other := seedAsgEmployee(t, ctx)
	shiftID := seedAsgShift(t, ctx, "Morning", "09:00", "17:00", true)

	created, err := svc.AddAssignment(ctx, assignment.CreateAssignmentRequest{
		EmployeeID: owner, ShiftID: shiftID, Date: "2025-06-20",
	})
	require.NoError(t, err)

	err = svc.DeleteAssignment(ctx, other, created.ID)
	assert.ErrorIs(t, err, assignment.ErrNotAssignmentOwner)

	err = svc.DeleteAssignment(ctx, owner, created.ID)
	assert.NoError(t, err)
}

func TestLockPreviousMonth(t *testing.T) {
	asgTestInit(t)
	ctx := context.Background()
	truncateAsgTables(t, ctx)

	employeeID := seedAsgEmployee(t, ctx)
	shiftID := seedAsgShift(t, ctx, "Morning", "09:00", "17:00", true)

	// Seed one occurrence in May and one in June directly; AddAssignment
	// refuses past dates.
	for _, date := range []time.Time{
		time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	} {
		_, err := testAsgDB.Exec(ctx, `
			INSERT INTO shift_assignments (id, employee_id, shift_id, date, locked, reminder_sent, created_at, updated_at)
			VALUES (uuidv7(), $1, $2, $3, FALSE, FALSE, NOW(), NOW())
		`, employeeID, shiftID, date)
		require.NoError(t, err)
	}

	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	svc := newAsgService(now)

	locked, err := svc.LockPreviousMonth(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, locked)

	var mayLocked, juneLocked bool
	require.NoError(t, testAsgDB.QueryRow(ctx,
		`SELECT locked FROM shift_assignments WHERE date = '2025-05-20'`).Scan(&mayLocked))
	require.NoError(t, testAsgDB.QueryRow(ctx,
		`SELECT locked FROM shift_assignments WHERE date = '2025-06-05'`).Scan(&juneLocked))
	assert.True(t, mayLocked)
	assert.False(t, juneLocked)

	// Running the sweep again is a no-op.
	locked, err = svc.LockPreviousMonth(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, locked)
}

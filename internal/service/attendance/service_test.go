package attendance

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

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
)

var testAttDB *database.DB

// Office reference point used by the geofence cases.
const (
	officeLat = -6.2088
	officeLon = 106.8456
)

func attTestInit(t *testing.T) {
	if testAttDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	var err error
	testAttDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
}

func truncateAttTables(t *testing.T, ctx context.Context) {
	tables := []string{"attendances", "shift_assignments", "locations", "shift_templates", "employees"}
	for _, table := range tables {
		_, err := testAttDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func seedAttEmployee(t *testing.T, ctx context.Context) string {
	var id string
	email := fmt.Sprintf("worker-%d@example.com", time.Now().UnixNano())
	err := testAttDB.QueryRow(ctx, `
		INSERT INTO employees (id, full_name, email, phone, is_active, is_admin, created_at, updated_at)
		VALUES (uuidv7(), 'Worker', $1, NULL, TRUE, FALSE, NOW(), NOW())
		RETURNING id
	`, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedAttShift(t *testing.T, ctx context.Context, start, end string) string {
	var id string
	err := testAttDB.QueryRow(ctx, `
		INSERT INTO shift_templates (id, name, start_time, end_time, is_part_time, is_active, created_at, updated_at)
		VALUES (uuidv7(), 'Morning', $1, $2, FALSE, TRUE, NOW(), NOW())
		RETURNING id
	`, start, end).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedAttAssignment(t *testing.T, ctx context.Context, employeeID, shiftID string, date time.Time) string {
	var id string
	err := testAttDB.QueryRow(ctx, `
		INSERT INTO shift_assignments (id, employee_id, shift_id, date, locked, reminder_sent, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, FALSE, FALSE, NOW(), NOW())
		RETURNING id
	`, employeeID, shiftID, date).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedAttLocation(t *testing.T, ctx context.Context, radiusMeters int) string {
	var id string
	err := testAttDB.QueryRow(ctx, `
		INSERT INTO locations (id, name, latitude, longitude, radius_meters, created_at, updated_at)
		VALUES (uuidv7(), 'HQ', $1, $2, $3, NOW(), NOW())
		RETURNING id
	`, officeLat, officeLon, radiusMeters).Scan(&id)
	require.NoError(t, err)
	return id
}

func newAttService(fakeNow time.Time) attendance.AttendanceService {
	svc := NewAttendanceService(
		testAttDB,
		postgresql.NewAttendanceRepository(testAttDB),
		postgresql.NewAssignmentRepository(testAttDB),
		postgresql.NewEmployeeRepository(testAttDB),
		postgresql.NewLocationRepository(testAttDB),
	)
	svc.(*attendanceServiceImpl).now = func() time.Time { return fakeNow }
	return svc
}

func TestCheckInClassifiesLateness(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	shiftID := seedAttShift(t, ctx, "09:00", "17:00")
	locationID := seedAttLocation(t, ctx, 200)

	cases := []struct {
		name       string
		checkInAt  time.Time
		wantStatus string
		wantLate   int
	}{
		{"five minutes late is present", day.Add(9*time.Hour + 5*time.Minute), attendance.StatusPresent, 5},
		{"twelve minutes late is late", day.Add(9*time.Hour + 12*time.Minute), attendance.StatusLate, 12},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			employeeID := seedAttEmployee(t, ctx)
			seedAttAssignment(t, ctx, employeeID, shiftID, day)

			svc := newAttService(c.checkInAt)
			att, err := svc.CheckIn(ctx, employeeID, attendance.CheckInRequest{
				LocationID: locationID,
				Latitude:   officeLat,
				Longitude:  officeLon,
			})
			require.NoError(t, err)
			assert.Equal(t, c.wantStatus, att.Status)
			assert.Equal(t, c.wantLate, att.LateMinutes)
		})
	}
}

func TestCheckInOutsideGeofence(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	employeeID := seedAttEmployee(t, ctx)
	shiftID := seedAttShift(t, ctx, "09:00", "17:00")
	seedAttAssignment(t, ctx, employeeID, shiftID, day)
	locationID := seedAttLocation(t, ctx, 100)

	svc := newAttService(day.Add(9 * time.Hour))
	// Roughly 1.1 km north of the office.
	_, err := svc.CheckIn(ctx, employeeID, attendance.CheckInRequest{
		LocationID: locationID,
		Latitude:   officeLat + 0.01,
		Longitude:  officeLon,
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideAllowedRadius)
}

func TestCheckInTwiceConflicts(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	employeeID := seedAttEmployee(t, ctx)
	shiftID := seedAttShift(t, ctx, "09:00", "17:00")
	seedAttAssignment(t, ctx, employeeID, shiftID, day)
	locationID := seedAttLocation(t, ctx, 200)

	svc := newAttService(day.Add(9 * time.Hour))
	req := attendance.CheckInRequest{LocationID: locationID, Latitude: officeLat, Longitude: officeLon}

	_, err := svc.CheckIn(ctx, employeeID, req)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, employeeID, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInRace(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	employeeID := seedAttEmployee(t, ctx)
	shiftID := seedAttShift(t, ctx, "09:00", "17:00")
	seedAttAssignment(t, ctx, employeeID, shiftID, day)
	locationID := seedAttLocation(t, ctx, 200)

	svc := newAttService(day.Add(9 * time.Hour))
	req := attendance.CheckInRequest{LocationID: locationID, Latitude: officeLat, Longitude: officeLon}

	// Two simultaneous check-ins: exactly one may win; the unique
	// assignment link arbitrates the race.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, employeeID, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		if err == nil {
			ok++
		} else if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			conflict++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)

	var count int
	require.NoError(t, testAttDB.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE employee_id = $1`, employeeID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCheckInWithoutCurrentShift(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	employeeID := seedAttEmployee(t, ctx)
	locationID := seedAttLocation(t, ctx, 200)

	// No assignment seeded; 9am on an empty day.
	svc := newAttService(day.Add(9 * time.Hour))
	_, err := svc.CheckIn(ctx, employeeID, attendance.CheckInRequest{
		LocationID: locationID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	assert.ErrorIs(t, err, attendance.ErrNoCurrentShift)
}

func TestCheckOut(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	employeeID := seedAttEmployee(t, ctx)
	shiftID := seedAttShift(t, ctx, "09:00", "17:00")
	seedAttAssignment(t, ctx, employeeID, shiftID, day)
	locationID := seedAttLocation(t, ctx, 200)

	svc := newAttService(day.Add(9 * time.Hour))
	att, err := svc.CheckIn(ctx, employeeID, attendance.CheckInRequest{
		LocationID: locationID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	require.NoError(t, err)

	outSvc := newAttService(day.Add(16*time.Hour + 45*time.Minute))
	out, err := outSvc.CheckOut(ctx, employeeID, att.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)
	assert.InDelta(t, 7.75, out.TotalHours, 0.001)

	_, err = outSvc.CheckOut(ctx, employeeID, att.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOutSomeoneElsesAttendance(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	employeeID := seedAttEmployee(t, ctx)
	other := seedAttEmployee(t, ctx)
	shiftID := seedAttShift(t, ctx, "09:00", "17:00")
	seedAttAssignment(t, ctx, employeeID, shiftID, day)
	locationID := seedAttLocation(t, ctx, 200)

	svc := newAttService(day.Add(9 * time.Hour))
	att, err := svc.CheckIn(ctx, employeeID, attendance.CheckInRequest{
		LocationID: locationID,
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, other, att.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestMonthlyViewDerivesStatuses(t *testing.T) {
	attTestInit(t)
	ctx := context.Background()
	truncateAttTables(t, ctx)

	employeeID := seedAttEmployee(t, ctx)
	shiftID := seedAttShift(t, ctx, "09:00", "17:00")

	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}
	seedAttAssignment(t, ctx, employeeID, shiftID, day(10)) // past, never attended
	seedAttAssignment(t, ctx, employeeID, shiftID, day(16)) // today, attended
	seedAttAssignment(t, ctx, employeeID, shiftID, day(25)) // future

	now := day(16).Add(9*time.Hour + 3*time.Minute)
	svc := newAttService(now)
	_, err := svc.CheckIn(ctx, employeeID, attendance.CheckInRequest{
		LocationID: seedAttLocation(t, ctx, 200),
		Latitude:   officeLat,
		Longitude:  officeLon,
	})
	require.NoError(t, err)

	records, err := svc.MonthlyView(ctx, employeeID, 2025, time.June)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byDate := map[string]attendance.DayRecord{}
	for _, rec := range records {
		byDate[rec.Date] = rec
	}

	assert.Equal(t, attendance.StatusAbsent, byDate["2025-06-10"].Status)
	assert.Nil(t, byDate["2025-06-10"].Attendance)

	assert.Equal(t, attendance.StatusPresent, byDate["2025-06-16"].Status)
	require.NotNil(t, byDate["2025-06-16"].Attendance)
	assert.Equal(t, 3, byDate["2025-06-16"].Attendance.LateMinutes)

	assert.Empty(t, byDate["2025-06-25"].Status)
	assert.Nil(t, byDate["2025-06-25"].Attendance)
}

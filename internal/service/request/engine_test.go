package request

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
)

var testEngineDB *database.DB

func engineTestInit(t *testing.T) {
	if testEngineDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	var err error
	testEngineDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
}

func truncateEngineTables(t *testing.T, ctx context.Context) {
	tables := []string{"notifications", "attendances", "requests", "leave_balances", "leave_types", "shift_assignments", "shift_templates", "employees"}
	for _, table := range tables {
		_, err := testEngineDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func seedTestEmployee(t *testing.T, ctx context.Context, name string, admin bool) string {
	var id string
	email := fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano())
	err := testEngineDB.QueryRow(ctx, `
		INSERT INTO employees (id, full_name, email, phone, is_active, is_admin, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, NULL, TRUE, $3, NOW(), NOW())
		RETURNING id
	`, name, email, admin).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestShift(t *testing.T, ctx context.Context, name, start, end string, partTime bool) string {
	var id string
	err := testEngineDB.QueryRow(ctx, `
		INSERT INTO shift_templates (id, name, start_time, end_time, is_part_time, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, TRUE, NOW(), NOW())
		RETURNING id
	`, name, start, end, partTime).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestAssignment(t *testing.T, ctx context.Context, employeeID, shiftID string, date time.Time) string {
	var id string
	err := testEngineDB.QueryRow(ctx, `
		INSERT INTO shift_assignments (id, employee_id, shift_id, date, locked, reminder_sent, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, FALSE, FALSE, NOW(), NOW())
		RETURNING id
	`, employeeID, shiftID, date).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedTestLeaveType(t *testing.T, ctx context.Context, name string, quota int) string {
	var id string
	err := testEngineDB.QueryRow(ctx, `
		INSERT INTO leave_types (id, name, annual_quota, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, TRUE, NOW(), NOW())
		RETURNING id
	`, name, quota).Scan(&id)
	require.NoError(t, err)
	return id
}

func balanceFor(t *testing.T, ctx context.Context, employeeID, leaveTypeID string, year int) (used, remaining int) {
	err := testEngineDB.QueryRow(ctx, `
		SELECT used_days, remaining_days FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`, employeeID, leaveTypeID, year).Scan(&used, &remaining)
	require.NoError(t, err)
	return used, remaining
}

type recordingNotifier struct {
	notified []string
}

func (n *recordingNotifier) Notify(employeeID, title, message string) {
	n.notified = append(n.notified, employeeID)
}

func (n *recordingNotifier) List(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	return nil, nil
}
func (n *recordingNotifier) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return nil
}
func (n *recordingNotifier) MarkAllRead(ctx context.Context, recipientID string) error { return nil }
func (n *recordingNotifier) Stop()                                                     {}

type noopEmailSender struct{}

func (noopEmailSender) SendApprovalResult(to, name, message string, approved bool) error { return nil }

type engineFixture struct {
	svc            request.RequestService
	deps           *Deps
	notifier       *recordingNotifier
	attendanceRepo attendance.AttendanceRepository
	balanceRepo    leave.LeaveBalanceRepository
}

func newEngineFixture(t *testing.T) *engineFixture {
	deps := &Deps{
		RequestRepo:    postgresql.NewRequestRepository(testEngineDB),
		AssignmentRepo: postgresql.NewAssignmentRepository(testEngineDB),
		AttendanceRepo: postgresql.NewAttendanceRepository(testEngineDB),
		EmployeeRepo:   postgresql.NewEmployeeRepository(testEngineDB),
		ShiftRepo:      postgresql.NewShiftRepository(testEngineDB),
		BalanceRepo:    postgresql.NewLeaveBalanceRepository(testEngineDB),
		LeaveTypeRepo:  postgresql.NewLeaveTypeRepository(testEngineDB),
	}
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := NewRequestService(testEngineDB, deps, notifier, noopEmailSender{}, logger)
	return &engineFixture{
		svc:            svc,
		deps:           deps,
		notifier:       notifier,
		attendanceRepo: deps.AttendanceRepo,
		balanceRepo:    deps.BalanceRepo,
	}
}

func tomorrow() (time.Time, string) {
	d := time.Now().AddDate(0, 0, 1)
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return day, day.Format("2006-01-02")
}

func TestLeaveRequestApproval(t *testing.T) {
	engineTestInit(t)
	ctx := context.Background()
	truncateEngineTables(t, ctx)
	f := newEngineFixture(t)

	requester := seedTestEmployee(t, ctx, "requester", false)
	admin := seedTestEmployee(t, ctx, "admin", true)
	shiftID := seedTestShift(t, ctx, "Morning", "09:00", "17:00", false)
	day, dateStr := tomorrow()
	assignmentID := seedTestAssignment(t, ctx, requester, shiftID, day)
	leaveTypeID := seedTestLeaveType(t, ctx, "Annual", 12)
	require.NoError(t, f.balanceRepo.Seed(ctx, requester, leaveTypeID, day.Year(), 12))

	created, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:        request.KindLeave,
		ShiftID:     shiftID,
		Date:        dateStr,
		Reason:      "family matters",
		LeaveTypeID: &leaveTypeID,
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, created.Status)

	approved, err := f.svc.Approve(ctx, created.ID, admin, "enjoy")
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, approved.Status)
	require.NotNil(t, approved.ResponseBy)
	assert.Equal(t, admin, *approved.ResponseBy)

	used, remaining := balanceFor(t, ctx, requester, leaveTypeID, day.Year())
	assert.Equal(t, 1, used)
	assert.Equal(t, 11, remaining)

	att, err := f.attendanceRepo.GetByAssignment(ctx, assignmentID)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, attendance.StatusLeave, att.Status)
	assert.Zero(t, att.TotalHours)

	assert.Contains(t, f.notifier.notified, requester)

	// A resolved request is immutable.
	_, err = f.svc.Approve(ctx, created.ID, admin, "again")
	assert.ErrorIs(t, err, request.ErrNotPending)
}

func TestLeaveRequestRejectionTouchesNothing(t *testing.T) {
	engineTestInit(t)
	ctx := context.Background()
	truncateEngineTables(t, ctx)
	f := newEngineFixture(t)

	requester := seedTestEmployee(t, ctx, "requester", false)
	admin := seedTestEmployee(t, ctx, "admin", true)
	shiftID := seedTestShift(t, ctx, "Morning", "09:00", "17:00", false)
	day, dateStr := tomorrow()
	assignmentID := seedTestAssignment(t, ctx, requester, shiftID, day)
	leaveTypeID := seedTestLeaveType(t, ctx, "Annual", 12)
	require.NoError(t, f.balanceRepo.Seed(ctx, requester, leaveTypeID, day.Year(), 12))

	created, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:        request.KindLeave,
		ShiftID:     shiftID,
		Date:        dateStr,
		Reason:      "family matters",
		LeaveTypeID: &leaveTypeID,
	})
	require.NoError(t, err)

	rejected, err := f.svc.Reject(ctx, created.ID, admin, "short staffed")
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, rejected.Status)

	used, remaining := balanceFor(t, ctx, requester, leaveTypeID, day.Year())
	assert.Equal(t, 0, used)
	assert.Equal(t, 12, remaining)

	att, err := f.attendanceRepo.GetByAssignment(ctx, assignmentID)
	require.NoError(t, err)
	assert.Nil(t, att)
}

func TestRecallIsRequesterOnly(t *testing.T) {
	engineTestInit(t)
	ctx := context.Background()
	truncateEngineTables(t, ctx)
	f := newEngineFixture(t)

	requester := seedTestEmployee(t, ctx, "requester", false)
	other := seedTestEmployee(t, ctx, "other", false)
	admin := seedTestEmployee(t, ctx, "admin", true)
	shiftID := seedTestShift(t, ctx, "Morning", "09:00", "17:00", false)
	day, dateStr := tomorrow()
	seedTestAssignment(t, ctx, requester, shiftID, day)
	leaveTypeID := seedTestLeaveType(t, ctx, "Annual", 12)
	require.NoError(t, f.balanceRepo.Seed(ctx, requester, leaveTypeID, day.Year(), 12))

	created, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:        request.KindLeave,
		ShiftID:     shiftID,
		Date:        dateStr,
		Reason:      "family matters",
		LeaveTypeID: &leaveTypeID,
	})
	require.NoError(t, err)

	_, err = f.svc.Recall(ctx, created.ID, other)
	assert.ErrorIs(t, err, request.ErrNotRequester)

	recalled, err := f.svc.Recall(ctx, created.ID, requester)
	require.NoError(t, err)
	assert.Equal(t, request.StatusRecalled, recalled.Status)

	_, err = f.svc.Approve(ctx, created.ID, admin, "too late")
	assert.ErrorIs(t, err, request.ErrNotPending)
}

func TestShiftChangeTwoStageFlow(t *testing.T) {
	engineTestInit(t)
	ctx := context.Background()
	truncateEngineTables(t, ctx)
	f := newEngineFixture(t)

	requester := seedTestEmployee(t, ctx, "requester", false)
	target := seedTestEmployee(t, ctx, "target", false)
	admin := seedTestEmployee(t, ctx, "admin", true)
	shiftID := seedTestShift(t, ctx, "Morning", "09:00", "17:00", false)
	day, dateStr := tomorrow()
	heldID := seedTestAssignment(t, ctx, target, shiftID, day)

	created, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:             request.KindShiftChange,
		ShiftID:          shiftID,
		Date:             dateStr,
		Reason:           "swap please",
		TargetEmployeeID: &target,
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusPending, created.Status)

	// The admin cannot shortcut the peer confirmation.
	_, err = f.svc.Approve(ctx, created.ID, admin, "")
	assert.ErrorIs(t, err, request.ErrNotPending)

	// Only the targeted employee may answer.
	_, err = f.svc.EmployeeApprove(ctx, created.ID, requester)
	assert.ErrorIs(t, err, request.ErrNotTargetEmployee)

	confirmed, err := f.svc.EmployeeApprove(ctx, created.ID, target)
	require.NoError(t, err)
	assert.Equal(t, request.StatusPendingApproval, confirmed.Status)

	approved, err := f.svc.Approve(ctx, created.ID, admin, "ok")
	require.NoError(t, err)
	assert.Equal(t, request.StatusApproved, approved.Status)

	// The assignment moved from the target to the requester.
	_, err = f.deps.AssignmentRepo.GetByID(ctx, heldID)
	assert.Error(t, err)
	swapped, err := f.deps.AssignmentRepo.FindByShiftAndDate(ctx, requester, shiftID, day)
	require.NoError(t, err)
	require.NotNil(t, swapped)
	assert.Equal(t, requester, swapped.EmployeeID)
}

func TestShiftChangePeerRejectionIsTerminal(t *testing.T) {
	engineTestInit(t)
	ctx := context.Background()
	truncateEngineTables(t, ctx)
	f := newEngineFixture(t)

	requester := seedTestEmployee(t, ctx, "requester", false)
	target := seedTestEmployee(t, ctx, "target", false)
	admin := seedTestEmployee(t, ctx, "admin", true)
	shiftID := seedTestShift(t, ctx, "Morning", "09:00", "17:00", false)
	day, dateStr := tomorrow()
	seedTestAssignment(t, ctx, target, shiftID, day)

	created, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:             request.KindShiftChange,
		ShiftID:          shiftID,
		Date:             dateStr,
		Reason:           "swap please",
		TargetEmployeeID: &target,
	})
	require.NoError(t, err)

	declined, err := f.svc.EmployeeReject(ctx, created.ID, target, "need the hours")
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejectedApproval, declined.Status)

	_, err = f.svc.Approve(ctx, created.ID, admin, "")
	assert.ErrorIs(t, err, request.ErrNotPending)

	// The target still holds the assignment.
	held, err := f.deps.AssignmentRepo.FindByShiftAndDate(ctx, target, shiftID, day)
	require.NoError(t, err)
	assert.NotNil(t, held)
}

func TestRevertLeaveRestoresBalance(t *testing.T) {
	engineTestInit(t)
	ctx := context.Background()
	truncateEngineTables(t, ctx)
	f := newEngineFixture(t)

	requester := seedTestEmployee(t, ctx, "requester", false)
	admin := seedTestEmployee(t, ctx, "admin", true)
	shiftID := seedTestShift(t, ctx, "Morning", "09:00", "17:00", false)
	day, dateStr := tomorrow()
	assignmentID := seedTestAssignment(t, ctx, requester, shiftID, day)
	leaveTypeID := seedTestLeaveType(t, ctx, "Annual", 12)
	require.NoError(t, f.balanceRepo.Seed(ctx, requester, leaveTypeID, day.Year(), 12))

	leaveReq, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:        request.KindLeave,
		ShiftID:     shiftID,
		Date:        dateStr,
		Reason:      "family matters",
		LeaveTypeID: &leaveTypeID,
	})
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, leaveReq.ID, admin, "")
	require.NoError(t, err)

	revertReq, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:        request.KindRevertLeave,
		ShiftID:     shiftID,
		Date:        dateStr,
		Reason:      "plans changed",
		LeaveTypeID: &leaveTypeID,
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, revertReq.ID, admin, "")
	require.NoError(t, err)

	used, remaining := balanceFor(t, ctx, requester, leaveTypeID, day.Year())
	assert.Equal(t, 0, used)
	assert.Equal(t, 12, remaining)

	att, err := f.attendanceRepo.GetByAssignment(ctx, assignmentID)
	require.NoError(t, err)
	assert.Nil(t, att)
}

func TestCreateRejectsPastDate(t *testing.T) {
	engineTestInit(t)
	ctx := context.Background()
	truncateEngineTables(t, ctx)
	f := newEngineFixture(t)

	requester := seedTestEmployee(t, ctx, "requester", false)
	shiftID := seedTestShift(t, ctx, "Morning", "09:00", "17:00", false)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := f.svc.Create(ctx, requester, request.CreateRequestInput{
		Kind:    request.KindRemoteWork,
		ShiftID: shiftID,
		Date:    yesterday,
		Reason:  "too late",
	})
	assert.ErrorIs(t, err, request.ErrPastDate)
}

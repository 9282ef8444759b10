package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/otp"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/email"
)

type WorkforceJobs struct {
	assignmentSvc   assignment.AssignmentService
	assignmentRepo  assignment.AssignmentRepository
	employeeRepo    employee.EmployeeRepository
	otpRepo         otp.Repository
	notificationSvc notification.Service
	emailSvc        email.EmailService
}

func NewWorkforceJobs(
	assignmentSvc assignment.AssignmentService,
	assignmentRepo assignment.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	otpRepo otp.Repository,
	notificationSvc notification.Service,
	emailSvc email.EmailService,
) *WorkforceJobs {
	return &WorkforceJobs{
		assignmentSvc:   assignmentSvc,
		assignmentRepo:  assignmentRepo,
		employeeRepo:    employeeRepo,
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
	}
}

func (j *WorkforceJobs) RegisterJobs(scheduler *Scheduler) {
	// The lock sweep is idempotent and only bites on the first run of a new
	// month, so a daily cadence is plenty. The start delay keeps it off the
	// deploy hot path.
	scheduler.AddJob(Job{
		Name:       "lock_previous_month_assignments",
		Interval:   24 * time.Hour,
		StartDelay: time.Minute,
		Timeout:    5 * time.Minute,
		Fn:         j.LockPreviousMonthAssignments,
	})
	scheduler.AddJob(Job{
		Name:     "shift_reminders",
		Interval: 15 * time.Minute,
		Timeout:  5 * time.Minute,
		Fn:       j.SendShiftReminders,
	})
	scheduler.AddJob(Job{
		Name:     "purge_expired_otps",
		Interval: 15 * time.Minute,
		Timeout:  time.Minute,
		Fn:       j.PurgeExpiredOTPs,
	})
}

// LockPreviousMonthAssignments closes the books on last month. The sweep is
// idempotent so running it every interval is safe.
func (j *WorkforceJobs) LockPreviousMonthAssignments(ctx context.Context) error {
	locked, err := j.assignmentSvc.LockPreviousMonth(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to lock previous month assignments: %w", err)
	}
	if locked > 0 {
		slog.Info("Cron: Locked previous month assignments", "count", locked)
	}
	return nil
}

// SendShiftReminders notifies employees of today's shifts that have not
// been reminded yet, then marks them so each occurrence is reminded once.
func (j *WorkforceJobs) SendShiftReminders(ctx context.Context) error {
	today := time.Now()

	assignments, err := j.assignmentRepo.ListUnremindedForDate(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list unreminded assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil
	}

	sent := 0
	for _, a := range assignments {
		shiftName := "your shift"
		if a.ShiftName != nil {
			shiftName = *a.ShiftName
		}
		startTime := ""
		if a.ShiftStart != nil {
			startTime = a.ShiftStart.Format("15:04")
		}

		j.notificationSvc.Notify(a.EmployeeID,
			"Upcoming Shift",
			fmt.Sprintf("Reminder: %s starts today at %s.", shiftName, startTime))

		if emp, err := j.employeeRepo.GetByID(ctx, a.EmployeeID); err == nil {
			if err := j.emailSvc.SendShiftReminder(emp.Email, emp.FullName, shiftName, startTime); err != nil {
				slog.Error("Cron: Failed to send shift reminder email",
					"assignment_id", a.ID,
					"employee_id", a.EmployeeID,
					"error", err)
			}
		}

		if err := j.assignmentRepo.MarkReminderSent(ctx, a.ID); err != nil {
			slog.Error("Cron: Failed to mark reminder sent",
				"assignment_id", a.ID,
				"error", err)
			continue
		}
		sent++
	}

	slog.Info("Cron: Sent shift reminders", "count", sent)
	return nil
}

// PurgeExpiredOTPs removes login codes past their expiry.
func (j *WorkforceJobs) PurgeExpiredOTPs(ctx context.Context) error {
	purged, err := j.otpRepo.PurgeExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to purge expired otps: %w", err)
	}
	if purged > 0 {
		slog.Info("Cron: Purged expired OTP codes", "count", purged)
	}
	return nil
}

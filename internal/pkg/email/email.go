package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendApprovalResult(to, employeeName, message string, approved bool) error
	SendShiftReminder(to, employeeName, shiftName, startTime string) error
	SendLoginCode(to, employeeName, code string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type approvalEmailData struct {
	EmployeeName string
	Message      string
	Outcome      string
	Approved     bool
}

// SendApprovalResult sends the outcome of a resolved request to the
// requester.
func (s *emailServiceImpl) SendApprovalResult(to, employeeName, message string, approved bool) error {
	outcome := "Rejected"
	if approved {
		outcome = "Approved"
	}
	data := approvalEmailData{
		EmployeeName: employeeName,
		Message:      message,
		Outcome:      outcome,
		Approved:     approved,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "approval_result.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Request %s", outcome), body.String())
}

type shiftReminderEmailData struct {
	EmployeeName string
	ShiftName    string
	StartTime    string
}

// SendShiftReminder reminds an employee of an upcoming shift today.
func (s *emailServiceImpl) SendShiftReminder(to, employeeName, shiftName, startTime string) error {
	data := shiftReminderEmailData{
		EmployeeName: employeeName,
		ShiftName:    shiftName,
		StartTime:    startTime,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "shift_reminder.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Upcoming Shift Reminder", body.String())
}

type loginCodeEmailData struct {
	EmployeeName   string
	Code           string
	ExpiresMinutes int
}

// SendLoginCode delivers a one-time sign-in code.
func (s *emailServiceImpl) SendLoginCode(to, employeeName, code string) error {
	data := loginCodeEmailData{
		EmployeeName:   employeeName,
		Code:           code,
		ExpiresMinutes: 5,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "login_code.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Your sign-in code", body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

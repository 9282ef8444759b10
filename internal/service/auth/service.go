package auth

import (
	"context"
	"fmt"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/auth"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/otp"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/email"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/jwt"
)

type authServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	otpService   otp.Service
	jwtService   jwt.Service
	emailService email.EmailService
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	otpService otp.Service,
	jwtService jwt.Service,
	emailService email.EmailService,
) auth.Service {
	return &authServiceImpl{
		employeeRepo: employeeRepo,
		otpService:   otpService,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// RequestCode implements auth.Service.
func (s *authServiceImpl) RequestCode(ctx context.Context, emailAddr string) error {
	emp, err := s.activeEmployee(ctx, emailAddr)
	if err != nil {
		return err
	}

	code, err := s.otpService.Issue(ctx, emp.Email)
	if err != nil {
		return err
	}

	if err := s.emailService.SendLoginCode(emp.Email, emp.FullName, code); err != nil {
		return fmt.Errorf("failed to deliver login code: %w", err)
	}
	return nil
}

// VerifyCode implements auth.Service.
func (s *authServiceImpl) VerifyCode(ctx context.Context, emailAddr, code string) (auth.TokenResponse, error) {
	emp, err := s.activeEmployee(ctx, emailAddr)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := s.otpService.Verify(ctx, emp.Email, code); err != nil {
		return auth.TokenResponse{}, err
	}

	role := "employee"
	if emp.IsAdmin {
		role = "admin"
	}
	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, emp.Email, role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return auth.TokenResponse{AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *authServiceImpl) activeEmployee(ctx context.Context, emailAddr string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/config"
	appHTTP "github.com/shiftwise-hq/workforce-backend-go/internal/handler/http"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/cron"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/email"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/jwt"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
	assignmentService "github.com/shiftwise-hq/workforce-backend-go/internal/service/assignment"
	authService "github.com/shiftwise-hq/workforce-backend-go/internal/service/auth"
	attendanceService "github.com/shiftwise-hq/workforce-backend-go/internal/service/attendance"
	leaveService "github.com/shiftwise-hq/workforce-backend-go/internal/service/leave"
	notificationService "github.com/shiftwise-hq/workforce-backend-go/internal/service/notification"
	otpService "github.com/shiftwise-hq/workforce-backend-go/internal/service/otp"
	requestService "github.com/shiftwise-hq/workforce-backend-go/internal/service/request"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	otpRepo := postgresql.NewOTPRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		fmt.Println("Error initializing email service:", err)
		return
	}

	notificationSvc := notificationService.NewNotificationService(notificationRepo, logger, notificationService.Config{})
	defer notificationSvc.Stop()

	otpSvc := otpService.NewOTPService(otpRepo)
	authSvc := authService.NewAuthService(employeeRepo, otpSvc, jwtService, emailSvc)
	assignmentSvc := assignmentService.NewAssignmentService(db, assignmentRepo, employeeRepo, shiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, assignmentRepo, employeeRepo, locationRepo)
	balanceSvc := leaveService.NewBalanceService(leaveBalanceRepo, leaveTypeRepo, employeeRepo)
	requestSvc := requestService.NewRequestService(db, &requestService.Deps{
		RequestRepo:    requestRepo,
		AssignmentRepo: assignmentRepo,
		AttendanceRepo: attendanceRepo,
		EmployeeRepo:   employeeRepo,
		ShiftRepo:      shiftRepo,
		BalanceRepo:    leaveBalanceRepo,
		LeaveTypeRepo:  leaveTypeRepo,
	}, notificationSvc, emailSvc, logger)

	scheduler := cron.NewScheduler()
	jobs := cron.NewWorkforceJobs(assignmentSvc, assignmentRepo, employeeRepo, otpRepo, notificationSvc, emailSvc)
	jobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App.Env,
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewAssignmentHandler(assignmentSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewRequestHandler(requestSvc),
		appHTTP.NewNotificationHandler(notificationSvc),
		appHTTP.NewLeaveHandler(balanceSvc),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}

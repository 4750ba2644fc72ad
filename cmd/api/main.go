package main

import (
	"fmt"
	"net/http"

	"github.com/armadahr/hrm-backend-go/internal/config"
	appHTTP "github.com/armadahr/hrm-backend-go/internal/handler/http"
	"github.com/armadahr/hrm-backend-go/internal/pkg/cron"
	"github.com/armadahr/hrm-backend-go/internal/pkg/database"
	"github.com/armadahr/hrm-backend-go/internal/pkg/jwt"
	"github.com/armadahr/hrm-backend-go/internal/pkg/oauth"
	"github.com/armadahr/hrm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/armadahr/hrm-backend-go/internal/service/attendance"
	authService "github.com/armadahr/hrm-backend-go/internal/service/auth"
	leaveService "github.com/armadahr/hrm-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleSvc oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleSvc = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	authSvc := authService.NewAuthService(userRepo, jwtSvc, googleSvc)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(leaveBalanceRepo, leaveTypeRepo, employeeRepo).RegisterJobs(scheduler)
	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(cfg, jwtSvc, authHandler, attendanceHandler, leaveHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

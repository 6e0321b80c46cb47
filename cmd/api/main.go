package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/presensia/timetrack-backend-go/internal/config"
	appHTTP "github.com/presensia/timetrack-backend-go/internal/handler/http"
	"github.com/presensia/timetrack-backend-go/internal/pkg/cron"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
	"github.com/presensia/timetrack-backend-go/internal/pkg/jwt"
	"github.com/presensia/timetrack-backend-go/internal/pkg/oauth"
	"github.com/presensia/timetrack-backend-go/internal/pkg/storage"
	"github.com/presensia/timetrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presensia/timetrack-backend-go/internal/service/attendance"
	authService "github.com/presensia/timetrack-backend-go/internal/service/auth"
	dashboardService "github.com/presensia/timetrack-backend-go/internal/service/dashboard"
	"github.com/presensia/timetrack-backend-go/internal/service/file"
	holidayService "github.com/presensia/timetrack-backend-go/internal/service/holiday"
	logbookService "github.com/presensia/timetrack-backend-go/internal/service/logbook"
	userService "github.com/presensia/timetrack-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone: ", cfg.App.Timezone)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	logbookRepo := postgresql.NewLogbookRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SessionExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(db, userRepo, jwtService, googleService, cfg.Targets)
	userSvc := userService.NewUserService(db, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, loc)
	holidaySvc := holidayService.NewHolidayService(db, holidayRepo, loc)
	logbookSvc := logbookService.NewLogbookService(db, logbookRepo, fileService, loc)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, userRepo, holidaySvc, loc)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Logbook:    appHTTP.NewLogbookHandler(logbookSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		File:       appHTTP.NewFileHandler(fileService),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, loc).RegisterJobs(scheduler)
	cron.NewSessionJobs(jwtService).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}

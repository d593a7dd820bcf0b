package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/staffhold/hr-backoffice-go/internal/config"
	appHTTP "github.com/staffhold/hr-backoffice-go/internal/handler/http"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/database"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/jwt"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/notify"
	"github.com/staffhold/hr-backoffice-go/internal/repository/postgresql"
	attendanceService "github.com/staffhold/hr-backoffice-go/internal/service/attendance"
	deviceService "github.com/staffhold/hr-backoffice-go/internal/service/device"
	eventService "github.com/staffhold/hr-backoffice-go/internal/service/event"
	payrollService "github.com/staffhold/hr-backoffice-go/internal/service/payroll"
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

	eventRepo := postgresql.NewEventRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Notify.BotToken != "" {
		notifier = notify.NewTelegram(cfg.Notify.BotToken, cfg.Notify.ChatIDs)
	} else {
		slog.Info("notification sink disabled, NOTIFY_BOT_TOKEN not set")
	}

	mappings, err := config.LoadDeviceMap(cfg.Devices.MapFile)
	if err != nil {
		fmt.Println("Error loading device map:", err)
		return
	}
	translator := deviceService.NewTranslator(mappings, employeeRepo, officeRepo, notifier)
	if len(mappings) == 0 {
		slog.Warn("device map is empty, device payloads will be dropped as unmapped")
	}

	summarySvc := attendanceService.NewAttendanceService(summaryRepo, eventRepo, employeeRepo, officeRepo)
	eventSvc := eventService.NewEventService(eventRepo, employeeRepo, summarySvc, translator, notifier)
	payrollSvc := payrollService.NewPayrollService(db, salaryRepo, employeeRepo, summaryRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(eventSvc, summarySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	deviceHandler := appHTTP.NewDeviceHandler(eventSvc)

	router := appHTTP.NewRouter(jwtService, attendanceHandler, payrollHandler, deviceHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Error starting server:", err)
	}
}

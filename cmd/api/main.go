package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/lmittmann/tint"

	httpadp "motac-hrms/internal/adapter/http"
	"motac-hrms/internal/adapter/middleware"
	"motac-hrms/internal/adapter/repository/mysql"
	"motac-hrms/internal/adapter/scheduler"
	"motac-hrms/internal/config"
	"motac-hrms/internal/infrastructure/cache"
	"motac-hrms/internal/infrastructure/db"
	"motac-hrms/internal/infrastructure/directory"
	"motac-hrms/internal/infrastructure/mail"
	"motac-hrms/internal/usecase/authz"
	"motac-hrms/internal/usecase/emailapp"
	"motac-hrms/internal/usecase/loanapp"
	"motac-hrms/internal/usecase/notification"
	"motac-hrms/internal/usecase/provisioning"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Error("mysql connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	var sender notification.Sender
	if cfg.SMTPHost != "" {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:        cfg.SMTPHost,
			Port:        cfg.SMTPPort,
			Username:    cfg.SMTPUser,
			Password:    cfg.SMTPPass,
			FromAddress: cfg.SMTPFrom,
			FromName:    cfg.SMTPFromName,
		})
	} else {
		sender = mail.NewLogSender(log)
	}
	dispatcher := notification.NewDispatcher(sender,
		notification.MissingRecipientPolicy(cfg.NotifyMissingRecipient), cfg.AdminEmail, log)
	dispatcher.Start()
	defer dispatcher.Stop()

	userRepo := mysql.NewUserRepository(gdb)
	emailRepo := mysql.NewEmailApplicationRepository(gdb)
	unit := mysql.NewGormUoW(gdb)
	gate := authz.NewGate(cfg.MinApproverGradeLevel)

	provisioner := directory.NewClient(cfg.DirectoryBaseURL, cfg.DefaultEmailDomain,
		time.Duration(cfg.DirectoryTimeoutSecs)*time.Second, log)

	emailUC := emailapp.NewUsecase(unit, gate, dispatcher, cfg.ApproverEmail, log)
	loanUC := loanapp.NewUsecase(unit, gate, dispatcher, cfg.ApproverEmail, log)
	provisioningUC := provisioning.NewUsecase(emailRepo, userRepo, provisioner, dispatcher, log)

	h := httpadp.NewHandler()
	emailH := httpadp.NewEmailAppHandler(emailUC, userRepo)
	loanH := httpadp.NewLoanAppHandler(loanUC, userRepo)
	provisionH := httpadp.NewProvisioningHandler(provisioningUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	emailGroup := e.Group("/api/email-applications", idemp)
	emailGroup.POST("", emailH.Create)
	emailGroup.GET("/:application_id", emailH.Get)
	emailGroup.POST("/:application_id/submit", emailH.Submit)
	emailGroup.POST("/:application_id/approve", emailH.Approve)
	emailGroup.POST("/:application_id/reject", emailH.Reject)
	emailGroup.POST("/:application_id/cancel", emailH.Cancel)
	emailGroup.PATCH("/:application_id/assignment", emailH.UpdateAssignment)

	loanGroup := e.Group("/api/loan-applications", idemp)
	loanGroup.POST("", loanH.Create)
	loanGroup.GET("/:application_id", loanH.Get)
	loanGroup.POST("/:application_id/submit", loanH.Submit)
	loanGroup.POST("/:application_id/approve", loanH.Approve)
	loanGroup.POST("/:application_id/reject", loanH.Reject)
	loanGroup.POST("/:application_id/cancel", loanH.Cancel)
	loanGroup.POST("/:application_id/issue", loanH.Issue)
	loanGroup.POST("/:application_id/return", loanH.ProcessReturn)

	// service-to-service: the provisioning worker authenticates with a shared
	// token, not a staff header
	e.POST("/api/email-provisioning/provision", provisionH.Provision,
		middleware.ServiceTokenMiddleware(cfg.ServiceToken))

	sched := scheduler.NewOverdueScheduler(loanUC, cfg.OverdueCronSpec, log)
	if err := sched.Start(); err != nil {
		log.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}

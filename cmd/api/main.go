package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "clinic-booking/internal/adapter/http"
	idempotency "clinic-booking/internal/adapter/middleware"
	"clinic-booking/internal/adapter/notify"
	"clinic-booking/internal/adapter/queue"
	"clinic-booking/internal/adapter/repository/sqlstore"
	"clinic-booking/internal/config"
	"clinic-booking/internal/domain/notification"
	"clinic-booking/internal/infrastructure/cache"
	"clinic-booking/internal/infrastructure/db"
	"clinic-booking/internal/usecase/appointment"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), cfg.DBDebug)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// notifications
	email := notify.NewEmailDispatcher(notify.EmailConfig{
		From:        cfg.SMTPEmail,
		Password:    cfg.SMTPPassword,
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		ClinicName:  cfg.ClinicName,
		ClinicPhone: cfg.ClinicPhone,
	})
	whatsapp := notify.NewWhatsAppNotifier(notify.WhatsAppConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		From:       cfg.TwilioWhatsAppNumber,
		ClinicName: cfg.ClinicName,
	})
	var events notification.Publisher = queue.NewLogPublisher(log.Default())
	if cfg.RabbitMQURL != "" {
		events = queue.NewRabbitPublisher(cfg.RabbitMQURL)
	}

	uc := appointment.NewUsecase(
		sqlstore.NewAppointmentRepository(gdb),
		sqlstore.NewGormUoW(gdb),
		email, whatsapp, events,
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	var bookingMW []echo.MiddlewareFunc
	if cfg.IdempotencyEnabled() {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		ttl := time.Duration(cfg.IdempTTLSecs) * time.Second
		bookingMW = append(bookingMW, idempotency.IdempotencyMiddleware(rdb, ttl))
		log.Printf("idempotency enabled (redis %s, ttl %s)", cfg.RedisAddr, ttl)
	}

	// routes
	httpadp.RegisterRoutes(e, httpadp.NewHandler(), httpadp.NewAppointmentHandler(uc), bookingMW...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

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

	"github.com/labstack/echo/v4/middleware"

	httpadp "microcredit-backoffice/internal/adapter/http"
	idem "microcredit-backoffice/internal/adapter/middleware"
	"microcredit-backoffice/internal/adapter/scheduler"
	"microcredit-backoffice/internal/app"
	"microcredit-backoffice/internal/config"
)

func main() {
	cfg := config.Load()
	a, err := app.Build(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	e := httpadp.NewEcho()
	e.Use(middleware.Logger(), middleware.Recover())

	routes := httpadp.Routes{
		Health: httpadp.NewHandler(a.Clock, map[string]httpadp.Pinger{
			"db":    a.PingDB,
			"redis": a.PingRedis,
		}),
		Loans:    httpadp.NewLoanHandler(a.Loans, a.Location),
		Payments: httpadp.NewPaymentHandler(a.Payments),
		Reports:  httpadp.NewReportHandler(a.Risk),
		Jobs:     httpadp.NewJobsHandler(a.Accrual, a.Reminder),
	}
	if a.Redis != nil {
		routes.Idempotency = idem.Idempotency(a.Redis, cfg.IdempotencyTTL())
	} else {
		log.Println("idempotency disabled: redis unavailable")
	}
	httpadp.Register(e, routes)

	var sched *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		sched, err = newScheduler(a)
		if err != nil {
			log.Fatal(err)
		}
		sched.Start()
	}

	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	if sched != nil {
		sched.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func newScheduler(a *app.App) (*scheduler.Scheduler, error) {
	accrualJob, err := scheduler.ParseDaily("accrual", a.Config.SchedulerAccrualAt, func(ctx context.Context) error {
		_, err := a.Accrual.Run(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	reminderJob, err := scheduler.ParseDaily("reminders", a.Config.SchedulerReminderAt, func(ctx context.Context) error {
		_, err := a.Reminder.Run(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return scheduler.New(a.Location, a.Clock, accrualJob, reminderJob), nil
}

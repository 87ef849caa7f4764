// Package app wires configuration, storage and the use cases together for the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"microcredit-backoffice/internal/adapter/repository/gormrepo"
	"microcredit-backoffice/internal/config"
	"microcredit-backoffice/internal/infrastructure/cache"
	infradb "microcredit-backoffice/internal/infrastructure/db"
	"microcredit-backoffice/internal/usecase/accrual"
	"microcredit-backoffice/internal/usecase/loan"
	"microcredit-backoffice/internal/usecase/notify"
	"microcredit-backoffice/internal/usecase/payment"
	"microcredit-backoffice/internal/usecase/risk"
	"microcredit-backoffice/pkg/clock"
)

type App struct {
	Config   *config.Config
	Location *time.Location
	Clock    clock.Clock
	DB       *gorm.DB
	Redis    *redis.Client // nil when redis is unreachable

	Loans    *loan.Usecase
	Payments *payment.Engine
	Accrual  *accrual.Engine
	Reminder *accrual.Reminder
	Risk     *risk.Service
}

// Build opens the database (migrating it) and redis, then assembles the use
// cases. Redis is optional: without it accrual runs unlocked and the risk
// report is computed on every request.
func Build(cfg *config.Config, c clock.Clock) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = clock.System{}
	}

	db, err := infradb.OpenGorm(cfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := infradb.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Printf("%v; continuing without locks and report cache", err)
		rdb = nil
	}

	return assemble(cfg, loc, c, db, rdb), nil
}

func assemble(cfg *config.Config, loc *time.Location, c clock.Clock, db *gorm.DB, rdb *redis.Client) *App {
	loans := gormrepo.NewLoanRepository(db)
	payments := gormrepo.NewPaymentRepository(db)
	penalties := gormrepo.NewPenaltyRepository(db)
	dir := gormrepo.NewClientDirectory(db)
	tx := gormrepo.NewGormUoW(db)
	disp := notify.NewDispatcher(gormrepo.NewNotificationOutbox(db), dir, cfg.NotifyTimeout())

	a := &App{
		Config:   cfg,
		Location: loc,
		Clock:    c,
		DB:       db,
		Redis:    rdb,
		Loans:    loan.NewUsecase(loans, payments, penalties, tx, disp, c),
		Payments: payment.NewEngine(loans, payments, tx, disp, c).WithLocation(loc),
		Accrual:  accrual.NewEngine(loans, tx, disp, c).WithLocation(loc),
		Reminder: accrual.NewReminder(loans, disp, c).WithLocation(loc),
		Risk:     risk.NewService(loans, payments, penalties, dir, c).WithLocation(loc),
	}
	if rdb != nil {
		a.Accrual.WithLocker(cache.NewLocker(rdb, cfg.AccrualLockTTL()))
		a.Risk.WithCache(cache.NewJSONCache[risk.Report](rdb, cfg.RiskCacheTTL()))
	}
	return a
}

// PingDB reports whether the database answers.
func (a *App) PingDB(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// PingRedis reports whether redis answers.
func (a *App) PingRedis(ctx context.Context) error {
	if a.Redis == nil {
		return fmt.Errorf("not configured")
	}
	return a.Redis.Ping(ctx).Err()
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	httpadp "library-backend/internal/adapter/http"
	mw "library-backend/internal/adapter/middleware"
	"library-backend/internal/adapter/repository/mysql"
	"library-backend/internal/config"
	"library-backend/internal/domain/fine"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/db"
	"library-backend/internal/infrastructure/logging"
	"library-backend/internal/infrastructure/scheduler"
	cataloguc "library-backend/internal/usecase/catalog"
	fineuc "library-backend/internal/usecase/fine"
	loanuc "library-backend/internal/usecase/loan"
	reportuc "library-backend/internal/usecase/report"
	reservationuc "library-backend/internal/usecase/reservation"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config: invalid")
	}

	gdb, err := db.OpenGorm(db.Options{Driver: cfg.DBDriver, DSN: cfg.DSN(), LogLevel: cfg.DBLogLevel})
	if err != nil {
		log.Fatal().Err(err).Msg("db: open failed")
	}
	if cfg.DBAutoMigrate {
		if err := mysql.Migrate(gdb); err != nil {
			log.Fatal().Err(err).Msg("db: migrate failed")
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("db: pool unavailable")
	}
	defer sqlDB.Close()

	loc, err := cfg.FineLocation()
	if err != nil {
		log.Fatal().Err(err).Msg("config: fine timezone")
	}
	policy := fine.NewPolicy(cfg.FinePerDay, loc)

	dialect := mysql.DialectMySQL
	if cfg.DBDriver == db.DriverSQLite {
		dialect = mysql.DialectSQLite
	}

	books := mysql.NewBookRepository(gdb)
	copies := mysql.NewCopyRepository(gdb)
	members := mysql.NewMemberRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	fines := mysql.NewFineRepository(gdb)
	reservations := mysql.NewReservationRepository(gdb)
	reports := mysql.NewReportRepository(sqlDB, dialect)
	tx := mysql.NewGormUoW(gdb)

	var (
		reportOpts []reportuc.Option
		idem       echo.MiddlewareFunc
	)
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis: connect failed")
		}
		defer rdb.Close()
		idem = mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
		reportOpts = append(reportOpts, reportuc.WithCache(
			cache.NewJSONCache(rdb, "library:"),
			time.Duration(cfg.ReportCacheTTLSecs)*time.Second,
		))
	} else {
		log.Warn().Msg("redis: REDIS_ADDR empty, idempotency and report cache disabled")
	}

	loanUC := loanuc.NewUsecase(loans, tx, policy, loanuc.WithLoanPeriod(cfg.LoanPeriodDays))
	reportUC := reportuc.NewUsecase(reports, members, policy, reportOpts...)

	e := httpadp.NewRouter(httpadp.Handlers{
		Health:       httpadp.NewHandler(sqlDB),
		Loans:        httpadp.NewLoanHandler(loanUC),
		Fines:        httpadp.NewFineHandler(fineuc.NewUsecase(fines, tx)),
		Catalog:      httpadp.NewCatalogHandler(cataloguc.NewUsecase(books, copies, members, tx)),
		Reservations: httpadp.NewReservationHandler(reservationuc.NewUsecase(reservations, tx)),
		Reports:      httpadp.NewReportHandler(reportUC),
	}, httpadp.RouterOptions{Idempotency: idem, CORSOrigins: cfg.CORSOrigins})

	job := scheduler.NewOverdueJob(reportUC)
	if err := job.Start(cfg.OverdueRefreshSchedule); err != nil {
		log.Fatal().Err(err).Msg("scheduler: start failed")
	}
	defer job.Stop()

	go func() {
		addr := ":" + cfg.AppPort
		log.Info().Str("addr", addr).Str("driver", cfg.DBDriver).Msg("http: listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http: server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("http: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http: shutdown")
	}
}

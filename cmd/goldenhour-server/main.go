package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/goldenhour/attendance-server/internal/attendance/service"
	"github.com/goldenhour/attendance-server/internal/attendance/store"
	"github.com/goldenhour/attendance-server/internal/attendance/store/csvfile"
	sqlitestore "github.com/goldenhour/attendance-server/internal/attendance/store/sqlite"
	"github.com/goldenhour/attendance-server/internal/catalog"
	"github.com/goldenhour/attendance-server/internal/config"
	"github.com/goldenhour/attendance-server/internal/db"
	"github.com/goldenhour/attendance-server/internal/httpapi"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "goldenhour-server ", log.LstdFlags|log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(catalog.Paths{
		Employees: cfg.EmployeesPath,
		Outlets:   cfg.OutletsPath,
		Models:    cfg.ModelsPath,
	}, logger)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}
	logger.Printf("catalogs loaded: %d employees, %d outlets, %d models",
		len(cat.Employees()), len(cat.Outlets()), len(cat.Models()))

	ledger, cleanup, err := openLedger(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open ledger: %v", err)
	}
	defer cleanup()

	if err := ledger.EnsureInitialized(ctx); err != nil {
		logger.Fatalf("initialize ledger: %v", err)
	}

	attendanceSvc := service.NewAttendanceService(service.Deps{
		Ledger:    ledger,
		Directory: service.NewEmployeeDirectory(cat),
		Outlets:   cat,
		Logger:    logger,
	})

	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:     logger,
		Addr:       cfg.HTTPAddr,
		Attendance: attendanceSvc,
	})

	go func() {
		logger.Printf("listening on %s (store=%s)", cfg.HTTPAddr, cfg.Store)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func openLedger(ctx context.Context, cfg config.Config, logger *log.Logger) (store.LedgerStore, func(), error) {
	if cfg.Store == config.StoreSQLite {
		conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			return nil, nil, err
		}
		if cfg.Env == "dev" {
			if err := db.SeedDev(ctx, conn); err != nil {
				logger.Printf("dev seed: %v", err)
			}
		}
		writer := db.NewWorker(conn)
		cleanup := func() {
			writer.Close()
			_ = conn.Close()
		}
		return sqlitestore.New(conn, writer), cleanup, nil
	}

	return csvfile.New(cfg.AttendancePath), func() {}, nil
}

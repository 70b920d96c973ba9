// Package cmd implements the goldenhour command line, the terminal
// counterpart of the attendance HTTP API. It talks to the same ledger
// store and catalogs directly, so it works without a running server.
package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goldenhour/attendance-server/internal/attendance/service"
	"github.com/goldenhour/attendance-server/internal/attendance/store/csvfile"
	"github.com/goldenhour/attendance-server/internal/catalog"
	"github.com/goldenhour/attendance-server/internal/config"
)

// NewRootCommand creates the root command for the goldenhour CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goldenhour",
		Short: "Goldenhour store operations - attendance from the terminal",
		Long: `Goldenhour records employee attendance against the shared ledger file.
Clock in at the start of a shift, clock out at the end, and check today's
record in between.`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(NewClockInCommand())
	cmd.AddCommand(NewClockOutCommand())
	cmd.AddCommand(NewStatusCommand())

	return cmd
}

// buildService wires the attendance workflow over the CSV ledger and the
// catalog files named by the environment.
func buildService(cmd *cobra.Command) (*service.AttendanceService, error) {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "goldenhour ", log.LstdFlags)

	cat, err := catalog.Load(catalog.Paths{
		Employees: cfg.EmployeesPath,
		Outlets:   cfg.OutletsPath,
		Models:    cfg.ModelsPath,
	}, logger)
	if err != nil {
		return nil, err
	}

	ledger := csvfile.New(cfg.AttendancePath)
	if err := ledger.EnsureInitialized(cmd.Context()); err != nil {
		return nil, err
	}

	return service.NewAttendanceService(service.Deps{
		Ledger:    ledger,
		Directory: service.NewEmployeeDirectory(cat),
		Outlets:   cat,
		Logger:    logger,
	}), nil
}

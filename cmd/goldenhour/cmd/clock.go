package cmd

import (
	"github.com/spf13/cobra"
)

// NewClockInCommand creates the clock-in command.
func NewClockInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clock-in <employee-id>",
		Short: "Record the start of today's shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}

			res, err := svc.ClockIn(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Printf("=== Attendance Clock In ===\n")
			cmd.Printf("Employee ID: %s\n", res.EmployeeID)
			cmd.Printf("Name:        %s\n", res.Name)
			cmd.Printf("Outlet:      %s (%s)\n", res.OutletCode, res.OutletName)
			cmd.Printf("\nClock In Successful!\n")
			cmd.Printf("Date: %s\n", res.Date)
			cmd.Printf("Time: %s\n", res.ClockIn)
			return nil
		},
	}
}

// NewClockOutCommand creates the clock-out command.
func NewClockOutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clock-out <employee-id>",
		Short: "Record the end of today's shift and report hours worked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}

			res, err := svc.ClockOut(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Printf("=== Attendance Clock Out ===\n")
			cmd.Printf("Employee ID: %s\n", res.EmployeeID)
			cmd.Printf("Name:        %s\n", res.Name)
			cmd.Printf("Outlet:      %s (%s)\n", res.OutletCode, res.OutletName)
			cmd.Printf("\nClock Out Successful!\n")
			cmd.Printf("Date: %s\n", res.Date)
			cmd.Printf("Time: %s\n", res.ClockOut)
			cmd.Printf("Total Hours Worked: %.1f hours\n", res.HoursWorked)
			return nil
		},
	}
}

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <employee-id>",
		Short: "Show today's stored attendance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}

			status, err := svc.Today(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if status == nil {
				cmd.Printf("No attendance record for today.\n")
				return nil
			}

			cmd.Printf("Employee ID: %s\n", status.EmployeeID)
			cmd.Printf("Date:        %s\n", status.Date)
			cmd.Printf("Clock In:    %s\n", status.ClockIn)
			if status.ClockOut != "" {
				cmd.Printf("Clock Out:   %s\n", status.ClockOut)
			} else {
				cmd.Printf("Clock Out:   (still clocked in)\n")
			}
			cmd.Printf("Outlet:      %s\n", status.OutletCode)
			return nil
		},
	}
}

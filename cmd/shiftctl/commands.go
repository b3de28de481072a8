package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/app"
	"github.com/spec-kit/shift-swap-service/internal/calendar"
	"github.com/spec-kit/shift-swap-service/internal/config"
	"github.com/spec-kit/shift-swap-service/internal/domain"
	"github.com/spec-kit/shift-swap-service/internal/observability"
	"github.com/spec-kit/shift-swap-service/internal/schedule"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "shiftctl",
		Short:        "Shift swap service tools",
		Long:         `Run the shift swap API, dry-run schedule imports and print schedule weeks.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(weekCmd())
	return rootCmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			svc, err := app.New(cfg, logger, nil)
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			logger.Info("serving", zap.String("addr", cfg.App.Addr()))
			return svc.Run(ctx)
		},
	}
}

func importCmd() *cobra.Command {
	var file, storeID string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Parse a schedule CSV and print the shifts it would create",
		Long: `Parse a schedule CSV (header row, then employeeId,date,startTime,endTime,position)
without importing it. A malformed row fails the whole file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := readCSV(cmd.Context(), file, storeID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nParsed %d shifts for store %s:\n\n", len(shifts), storeID)
			for i, s := range shifts {
				fmt.Fprintf(out, "  %2d. %s  %s  %s - %s  %s\n",
					i+1, s.EmployeeID, s.Date, calendar.FormatTime(s.StartTime), calendar.FormatTime(s.EndTime), s.Position)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to parse")
	cmd.Flags().StringVarP(&storeID, "store", "s", "store1", "Store id assigned to every row")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func weekCmd() *cobra.Command {
	var date, file, storeID, density string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the Sunday to Saturday week containing a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := time.Now()
			if date != "" {
				var err error
				if ref, err = calendar.ParseDate(date); err != nil {
					return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
				}
			}

			d := calendar.Density(density)
			if d != calendar.DensityCompact && d != calendar.DensityComfortable {
				return fmt.Errorf("density must be %s or %s", calendar.DensityCompact, calendar.DensityComfortable)
			}

			var shifts []domain.Shift
			if file != "" {
				inputs, err := readCSV(cmd.Context(), file, storeID)
				if err != nil {
					return err
				}
				shifts = schedule.NewStore().BulkAddShifts(cmd.Context(), inputs)
			}

			week := calendar.BuildWeek(shifts, ref, calendar.Options{
				Density: d,
				Today:   time.Now(),
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n%s\n\n", week.Title)
			for _, day := range week.Days {
				marker := " "
				if day.IsToday {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %s\n", marker, day.Weekday, day.Date)
				for _, e := range day.Entries {
					line := "      " + e.Time
					if e.EmployeeID != "" {
						line += "  " + e.EmployeeID
					}
					if e.Position != "" {
						line += "  " + e.Position
					}
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Any date in the week (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Optional schedule CSV to lay out on the week")
	cmd.Flags().StringVarP(&storeID, "store", "s", "store1", "Store id for CSV rows")
	cmd.Flags().StringVar(&density, "density", string(calendar.DensityComfortable), "compact or comfortable")
	return cmd
}

func readCSV(ctx context.Context, path, storeID string) ([]domain.ShiftInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	inputs, err := schedule.ParseCSV(ctx, f, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return inputs, nil
}

package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/schedule"
	"github.com/CatmanJunior/RoosterDIMS/pkg/io/csvio"
	"github.com/CatmanJunior/RoosterDIMS/pkg/io/locationsjson"
	"github.com/CatmanJunior/RoosterDIMS/pkg/io/recurrence"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
	"github.com/CatmanJunior/RoosterDIMS/pkg/persistence/postgres"
)

func generateCmd() *cobra.Command {
	var personsPath, locationsPath string
	var timeLimitS int

	cmd := &cobra.Command{
		Use:   "generate --persons <path> --locations <path>",
		Short: "Generate a schedule from CSV/JSON inputs and persist the run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			personsFile, err := os.Open(personsPath)
			if err != nil {
				return fmt.Errorf("open persons file: %w", err)
			}
			defer personsFile.Close()

			persons, err := csvio.ParsePersons(personsFile)
			if err != nil {
				return fmt.Errorf("parse persons csv: %w", err)
			}

			locationsFile, err := os.Open(locationsPath)
			if err != nil {
				return fmt.Errorf("open locations file: %w", err)
			}
			defer locationsFile.Close()

			locations, err := locationsjson.Parse(locationsFile)
			if err != nil {
				return fmt.Errorf("parse locations json: %w", err)
			}

			if err := applyRotaOverrides(locations); err != nil {
				return fmt.Errorf("apply rota overrides: %w", err)
			}

			limit := time.Duration(app.cfg.SolverTimeLimitS) * time.Second
			if timeLimitS > 0 {
				limit = time.Duration(timeLimitS) * time.Second
			}

			input := schedule.Input{
				Persons:   persons,
				Locations: locations,
				Weights: map[string]int{
					"location":          app.cfg.Weights.Location,
					"fairness":          app.cfg.Weights.Fairness,
					"monthly":           app.cfg.Weights.Monthly,
					"monthly_avg":       app.cfg.Weights.MonthlyAvg,
					"weekly_multi":      app.cfg.Weights.WeeklyMulti,
					"monthly_min_avail": app.cfg.Weights.MonthlyMinAvail,
					"location_fairness": app.cfg.Weights.LocationFairness,
				},
				TimeLimit:  limit,
				NumWorkers: app.cfg.SolverWorkers,
			}

			result, err := schedule.Run(app.ctx, app.logger, input)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			runID, err := persistRun(app.ctx, app.db, input, result)
			if err != nil {
				return fmt.Errorf("persist run: %w", err)
			}

			printRunSummary(runID, result)

			if result.Success != nil && app.notify != nil {
				if err := app.notify.PublishedSchedule(app.ctx, runID, result.Success); err != nil {
					app.logger.Warn("schedule notification failed", zap.Error(err))
					fmt.Printf("warning: notification failed: %v\n", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&personsPath, "persons", "", "path to the persons CSV file")
	cmd.Flags().StringVar(&locationsPath, "locations", "", "path to the locations JSON file")
	cmd.Flags().IntVar(&timeLimitS, "time-limit", 0, "solver time limit in seconds (overrides config)")
	cmd.MarkFlagRequired("persons")
	cmd.MarkFlagRequired("locations")

	return cmd
}

func exportCmd() *cobra.Command {
	var runID int64
	var outDir string

	cmd := &cobra.Command{
		Use:   "export --run <id>",
		Short: "Write filled-shifts and penalty-breakdown CSVs for a stored run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.db.LoadRun(app.ctx, runID)
			if err != nil {
				return fmt.Errorf("load run: %w", err)
			}

			if len(record.FilledShifts) == 0 && record.Status != "OPTIMAL" && record.Status != "FEASIBLE" {
				return fmt.Errorf("run %d has no filled shifts (status %s); use diagnose instead", runID, record.Status)
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			shiftsPath := outDir + "/filled_shifts.csv"
			shiftsFile, err := os.Create(shiftsPath)
			if err != nil {
				return fmt.Errorf("create filled shifts file: %w", err)
			}
			defer shiftsFile.Close()
			if err := csvio.ExportFilledShifts(shiftsFile, record.FilledShifts, csvio.TestersBracketList); err != nil {
				return fmt.Errorf("export filled shifts: %w", err)
			}

			penaltiesPath := outDir + "/penalties.csv"
			penaltiesFile, err := os.Create(penaltiesPath)
			if err != nil {
				return fmt.Errorf("create penalties file: %w", err)
			}
			defer penaltiesFile.Close()
			if err := csvio.ExportPenalties(penaltiesFile, record.PenaltyBreakdown); err != nil {
				return fmt.Errorf("export penalties: %w", err)
			}

			fmt.Printf("wrote %s and %s\n", shiftsPath, penaltiesPath)
			return nil
		},
	}

	cmd.Flags().Int64Var(&runID, "run", 0, "stored run ID")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for CSV files")
	cmd.MarkFlagRequired("run")

	return cmd
}

func diagnoseCmd() *cobra.Command {
	var runID int64

	cmd := &cobra.Command{
		Use:   "diagnose --run <id>",
		Short: "Print the (date, location) infeasibility reason table for a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.db.LoadRun(app.ctx, runID)
			if err != nil {
				return fmt.Errorf("load run: %w", err)
			}

			if len(record.Diagnostics) == 0 {
				fmt.Printf("run %d (%s) has no diagnostics recorded\n", runID, record.Status)
				return nil
			}

			fmt.Printf("\nDiagnostics for run %d (%s):\n\n", runID, record.Status)
			for _, d := range record.Diagnostics {
				fmt.Printf("%s %-20s required=%d assigned=%d availT=%d availP=%d\n",
					d.Date, d.Location, d.Required, d.Assigned, d.AvailableT, d.AvailableP)
				if d.BlameAvailability {
					fmt.Println("    - insufficient availability")
				}
				if d.BlameMaxPerDay {
					fmt.Println("    - max-per-day cap may be binding")
				}
				if d.BlameMaxPerWeek {
					fmt.Println("    - max-per-week cap may be binding")
				}
				if d.BlameSingleFirst {
					fmt.Println("    - single-senior-per-slot rule may be binding")
				}
				if d.BlameExclusions {
					fmt.Println("    - mutual-exclusion pairs may be binding")
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int64Var(&runID, "run", 0, "stored run ID")
	cmd.MarkFlagRequired("run")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.db.RunMigrations(app.ctx); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			fmt.Println("migrations applied successfully")
			return nil
		},
	}
}

// applyRotaOverrides expands each configured recurrence rule and merges
// the resulting teams_per_date entries into the matching location,
// resolving demand before schedule.Run is ever called (§10.5).
func applyRotaOverrides(locations []model.Location) error {
	byName := make(map[string]int, len(locations))
	for i, l := range locations {
		byName[l.Name] = i
	}

	for _, o := range app.cfg.RotaOverrides {
		idx, ok := byName[o.Location]
		if !ok {
			continue
		}

		teamsPerWeekday := make(map[time.Weekday]int, len(o.TeamsPerWeekday))
		for name, n := range o.TeamsPerWeekday {
			wd, err := parseWeekday(name)
			if err != nil {
				return fmt.Errorf("rota override for %q: %w", o.Location, err)
			}
			teamsPerWeekday[wd] = n
		}

		horizonStart := time.Now()
		horizonEnd := horizonStart.AddDate(1, 0, 0)

		expanded, err := recurrence.Expand(recurrence.Override{
			RRule:           o.RRule,
			Start:           horizonStart,
			Until:           horizonEnd,
			TeamsPerWeekday: teamsPerWeekday,
		})
		if err != nil {
			return fmt.Errorf("expand rrule for %q: %w", o.Location, err)
		}

		if locations[idx].TeamsPerDate == nil {
			locations[idx].TeamsPerDate = make(map[model.Date]int, len(expanded))
		}
		recurrence.MergeInto(locations[idx].TeamsPerDate, expanded)
	}

	return nil
}

func parseWeekday(name string) (time.Weekday, error) {
	switch name {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unrecognized weekday %q", name)
	}
}

func persistRun(ctx context.Context, db *postgres.DB, input schedule.Input, result *schedule.Result) (int64, error) {
	hash, err := hashInput(input)
	if err != nil {
		return 0, fmt.Errorf("hash input: %w", err)
	}

	record := postgres.RunRecord{
		InputHash: hash,
		Status:    result.Status.String(),
	}
	if result.Success != nil {
		record.FilledShifts = result.Success.FilledShifts
		record.PenaltyBreakdown = result.Success.Penalties
	}
	if result.Failure != nil {
		record.Diagnostics = result.Failure.Diagnostics
	}

	return db.SaveRun(ctx, record)
}

func hashInput(input schedule.Input) (string, error) {
	data, err := json.Marshal(struct {
		Persons   interface{}
		Locations interface{}
	}{input.Persons, input.Locations})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func printRunSummary(runID int64, result *schedule.Result) {
	fmt.Printf("\nrun %d: status=%s\n", runID, result.Status)
	if result.Success != nil {
		fmt.Printf("%d shifts filled\n", len(result.Success.FilledShifts))
		for _, s := range result.Success.Summary {
			fmt.Printf("  %-20s total=%d\n", s.Component, s.Total)
		}
	}
	if result.Failure != nil {
		fmt.Printf("%d (date, location) demands could not be satisfied; run `diagnose --run %d` for detail\n",
			len(result.Failure.Diagnostics), runID)
	}
	fmt.Println()
}

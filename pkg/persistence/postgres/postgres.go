// Package postgres is the core's storage layer (§10.4): persons and
// locations feeding a run, plus one row per Run call recording its inputs
// hash, status, penalty breakdown, and filled shifts. The core itself
// never touches this package directly; callers load/save around it.
package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/project"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB provides database operations using PostgreSQL
type DB struct {
	pool *pgxpool.Pool
}

// NewDB creates a new PostgreSQL database connection
func NewDB(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.pool.Close()
}

// RunMigrations executes all SQL migration files in order
func (db *DB) RunMigrations(ctx context.Context) error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	// Sort migration files by name to ensure correct order
	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, filename := range sqlFiles {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		_, err = db.pool.Exec(ctx, string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
	}

	return nil
}

// SavePerson upserts one person's record, keyed by name.
func (db *DB) SavePerson(ctx context.Context, p model.Person) error {
	availability := make(map[string]bool, len(p.Availability))
	for d, avail := range p.Availability {
		availability[string(d)] = avail
	}
	availJSON, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO persons (name, role, month_max, month_avg, preferred_location, availability, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (name) DO UPDATE SET
			role = EXCLUDED.role,
			month_max = EXCLUDED.month_max,
			month_avg = EXCLUDED.month_avg,
			preferred_location = EXCLUDED.preferred_location,
			availability = EXCLUDED.availability,
			updated_at = now()
	`, p.Name, string(p.Role), p.MonthMax, p.MonthAvg, p.PreferredLocation, availJSON)
	if err != nil {
		return fmt.Errorf("save person %q: %w", p.Name, err)
	}
	return nil
}

// LoadPersons returns every stored person, ordered by name.
func (db *DB) LoadPersons(ctx context.Context) ([]model.Person, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT name, role, month_max, month_avg, preferred_location, availability
		FROM persons ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}
	defer rows.Close()

	var persons []model.Person
	for rows.Next() {
		var p model.Person
		var role, pref string
		var availJSON []byte
		if err := rows.Scan(&p.Name, &role, &p.MonthMax, &p.MonthAvg, &pref, &availJSON); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Role = model.Role(role)
		p.PreferredLocation = pref

		var availability map[string]bool
		if err := json.Unmarshal(availJSON, &availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability for %q: %w", p.Name, err)
		}
		p.Availability = make(map[model.Date]bool, len(availability))
		for ds, avail := range availability {
			d, err := model.ParseDate(ds)
			if err != nil {
				return nil, fmt.Errorf("invalid stored date %q for %q: %w", ds, p.Name, err)
			}
			p.Availability[d] = avail
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// SaveLocation upserts one location's record, keyed by name.
func (db *DB) SaveLocation(ctx context.Context, l model.Location) error {
	teamsPerDate := make(map[string]int, len(l.TeamsPerDate))
	for d, n := range l.TeamsPerDate {
		teamsPerDate[string(d)] = n
	}
	teamsJSON, err := json.Marshal(teamsPerDate)
	if err != nil {
		return fmt.Errorf("marshal teams_per_date: %w", err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO locations (name, allow_tester, allow_peer, teams_per_date, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (name) DO UPDATE SET
			allow_tester = EXCLUDED.allow_tester,
			allow_peer = EXCLUDED.allow_peer,
			teams_per_date = EXCLUDED.teams_per_date,
			updated_at = now()
	`, l.Name, l.AllowTester, l.AllowPeer, teamsJSON)
	if err != nil {
		return fmt.Errorf("save location %q: %w", l.Name, err)
	}
	return nil
}

// LoadLocations returns every stored location, ordered by name.
func (db *DB) LoadLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT name, allow_tester, allow_peer, teams_per_date
		FROM locations ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		var teamsJSON []byte
		if err := rows.Scan(&l.Name, &l.AllowTester, &l.AllowPeer, &teamsJSON); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}

		var teamsPerDate map[string]int
		if err := json.Unmarshal(teamsJSON, &teamsPerDate); err != nil {
			return nil, fmt.Errorf("unmarshal teams_per_date for %q: %w", l.Name, err)
		}
		l.TeamsPerDate = make(map[model.Date]int, len(teamsPerDate))
		for ds, n := range teamsPerDate {
			d, err := model.ParseDate(ds)
			if err != nil {
				return nil, fmt.Errorf("invalid stored date %q for %q: %w", ds, l.Name, err)
			}
			l.TeamsPerDate[d] = n
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// RunRecord is one persisted schedule.Run outcome.
type RunRecord struct {
	ID                int64
	InputHash         string
	Status            string
	ObjectiveValue    *float64
	PenaltyBreakdown  []project.PenaltyRow
	FilledShifts      []project.FilledShift
	Diagnostics       []project.DiagnosticRow
}

// SaveRun inserts one run outcome and returns its assigned ID. Exactly one
// of PenaltyBreakdown/FilledShifts or Diagnostics is expected to be
// populated, mirroring schedule.Result's Success/Failure split.
func (db *DB) SaveRun(ctx context.Context, r RunRecord) (int64, error) {
	penaltyJSON, err := json.Marshal(r.PenaltyBreakdown)
	if err != nil {
		return 0, fmt.Errorf("marshal penalty breakdown: %w", err)
	}
	shiftsJSON, err := json.Marshal(r.FilledShifts)
	if err != nil {
		return 0, fmt.Errorf("marshal filled shifts: %w", err)
	}
	diagJSON, err := json.Marshal(r.Diagnostics)
	if err != nil {
		return 0, fmt.Errorf("marshal diagnostics: %w", err)
	}

	var id int64
	err = db.pool.QueryRow(ctx, `
		INSERT INTO runs (input_hash, status, objective_value, penalty_breakdown, filled_shifts, diagnostics)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, r.InputHash, r.Status, r.ObjectiveValue, penaltyJSON, shiftsJSON, diagJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	return id, nil
}

// LoadRun fetches one run outcome by ID.
func (db *DB) LoadRun(ctx context.Context, id int64) (*RunRecord, error) {
	r := &RunRecord{ID: id}
	var penaltyJSON, shiftsJSON, diagJSON []byte
	err := db.pool.QueryRow(ctx, `
		SELECT input_hash, status, objective_value, penalty_breakdown, filled_shifts, diagnostics
		FROM runs WHERE id = $1
	`, id).Scan(&r.InputHash, &r.Status, &r.ObjectiveValue, &penaltyJSON, &shiftsJSON, &diagJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("run %d not found", id)
		}
		return nil, fmt.Errorf("load run %d: %w", id, err)
	}
	if err := json.Unmarshal(penaltyJSON, &r.PenaltyBreakdown); err != nil {
		return nil, fmt.Errorf("unmarshal penalty breakdown: %w", err)
	}
	if err := json.Unmarshal(shiftsJSON, &r.FilledShifts); err != nil {
		return nil, fmt.Errorf("unmarshal filled shifts: %w", err)
	}
	if err := json.Unmarshal(diagJSON, &r.Diagnostics); err != nil {
		return nil, fmt.Errorf("unmarshal diagnostics: %w", err)
	}
	return r, nil
}

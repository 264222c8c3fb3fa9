// Package locationsjson implements input 2's JSON collaborator (§6):
// locations and their per-date team counts, round-trippable but otherwise
// outside the core's contract.
package locationsjson

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

// record is the on-disk shape: team counts keyed by ISO date string,
// since JSON object keys are always strings.
type record struct {
	Name         string         `json:"name"`
	AllowTester  bool           `json:"allow_tester"`
	AllowPeer    bool           `json:"allow_peer"`
	TeamsPerDate map[string]int `json:"teams_per_date"`
}

// Parse reads a JSON array of locations.
func Parse(r io.Reader) ([]model.Location, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode locations json: %w", err)
	}

	locations := make([]model.Location, 0, len(records))
	for _, rec := range records {
		loc := model.Location{
			Name:         rec.Name,
			AllowTester:  rec.AllowTester,
			AllowPeer:    rec.AllowPeer,
			TeamsPerDate: make(map[model.Date]int, len(rec.TeamsPerDate)),
		}
		for ds, n := range rec.TeamsPerDate {
			d, err := model.ParseDate(ds)
			if err != nil {
				return nil, fmt.Errorf("location %q: %w", rec.Name, err)
			}
			loc.TeamsPerDate[d] = n
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// Write serializes locations back to JSON, with date keys sorted for
// reproducible output.
func Write(w io.Writer, locations []model.Location) error {
	records := make([]record, 0, len(locations))
	for _, loc := range locations {
		rec := record{
			Name: loc.Name, AllowTester: loc.AllowTester, AllowPeer: loc.AllowPeer,
			TeamsPerDate: make(map[string]int, len(loc.TeamsPerDate)),
		}
		for d, n := range loc.TeamsPerDate {
			rec.TeamsPerDate[string(d)] = n
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode locations json: %w", err)
	}
	return nil
}

// Package csvio implements the CSV collaborators input 1/2 and output 2/3
// round-trip (§6): these are explicitly out-of-scope collaborators, not
// core concerns, so the core never imports this package — callers read a
// file, build a schedule.Input, and hand the result back here to export.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

const (
	colName              = "name"
	colRole              = "role"
	colMonthMax          = "month_max"
	colMonthAvg          = "month_avg"
	colPreferredLocation = "preferred_location"

	// flagColumnPrefix marks a per-location pref_location_flags column,
	// e.g. "flag:Amsterdam". Without this column family the flag map the
	// core's H2 ban and T1/T7 penalties key off is unreachable from the
	// documented CSV contract — only the legacy single-string
	// preferred_location fallback would ever be exercised.
	flagColumnPrefix = "flag:"
)

var reservedPersonColumns = map[string]bool{
	colName: true, colRole: true, colMonthMax: true, colMonthAvg: true, colPreferredLocation: true,
}

// ParsePersons reads one person per row. Headers of the form "flag:<location>"
// populate PrefLocationFlags (§3, §4.2 H2, §4.3 T1/T7) with cell values
// "0"/"1"/"2" or "forbidden"/"penalized"/"neutral" (case-insensitive); any
// other header not in the reserved set is treated as an availability date
// column (§6 "header row whose date-column keys are ISO YYYY-MM-DD"), with
// cell values "true"/"false" (case-insensitive) or "1"/"0". A blank cell
// leaves that date absent from Availability, which IsAvailable treats as
// available by default.
func ParsePersons(r io.Reader) ([]model.Person, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read persons csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	type flagColumn struct {
		Index    int
		Location string
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	var dateColumns []string
	var flagColumns []flagColumn
	for i, col := range header {
		trimmed := strings.TrimSpace(col)
		key := strings.ToLower(trimmed)
		index[key] = i
		switch {
		case reservedPersonColumns[key]:
		case strings.HasPrefix(key, flagColumnPrefix):
			flagColumns = append(flagColumns, flagColumn{
				Index:    i,
				Location: strings.TrimSpace(trimmed[len(flagColumnPrefix):]),
			})
		default:
			dateColumns = append(dateColumns, key)
		}
	}

	persons := make([]model.Person, 0, len(rows)-1)
	for lineNum, row := range rows[1:] {
		p := model.Person{Availability: make(map[model.Date]bool, len(dateColumns))}

		if i, ok := index[colName]; ok && i < len(row) {
			p.Name = strings.TrimSpace(row[i])
		}
		if i, ok := index[colRole]; ok && i < len(row) {
			p.Role = model.Role(strings.ToUpper(strings.TrimSpace(row[i])))
		}
		if i, ok := index[colMonthMax]; ok && i < len(row) && row[i] != "" {
			n, err := strconv.Atoi(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, fmt.Errorf("persons csv row %d: %s: %w", lineNum+2, colMonthMax, err)
			}
			p.MonthMax = n
		}
		if i, ok := index[colMonthAvg]; ok && i < len(row) && row[i] != "" {
			n, err := strconv.Atoi(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, fmt.Errorf("persons csv row %d: %s: %w", lineNum+2, colMonthAvg, err)
			}
			p.MonthAvg = n
		}
		if i, ok := index[colPreferredLocation]; ok && i < len(row) {
			p.PreferredLocation = strings.TrimSpace(row[i])
		}

		for _, col := range dateColumns {
			i := index[col]
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				continue
			}
			d, err := model.ParseDate(col)
			if err != nil {
				return nil, fmt.Errorf("persons csv row %d: %w", lineNum+2, err)
			}
			p.Availability[d] = parseBool(row[i])
		}

		if len(flagColumns) > 0 {
			p.PrefLocationFlags = make(map[string]model.LocationFlag, len(flagColumns))
			for _, fc := range flagColumns {
				if fc.Index >= len(row) || strings.TrimSpace(row[fc.Index]) == "" {
					continue
				}
				flag, err := parseLocationFlag(row[fc.Index])
				if err != nil {
					return nil, fmt.Errorf("persons csv row %d: flag:%s: %w", lineNum+2, fc.Location, err)
				}
				p.PrefLocationFlags[fc.Location] = flag
			}
		}

		persons = append(persons, p)
	}
	return persons, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// parseLocationFlag accepts the numeric encoding spec.md §3 defines
// (0=forbidden, 1=penalized, 2=neutral) or the equivalent word form.
func parseLocationFlag(s string) (model.LocationFlag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "forbidden", "ban", "banned":
		return model.LocationForbidden, nil
	case "1", "penalized", "penalize", "penalty":
		return model.LocationPenalized, nil
	case "2", "neutral", "":
		return model.LocationNeutral, nil
	default:
		return model.LocationNeutral, fmt.Errorf("unrecognized location flag %q", s)
	}
}

package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/project"
	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

const (
	shiftColLocation = "location"
	shiftColDate     = "date"
	shiftColWeekday  = "weekday"
	shiftColISOWeek  = "iso_week"
	shiftColTeam     = "team"
	shiftColTesters  = "testers"
	testerColPrefix  = "tester_"
)

// TestersFormat selects how ExportFilledShifts writes the testers field
// (§6: both forms must be accepted on read-back, so the format only
// matters for writing).
type TestersFormat int

const (
	// TestersBracketList writes one "testers" column holding a
	// bracket-delimited literal list, e.g. "[alice, bob]".
	TestersBracketList TestersFormat = iota
	// TestersSplitColumns writes tester_1, tester_2, … columns, one per
	// assigned person, padded with empty cells for shorter rows.
	TestersSplitColumns
)

// ExportFilledShifts writes shifts as a CSV whose header is the fixed
// location/date/weekday/iso_week/team columns followed by the testers
// field in the requested form.
func ExportFilledShifts(w io.Writer, shifts []project.FilledShift, format TestersFormat) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if format == TestersSplitColumns {
		maxTesters := 0
		for _, s := range shifts {
			if len(s.Testers) > maxTesters {
				maxTesters = len(s.Testers)
			}
		}
		header := []string{shiftColLocation, shiftColDate, shiftColWeekday, shiftColISOWeek, shiftColTeam}
		for i := 1; i <= maxTesters; i++ {
			header = append(header, testerColPrefix+strconv.Itoa(i))
		}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("write filled shifts header: %w", err)
		}
		for _, s := range shifts {
			row := []string{s.Location, string(s.Date), s.Weekday, strconv.Itoa(s.ISOWeek), strconv.Itoa(s.TeamIndex)}
			for i := 0; i < maxTesters; i++ {
				if i < len(s.Testers) {
					row = append(row, s.Testers[i])
				} else {
					row = append(row, "")
				}
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("write filled shift row: %w", err)
			}
		}
		writer.Flush()
		return writer.Error()
	}

	header := []string{shiftColLocation, shiftColDate, shiftColWeekday, shiftColISOWeek, shiftColTeam, shiftColTesters}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write filled shifts header: %w", err)
	}
	for _, s := range shifts {
		row := []string{
			s.Location, string(s.Date), s.Weekday, strconv.Itoa(s.ISOWeek), strconv.Itoa(s.TeamIndex),
			"[" + strings.Join(s.Testers, ", ") + "]",
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write filled shift row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ParseFilledShifts reads back a CSV produced by either ExportFilledShifts
// form, detected from the header (§6: both forms must round-trip).
func ParseFilledShifts(r io.Reader) ([]project.FilledShift, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read filled shifts csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	var testerCols []int
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		index[key] = i
		if strings.HasPrefix(key, testerColPrefix) {
			testerCols = append(testerCols, i)
		}
	}

	shifts := make([]project.FilledShift, 0, len(rows)-1)
	for lineNum, row := range rows[1:] {
		var s project.FilledShift
		if i, ok := index[shiftColLocation]; ok && i < len(row) {
			s.Location = row[i]
		}
		if i, ok := index[shiftColDate]; ok && i < len(row) {
			d, err := model.ParseDate(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, fmt.Errorf("filled shifts csv row %d: %w", lineNum+2, err)
			}
			s.Date = d
		}
		if i, ok := index[shiftColWeekday]; ok && i < len(row) {
			s.Weekday = row[i]
		}
		if i, ok := index[shiftColISOWeek]; ok && i < len(row) && row[i] != "" {
			n, err := strconv.Atoi(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, fmt.Errorf("filled shifts csv row %d: %s: %w", lineNum+2, shiftColISOWeek, err)
			}
			s.ISOWeek = n
		}
		if i, ok := index[shiftColTeam]; ok && i < len(row) && row[i] != "" {
			n, err := strconv.Atoi(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, fmt.Errorf("filled shifts csv row %d: %s: %w", lineNum+2, shiftColTeam, err)
			}
			s.TeamIndex = n
		}

		if len(testerCols) > 0 {
			for _, i := range testerCols {
				if i < len(row) && strings.TrimSpace(row[i]) != "" {
					s.Testers = append(s.Testers, strings.TrimSpace(row[i]))
				}
			}
		} else if i, ok := index[shiftColTesters]; ok && i < len(row) {
			s.Testers = parseTesterList(row[i])
		}

		shifts = append(shifts, s)
	}
	return shifts, nil
}

func parseTesterList(cell string) []string {
	trimmed := strings.TrimSpace(cell)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	testers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			testers = append(testers, p)
		}
	}
	return testers
}

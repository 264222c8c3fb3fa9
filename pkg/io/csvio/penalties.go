package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/CatmanJunior/RoosterDIMS/pkg/core/project"
)

const (
	penaltyColComponent = "component"
	penaltyColPerson    = "person"
	penaltyColScopeKey  = "scope_key"
	penaltyColUnits     = "units"
	penaltyColWeighted  = "weighted"
)

// ExportPenalties writes the non-zero penalty-breakdown rows the spec
// describes as collaborator output (§4.5, §6 output 2).
func ExportPenalties(w io.Writer, rows []project.PenaltyRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{penaltyColComponent, penaltyColPerson, penaltyColScopeKey, penaltyColUnits, penaltyColWeighted}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write penalties header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			string(r.Component), r.Person, r.ScopeKey,
			strconv.FormatInt(r.Units, 10), strconv.FormatInt(r.Weighted, 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write penalty row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

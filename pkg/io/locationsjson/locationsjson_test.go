package locationsjson

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CatmanJunior/RoosterDIMS/pkg/model"
)

func TestParse(t *testing.T) {
	input := `[{"name":"lab","allow_tester":true,"allow_peer":true,"teams_per_date":{"2026-08-03":2}}]`
	locations, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "lab", locations[0].Name)
	assert.Equal(t, 2, locations[0].TeamsPerDate[model.Date("2026-08-03")])
}

func TestWriteParseRoundTrip(t *testing.T) {
	locations := []model.Location{
		{Name: "lab", AllowTester: true, AllowPeer: false, TeamsPerDate: map[model.Date]int{"2026-08-03": 1}},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, locations))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, locations[0].Name, parsed[0].Name)
	assert.Equal(t, locations[0].AllowTester, parsed[0].AllowTester)
	assert.Equal(t, locations[0].TeamsPerDate, parsed[0].TeamsPerDate)
}

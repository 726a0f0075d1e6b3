package msa

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boundaryFixture is two square metros: 34940 spanning lon/lat (-82,-81)×(26,27)
// with a hole in its middle, and 45300 spanning (-83,-82.5)×(27.5,28).
const boundaryFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"CBSAFP": "34940", "NAME": "Naples-Marco Island, FL"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[-82, 26], [-81, 26], [-81, 27], [-82, 27], [-82, 26]],
          [[-81.6, 26.4], [-81.4, 26.4], [-81.4, 26.6], [-81.6, 26.6], [-81.6, 26.4]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"cbsa_code": "45300", "cbsa_title": "Tampa-St. Petersburg-Clearwater, FL"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[-83, 27.5], [-82.5, 27.5], [-82.5, 28], [-83, 28], [-83, 27.5]]]
        ]
      }
    }
  ]
}`

func fixtureIndex(t *testing.T) *Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fl-msas.geojson")
	require.NoError(t, os.WriteFile(path, []byte(boundaryFixture), 0o644))
	return NewIndex(path)
}

func TestIndexName(t *testing.T) {
	x := fixtureIndex(t)

	assert.Equal(t, "Naples-Marco Island, FL", x.Name("34940"))
	assert.Equal(t, "Tampa-St. Petersburg-Clearwater, FL", x.Name("45300"),
		"alternate property names must be probed")
	assert.Equal(t, UnknownName, x.Name("99999"))
}

func TestIndexNameDegradesOnMissingFile(t *testing.T) {
	x := NewIndex(filepath.Join(t.TempDir(), "nope.geojson"))
	assert.Equal(t, UnknownName, x.Name("34940"))
}

func TestIndexContains(t *testing.T) {
	x := fixtureIndex(t)

	tests := []struct {
		name string
		cbsa string
		lon  float64
		lat  float64
		want bool
	}{
		{"inside polygon", "34940", -81.8, 26.2, true},
		{"outside polygon", "34940", -80.0, 26.2, false},
		{"inside hole", "34940", -81.5, 26.5, false},
		{"inside multipolygon", "45300", -82.7, 27.7, true},
		{"unknown area contains nothing", "99999", -81.8, 26.2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := x.Contains(tt.cbsa, tt.lon, tt.lat)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndexContainsErrorOnMissingFile(t *testing.T) {
	x := NewIndex(filepath.Join(t.TempDir(), "nope.geojson"))
	_, err := x.Contains("34940", -81.8, 26.2)
	assert.Error(t, err)
}

package oews

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSOC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"29-1141", "29-1141"},
		{"291141", "29-1141"},
		{"29-1141.00", "29-1141"},
		{"  29-1141 ", "29-1141"},
		{"29-11", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSOC(tt.in), "input %q", tt.in)
	}
}

func TestProcessFiltersAndParses(t *testing.T) {
	rows := [][]string{
		{"AREA", "AREA_TITLE", "OCC_CODE", "TOT_EMP", "A_MEAN", "A_MEDIAN", "A_PCT10", "A_PCT25", "A_PCT75", "A_PCT90"},
		// Kept: Florida metro, target SOC.
		{"34940", "Naples-Marco Island, FL", "29-1141", "3,210", "82,140", "79,560", "61,000", "70,120", "91,480", "101,300"},
		// Dropped: not a Florida metro.
		{"12060", "Atlanta-Sandy Springs, GA", "29-1141", "500", "80,000", "78,000", "", "", "", ""},
		// Dropped: not a target occupation.
		{"34940", "Naples-Marco Island, FL", "11-1011", "120", "150,000", "140,000", "", "", "", ""},
		// Kept with suppressed values.
		{"45300", "Tampa-St. Petersburg-Clearwater, FL", "51-4121", "**", "48,120", "#", "*", "", "55,000", "61,200"},
	}

	recs, err := Process(rows, 2024)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	naples := recs[0]
	assert.Equal(t, "34940", naples.MSACode)
	assert.Equal(t, "Naples-Marco Island, FL", naples.MSAName)
	assert.Equal(t, "29-1141", naples.SOC)
	assert.Equal(t, 2024, naples.Year)
	require.NotNil(t, naples.Employment)
	assert.Equal(t, 3210.0, *naples.Employment)
	require.NotNil(t, naples.MedianAnnual)
	assert.Equal(t, 79560.0, *naples.MedianAnnual)

	tampa := recs[1]
	assert.Nil(t, tampa.Employment)
	assert.Nil(t, tampa.MedianAnnual)
	assert.Nil(t, tampa.P10Annual)
	require.NotNil(t, tampa.MeanAnnual)
	assert.Equal(t, 48120.0, *tampa.MeanAnnual)
}

func TestProcessDeduplicatesByCompleteness(t *testing.T) {
	rows := [][]string{
		{"AREA", "AREA_TITLE", "OCC_CODE", "TOT_EMP", "A_MEAN", "A_MEDIAN"},
		{"34940", "Naples-Marco Island, FL", "29-1141", "", "82,140", ""},
		{"34940", "Naples-Marco Island, FL", "29-1141", "3,210", "82,140", "79,560"},
	}

	recs, err := Process(rows, 2024)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].Employment, "the row with employment data must win")
}

func TestProcessEmptyWorkbook(t *testing.T) {
	_, err := Process(nil, 2024)
	assert.Error(t, err)
}

func TestMissingMSAs(t *testing.T) {
	recs := []Record{{MSACode: "34940"}, {MSACode: "45300"}}
	missing := MissingMSAs(recs)
	assert.Len(t, missing, len(FloridaMSACodes)-2)
	assert.NotContains(t, missing, "34940")
	assert.Contains(t, missing, "33100")
}

func TestAnomalies(t *testing.T) {
	low, ok, high := 15000.0, 75000.0, 310000.0
	recs := []Record{
		{SOC: "a", MedianAnnual: &low},
		{SOC: "b", MedianAnnual: &ok},
		{SOC: "c", MedianAnnual: &high},
		{SOC: "d"},
	}

	got := Anomalies(recs)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].SOC)
	assert.Equal(t, "c", got[1].SOC)
}

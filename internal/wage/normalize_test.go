package wage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metroRow(code, rateType, year, median string) AreaWage {
	return AreaWage{
		Area:     code,
		AreaName: "Test Metro",
		RateType: rateType,
		Year:     year,
		Median:   median,
	}
}

func reportWith(wages Wages) *Report {
	return &Report{OccupationDetail: OccupationDetail{
		OnetTitle: "Registered Nurses",
		Wages:     wages,
	}}
}

func TestNormalizeStrictMetroNoFallback(t *testing.T) {
	// State and national rows are present but the requested metro is not:
	// the resolution must fail rather than demote to state data.
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			metroRow("45300", RateAnnual, "2023", "75,000"),
		},
		StateWagesList: []AreaWage{
			{AreaName: "Florida", RateType: RateAnnual, Year: "2023", Median: "70,000"},
		},
		NationalWagesList: []AreaWage{
			{AreaName: "United States", RateType: RateAnnual, Year: "2023", Median: "72,000"},
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.Error(t, err)
	assert.Nil(t, rec)

	var miss *MissingAreaError
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, "MISSING_CBSA_34940", miss.Error())
	assert.Equal(t, []string{"45300"}, miss.Available)
}

func TestNormalizeAnnualPreferredOverHourly(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			metroRow("34940", RateHourly, "2023", "36.50"),
			metroRow("34940", RateAnnual, "2023", "76,000"),
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)
	require.NotNil(t, rec.MedianAnnual)
	assert.Equal(t, 76000.0, *rec.MedianAnnual)
}

func TestNormalizeHourlyConversion(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			{
				Area:     "34940",
				AreaName: "Naples-Marco Island, FL",
				RateType: RateHourly,
				Year:     "2023",
				Median:   "36.50",
				Pct10:    "25.00",
				Pct90:    "50.25",
			},
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)

	require.NotNil(t, rec.MedianAnnual)
	assert.Equal(t, 75920.0, *rec.MedianAnnual, "36.50 × 2080")
	require.NotNil(t, rec.P10)
	assert.Equal(t, 52000.0, *rec.P10)
	require.NotNil(t, rec.P90)
	assert.Equal(t, 104520.0, *rec.P90, "50.25 × 2080 rounded")
}

func TestNormalizeNewestYearWins(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			metroRow("34940", RateAnnual, "2022", "70,000"),
			metroRow("34940", RateAnnual, "2024", "78,000"),
			metroRow("34940", RateAnnual, "2023", "74,000"),
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)
	assert.Equal(t, 2024, rec.Year)
	require.NotNil(t, rec.MedianAnnual)
	assert.Equal(t, 78000.0, *rec.MedianAnnual)
}

func TestNormalizeYearTieKeepsFirstRow(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			metroRow("34940", RateAnnual, "2023", "74,000"),
			metroRow("34940", RateAnnual, "2023", "99,000"),
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)
	require.NotNil(t, rec.MedianAnnual)
	assert.Equal(t, 74000.0, *rec.MedianAnnual)
}

func TestNormalizeAnomalyBoundaries(t *testing.T) {
	tests := []struct {
		median    string
		anomalous bool
	}{
		{"19,999", true},
		{"20,000", false},
		{"300,000", false},
		{"300,001", true},
	}

	for _, tt := range tests {
		t.Run(tt.median, func(t *testing.T) {
			report := reportWith(Wages{
				BLSAreaWagesList: []AreaWage{
					metroRow("34940", RateAnnual, "2023", tt.median),
				},
			})
			rec, err := Normalize(report, "29-1141", "34940")
			require.NoError(t, err)
			assert.Equal(t, tt.anomalous, rec.Anomalous)
		})
	}
}

func TestNormalizeSuppressedValuesDegradeToNull(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			{
				Area:     "34940",
				RateType: RateAnnual,
				Year:     "2023",
				Median:   "74,000",
				Pct10:    "*",
				Pct25:    "",
				Pct75:    "N/A",
				Pct90:    "98,500",
			},
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)
	assert.Nil(t, rec.P10)
	assert.Nil(t, rec.P25)
	assert.Nil(t, rec.P75)
	require.NotNil(t, rec.P90)
	assert.Equal(t, 98500.0, *rec.P90)
	assert.False(t, rec.Anomalous)
}

func TestNormalizeMeanFallsBackToMedian(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			metroRow("34940", RateAnnual, "2023", "74,000"),
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)
	require.NotNil(t, rec.MeanAnnual)
	assert.Equal(t, 74000.0, *rec.MeanAnnual)
}

func TestNormalizeStateAndNationalDefaults(t *testing.T) {
	t.Run("state rows without explicit code", func(t *testing.T) {
		report := reportWith(Wages{
			StateWagesList: []AreaWage{
				{RateType: RateAnnual, Year: "2023", Median: "70,000"},
			},
		})
		rec, err := Normalize(report, "29-1141", "")
		require.NoError(t, err)
		assert.Equal(t, "FL", rec.AreaCode)
		assert.Equal(t, "State Average", rec.AreaName)
	})

	t.Run("national rows only", func(t *testing.T) {
		report := reportWith(Wages{
			NationalWagesList: []AreaWage{
				{RateType: RateAnnual, Year: "2023", Median: "72,000"},
			},
		})
		rec, err := Normalize(report, "29-1141", "")
		require.NoError(t, err)
		assert.Equal(t, "US", rec.AreaCode)
		assert.Equal(t, "National Average", rec.AreaName)
	})

	t.Run("no rows at any scope", func(t *testing.T) {
		rec, err := Normalize(reportWith(Wages{}), "29-1141", "")
		assert.ErrorIs(t, err, ErrNoWageData)
		assert.Nil(t, rec)
	})
}

func TestNormalizeYearFallback(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			metroRow("34940", RateAnnual, "n/a", "74,000"),
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)
	assert.Equal(t, 2023, rec.Year)
}

func TestNormalizeEmploymentAlwaysNull(t *testing.T) {
	report := reportWith(Wages{
		BLSAreaWagesList: []AreaWage{
			metroRow("34940", RateAnnual, "2023", "74,000"),
		},
	})

	rec, err := Normalize(report, "29-1141", "34940")
	require.NoError(t, err)
	assert.Nil(t, rec.Employment)
	assert.Equal(t, "CareerOneStop", rec.Source)
	assert.Equal(t, "Registered Nurses", rec.SOCTitle)
}

package wage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatesOrdering(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "port st lucie expands through all variants",
			raw:  "Port St. Lucie, FL",
			want: []string{
				"Port St. Lucie, FL",
				"Port St Lucie, FL",
				"Port Saint Lucie, FL",
				"St. Lucie, FL",
				"Lucie, FL",
				"FL",
			},
		},
		{
			name: "multi word metro keeps short form",
			raw:  "Miami-Fort Lauderdale-West Palm Beach, FL",
			want: []string{
				"Miami-Fort Lauderdale-West Palm Beach, FL",
				"Palm Beach, FL",
				"Beach, FL",
				"FL",
			},
		},
		{
			name: "bare st gets saint variant",
			raw:  "St Petersburg, FL",
			want: []string{
				"St Petersburg, FL",
				"Saint Petersburg, FL",
				"Petersburg, FL",
				"FL",
			},
		},
		{
			name: "single word location",
			raw:  "Orlando",
			want: []string{"Orlando", "FL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.raw, "FL"))
		})
	}
}

func TestCandidatesInvariants(t *testing.T) {
	inputs := []string{
		"Port St. Lucie, FL",
		"Tampa-St. Petersburg-Clearwater, FL",
		"Naples",
		"A B C D E, FL",
	}

	for _, raw := range inputs {
		got := Candidates(raw, "FL")

		assert.NotEmpty(t, got)
		assert.Equal(t, raw, got[0], "first candidate must be the raw input")
		assert.Equal(t, "FL", got[len(got)-1], "fallback must be last")

		seen := make(map[string]bool)
		for _, c := range got {
			assert.False(t, seen[c], "duplicate candidate %q for input %q", c, raw)
			seen[c] = true
		}
	}
}

func TestCandidatesEmptyAndFallbackInput(t *testing.T) {
	assert.Equal(t, []string{"FL"}, Candidates("", "FL"))
	assert.Equal(t, []string{"FL"}, Candidates("FL", "FL"))
	assert.Equal(t, []string{"FL"}, Candidates("   ", "FL"))
}

func TestNormalizeAreaCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "34940", "34940"},
		{"strips non digits", "MT3494", "03494"},
		{"keeps last five of longer codes", "0034940", "34940"},
		{"pads short codes", "123", "00123"},
		{"empty input", "", "00000"},
		{"mixed alphanumeric", "CBSA-45300", "45300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAreaCode(tt.in))
		})
	}
}

func TestNormalizeAreaCodeIdempotent(t *testing.T) {
	inputs := []string{"34940", "MT3494", "0034940", "1", ""}
	for _, in := range inputs {
		once := NormalizeAreaCode(in)
		assert.Equal(t, once, NormalizeAreaCode(once), "normalizing %q twice must be stable", in)
		assert.Len(t, once, 5)
	}
}

package wage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupationDetailUnmarshalBothShapes(t *testing.T) {
	object := `{"OccupationDetail":{"OnetTitle":"Registered Nurses","Wages":{"BLSAreaWagesList":[{"Area":"34940","RateType":"Annual"}]}}}`
	array := `{"OccupationDetail":[{"OnetTitle":"Registered Nurses","Wages":{"BLSAreaWagesList":[{"Area":"34940","RateType":"Annual"}]}}]}`

	for name, payload := range map[string]string{"object": object, "array": array} {
		t.Run(name, func(t *testing.T) {
			var report Report
			require.NoError(t, json.Unmarshal([]byte(payload), &report))
			assert.Equal(t, "Registered Nurses", report.OccupationDetail.OnetTitle)
			require.Len(t, report.OccupationDetail.Wages.BLSAreaWagesList, 1)
			assert.Equal(t, "34940", report.OccupationDetail.Wages.BLSAreaWagesList[0].Area)
		})
	}

	t.Run("empty array", func(t *testing.T) {
		var report Report
		require.NoError(t, json.Unmarshal([]byte(`{"OccupationDetail":[]}`), &report))
		assert.True(t, report.OccupationDetail.Wages.Empty())
	})
}

func TestFormatSOC(t *testing.T) {
	assert.Equal(t, "29-1141.00", FormatSOC("29-1141"))
	assert.Equal(t, "29-1141.00", FormatSOC("29-1141.00"))
}

func TestClientFetchWage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "29-1141.00", r.URL.Query().Get("keyword"))

		switch r.URL.Query().Get("location") {
		case "Naples, FL":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"OccupationDetail":{"OnetTitle":"Registered Nurses","Wages":{"BLSAreaWagesList":[{"Area":"34940","RateType":"Annual","Year":"2023","Median":"74,000"}]}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{
		BaseURL: srv.URL,
		UserID:  "test-user",
		Token:   "test-token",
	})

	t.Run("success", func(t *testing.T) {
		report, status, err := c.FetchWage(context.Background(), "29-1141", "Naples, FL")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		require.NotNil(t, report)
		assert.Len(t, report.OccupationDetail.Wages.BLSAreaWagesList, 1)
	})

	t.Run("non-2xx is a recorded non-match, not an error", func(t *testing.T) {
		report, status, err := c.FetchWage(context.Background(), "29-1141", "Nowhere, FL")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Nil(t, report)
	})
}

func TestClientFetchWageTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(ClientOptions{BaseURL: srv.URL, UserID: "u", Token: "t"})

	report, _, err := c.FetchWage(context.Background(), "29-1141", "Naples, FL")
	assert.Error(t, err)
	assert.Nil(t, report)
}

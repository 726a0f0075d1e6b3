package institutions

// IPEDSRecord is one institution row from an IPEDS dump. FIPS fields are
// probed in priority order: CountyFIPS from the API, then FIPS, then a code
// derived from the county name.
type IPEDSRecord struct {
	Name       string `json:"name"`
	CountyName string `json:"county_name"`
	CountyFIPS string `json:"county_fips"`
	FIPS       string `json:"fips"`
	Year       int    `json:"year"`
}

// DerivedFIPS returns the best available county FIPS for a record, or ""
// when none of the fields resolve.
func (r IPEDSRecord) DerivedFIPS() string {
	if len(r.CountyFIPS) == 5 {
		return r.CountyFIPS
	}
	if len(r.FIPS) == 5 {
		return r.FIPS
	}
	if r.CountyName != "" {
		if fips, ok := CountyNameToFIPS(r.CountyName); ok {
			return fips
		}
	}
	return ""
}

// CountByFIPS counts institutions per county FIPS code. Records that resolve
// to no county are skipped.
func CountByFIPS(recs []IPEDSRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range recs {
		if fips := r.DerivedFIPS(); fips != "" {
			counts[fips]++
		}
	}
	return counts
}

// CountByMSA counts institutions per MSA via a FIPS→MSA name crosswalk.
func CountByMSA(recs []IPEDSRecord, fipsToMSA map[string]string) map[string]int {
	counts := make(map[string]int)
	for _, r := range recs {
		fips := r.DerivedFIPS()
		if fips == "" {
			continue
		}
		if msa, ok := fipsToMSA[fips]; ok && msa != "" {
			counts[msa]++
		}
	}
	return counts
}

// Aggregate builds the full precomputed aggregation written by the ETL and
// served by the institutions endpoint.
func Aggregate(recs []IPEDSRecord, fipsToMSA map[string]string) Aggregation {
	agg := Aggregation{
		MSACounts:    CountByMSA(recs, fipsToMSA),
		CountyCounts: CountByFIPS(recs),
		Total:        len(recs),
	}
	if len(recs) > 0 {
		agg.Year = recs[0].Year
	}
	return agg
}

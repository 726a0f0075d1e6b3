package institutions

// fipsToMSA maps Florida county FIPS codes to the metro area the county
// belongs to, per the OMB CBSA delineations. Non-metro counties are absent.
var fipsToMSA = map[string]string{
	// Cape Coral-Fort Myers
	"12071": "Cape Coral-Fort Myers, FL",
	// Crestview-Fort Walton Beach-Destin
	"12091": "Crestview-Fort Walton Beach-Destin, FL",
	"12131": "Crestview-Fort Walton Beach-Destin, FL",
	// Deltona-Daytona Beach-Ormond Beach
	"12127": "Deltona-Daytona Beach-Ormond Beach, FL",
	"12035": "Deltona-Daytona Beach-Ormond Beach, FL",
	// Gainesville
	"12001": "Gainesville, FL",
	"12041": "Gainesville, FL",
	"12075": "Gainesville, FL",
	// Homosassa Springs
	"12017": "Homosassa Springs, FL",
	// Jacksonville
	"12031": "Jacksonville, FL",
	"12019": "Jacksonville, FL",
	"12089": "Jacksonville, FL",
	"12109": "Jacksonville, FL",
	"12003": "Jacksonville, FL",
	// Lakeland-Winter Haven
	"12105": "Lakeland-Winter Haven, FL",
	// Miami-Fort Lauderdale-Pompano Beach
	"12086": "Miami-Fort Lauderdale-Pompano Beach, FL",
	"12011": "Miami-Fort Lauderdale-Pompano Beach, FL",
	"12099": "Miami-Fort Lauderdale-Pompano Beach, FL",
	// Naples-Marco Island
	"12021": "Naples-Marco Island, FL",
	// North Port-Sarasota-Bradenton
	"12115": "North Port-Sarasota-Bradenton, FL",
	"12081": "North Port-Sarasota-Bradenton, FL",
	// Ocala
	"12083": "Ocala, FL",
	// Orlando-Kissimmee-Sanford
	"12095": "Orlando-Kissimmee-Sanford, FL",
	"12097": "Orlando-Kissimmee-Sanford, FL",
	"12117": "Orlando-Kissimmee-Sanford, FL",
	"12069": "Orlando-Kissimmee-Sanford, FL",
	// Palm Bay-Melbourne-Titusville
	"12009": "Palm Bay-Melbourne-Titusville, FL",
	// Panama City
	"12005": "Panama City, FL",
	"12045": "Panama City, FL",
	// Pensacola-Ferry Pass-Brent
	"12033": "Pensacola-Ferry Pass-Brent, FL",
	"12113": "Pensacola-Ferry Pass-Brent, FL",
	// Port St. Lucie
	"12111": "Port St. Lucie, FL",
	"12085": "Port St. Lucie, FL",
	// Punta Gorda
	"12015": "Punta Gorda, FL",
	// Sebastian-Vero Beach
	"12061": "Sebastian-Vero Beach, FL",
	// Sebring
	"12055": "Sebring, FL",
	// Tallahassee
	"12073": "Tallahassee, FL",
	"12039": "Tallahassee, FL",
	"12065": "Tallahassee, FL",
	"12129": "Tallahassee, FL",
	// Tampa-St. Petersburg-Clearwater
	"12057": "Tampa-St. Petersburg-Clearwater, FL",
	"12103": "Tampa-St. Petersburg-Clearwater, FL",
	"12101": "Tampa-St. Petersburg-Clearwater, FL",
	"12053": "Tampa-St. Petersburg-Clearwater, FL",
	// The Villages
	"12119": "The Villages, FL",
}

// DefaultFIPSToMSA returns a copy of the built-in county-to-MSA crosswalk.
func DefaultFIPSToMSA() map[string]string {
	m := make(map[string]string, len(fipsToMSA))
	for k, v := range fipsToMSA {
		m[k] = v
	}
	return m
}

// MSAForFIPS resolves the metro area a county belongs to, if any.
func MSAForFIPS(fips string) (string, bool) {
	msa, ok := fipsToMSA[fips]
	return msa, ok
}

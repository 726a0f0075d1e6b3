package institutions

// SOCCIPMapping links one SOC occupation to the instructional program codes
// that feed it.
type SOCCIPMapping struct {
	SOC       string   `json:"soc"`
	SOCTitle  string   `json:"socTitle"`
	CIPs      []string `json:"cips"`
	CIPTitles []string `json:"cipTitles"`
}

// socCIPMap covers the healthcare and skilled-trade occupations the overlay
// supports. Curated by hand from the CIP 2020 crosswalk.
var socCIPMap = map[string]SOCCIPMapping{
	"29-1141": {
		SOC:       "29-1141",
		SOCTitle:  "Registered Nurses",
		CIPs:      []string{"51.3801", "51.3803"},
		CIPTitles: []string{"Registered Nursing/Registered Nurse", "Adult Health Nurse/Nursing"},
	},
	"29-2032": {
		SOC:       "29-2032",
		SOCTitle:  "Diagnostic Medical Sonographers",
		CIPs:      []string{"51.0910"},
		CIPTitles: []string{"Diagnostic Medical Sonography/Sonographer and Ultrasound Technician"},
	},
	"31-9092": {
		SOC:       "31-9092",
		SOCTitle:  "Medical Assistants",
		CIPs:      []string{"51.0801", "51.0805"},
		CIPTitles: []string{"Medical/Clinical Assistant", "Pharmacy Technician/Assistant"},
	},
	"29-2012": {
		SOC:       "29-2012",
		SOCTitle:  "Diagnostic Medical Technologists",
		CIPs:      []string{"51.1004"},
		CIPTitles: []string{"Clinical/Medical Laboratory Technician"},
	},
	"29-2055": {
		SOC:       "29-2055",
		SOCTitle:  "Surgical Technologists",
		CIPs:      []string{"51.0909"},
		CIPTitles: []string{"Surgical Technology/Technologist"},
	},
	"47-2111": {
		SOC:       "47-2111",
		SOCTitle:  "Electricians",
		CIPs:      []string{"46.0302"},
		CIPTitles: []string{"Electrician"},
	},
	"49-9021": {
		SOC:       "49-9021",
		SOCTitle:  "Heating, Air Conditioning, and Refrigeration Mechanics",
		CIPs:      []string{"47.0201"},
		CIPTitles: []string{"Heating, Air Conditioning, Ventilation and Refrigeration Maintenance Technology/Technician"},
	},
	"51-4121": {
		SOC:       "51-4121",
		SOCTitle:  "Welders, Cutters, Solderers, and Brazers",
		CIPs:      []string{"48.0508"},
		CIPTitles: []string{"Welding Technology/Welder"},
	},
	"31-9096": {
		SOC:       "31-9096",
		SOCTitle:  "Veterinary Assistants and Laboratory Animal Caretakers",
		CIPs:      []string{"51.0808"},
		CIPTitles: []string{"Veterinary/Animal Health Technology/Technician and Veterinary Assistant"},
	},
}

// MappingForSOC returns the CIP mapping for a SOC code.
func MappingForSOC(soc string) (SOCCIPMapping, bool) {
	m, ok := socCIPMap[soc]
	return m, ok
}

// MappedSOCs lists the SOC codes with a CIP mapping.
func MappedSOCs() []string {
	socs := make([]string, 0, len(socCIPMap))
	for soc := range socCIPMap {
		socs = append(socs, soc)
	}
	return socs
}

// InstitutionType classifies a directory entry.
type InstitutionType string

const (
	TypeCommunityCollege InstitutionType = "community_college"
	TypeStateCollege     InstitutionType = "state_college"
	TypeUniversity       InstitutionType = "university"
	TypeTechnicalCollege InstitutionType = "technical_college"
	TypePrivate          InstitutionType = "private"
)

// Institution is one entry of the static Florida directory.
type Institution struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	City     string          `json:"city"`
	Lat      float64         `json:"lat"`
	Lon      float64         `json:"lon"`
	Website  string          `json:"website,omitempty"`
	Programs []string        `json:"programs"`
	Type     InstitutionType `json:"type"`
}

// directory is the hand-curated set of Florida public institutions with
// healthcare and technical programs. Program lists come from the state
// DOE inventory; coordinates are main-campus locations.
var directory = []Institution{
	{ID: "mdc", Name: "Miami Dade College", City: "Miami", Lat: 25.7791, Lon: -80.2094,
		Website: "https://www.mdc.edu", Type: TypeCommunityCollege,
		Programs: []string{"51.3801", "51.3803", "51.0910", "51.0801", "51.1004", "51.0909", "51.0808"}},
	{ID: "broward", Name: "Broward College", City: "Fort Lauderdale", Lat: 26.1224, Lon: -80.1373,
		Website: "https://www.broward.edu", Type: TypeCommunityCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.0909"}},
	{ID: "palmbeach", Name: "Palm Beach State College", City: "Lake Worth", Lat: 26.6169, Lon: -80.0707,
		Website: "https://www.palmbeachstate.edu", Type: TypeCommunityCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.0909"}},
	{ID: "hcc", Name: "Hillsborough Community College", City: "Tampa", Lat: 27.9945, Lon: -82.3024,
		Website: "https://www.hccfl.edu", Type: TypeCommunityCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.1004", "51.0909", "46.0302", "47.0201", "48.0508"}},
	{ID: "spc", Name: "St. Petersburg College", City: "St. Petersburg", Lat: 27.7781, Lon: -82.6403,
		Website: "https://www.spcollege.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.0909", "51.0808"}},
	{ID: "valencia", Name: "Valencia College", City: "Orlando", Lat: 28.5924, Lon: -81.2048,
		Website: "https://www.valenciacollege.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.1004", "51.0909"}},
	{ID: "seminole", Name: "Seminole State College", City: "Sanford", Lat: 28.7391, Lon: -81.2962,
		Website: "https://www.seminolestate.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0801", "51.0909"}},
	{ID: "fscj", Name: "Florida State College at Jacksonville", City: "Jacksonville", Lat: 30.2656, Lon: -81.5158,
		Website: "https://www.fscj.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.1004", "51.0909", "46.0302", "47.0201", "48.0508"}},
	{ID: "lorenzo-walker", Name: "Lorenzo Walker Technical College", City: "Naples", Lat: 26.1873, Lon: -81.7248,
		Website: "https://www.lwtech.edu", Type: TypeTechnicalCollege,
		Programs: []string{"51.0801", "46.0302", "47.0201", "48.0508"}},
	{ID: "fswc", Name: "Florida SouthWestern State College", City: "Fort Myers", Lat: 26.5628, Lon: -81.8725,
		Website: "https://www.fsw.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.0909", "51.0808"}},
	{ID: "tcc", Name: "Tallahassee Community College", City: "Tallahassee", Lat: 30.4515, Lon: -84.2533,
		Website: "https://www.tcc.fl.edu", Type: TypeCommunityCollege,
		Programs: []string{"51.3801", "51.0801", "51.0909", "46.0302", "47.0201"}},
	{ID: "psc", Name: "Pensacola State College", City: "Pensacola", Lat: 30.4382, Lon: -87.1892,
		Website: "https://www.pensacolastate.edu", Type: TypeCommunityCollege,
		Programs: []string{"51.3801", "51.0801", "51.0909", "46.0302", "47.0201", "48.0508"}},
	{ID: "sfcollege", Name: "Santa Fe College", City: "Gainesville", Lat: 29.7104, Lon: -82.3640,
		Website: "https://www.sfcollege.edu", Type: TypeCommunityCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.1004", "51.0909", "51.0808"}},
	{ID: "polk", Name: "Polk State College", City: "Lakeland", Lat: 28.0367, Lon: -81.9498,
		Website: "https://www.polk.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0801", "51.0909", "46.0302", "47.0201"}},
	{ID: "daytonastate", Name: "Daytona State College", City: "Daytona Beach", Lat: 29.1901, Lon: -81.0574,
		Website: "https://www.daytonastate.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.0909", "46.0302", "47.0201"}},
	{ID: "scf", Name: "State College of Florida", City: "Bradenton", Lat: 27.4830, Lon: -82.5748,
		Website: "https://www.scf.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0801", "51.0909"}},
	{ID: "irsc", Name: "Indian River State College", City: "Fort Pierce", Lat: 27.4248, Lon: -80.3431,
		Website: "https://www.irsc.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0801", "51.0909", "46.0302", "47.0201", "48.0508"}},
	{ID: "charlotte-tech", Name: "Charlotte Technical College", City: "Port Charlotte", Lat: 26.9766, Lon: -82.1101,
		Website: "https://www.charlottetechnicalcollege.edu", Type: TypeTechnicalCollege,
		Programs: []string{"51.0801", "46.0302", "47.0201", "48.0508", "51.0808"}},
	{ID: "gulf-coast", Name: "Gulf Coast State College", City: "Panama City", Lat: 30.1588, Lon: -85.6602,
		Website: "https://www.gulfcoast.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0801", "51.0909", "46.0302", "47.0201"}},
	{ID: "cf", Name: "College of Central Florida", City: "Ocala", Lat: 29.1872, Lon: -82.0548,
		Website: "https://www.cf.edu", Type: TypeStateCollege,
		Programs: []string{"51.3801", "51.0910", "51.0801", "51.0909", "46.0302"}},
}

// Directory returns the full static institution list.
func Directory() []Institution {
	return directory
}

// FindByCIP returns the institutions offering at least one of the given CIP
// programs, in directory order.
func FindByCIP(cips []string) []Institution {
	wanted := make(map[string]bool, len(cips))
	for _, c := range cips {
		wanted[c] = true
	}
	var out []Institution
	for _, inst := range directory {
		for _, p := range inst.Programs {
			if wanted[p] {
				out = append(out, inst)
				break
			}
		}
	}
	return out
}

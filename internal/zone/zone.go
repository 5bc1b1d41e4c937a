package zone

import "strings"

// Zone is a European electricity bidding zone: a market area over which a
// single day-ahead price applies per time slot. EIC is the zone's Energy
// Identification Code used by the transparency platform API.
type Zone struct {
	Code string
	EIC  string
}

var zones = []Zone{
	{"DE", "10Y1001A1001A82H"},
	{"AT", "10YAT-APG------L"},
	{"BE", "10YBE----------2"},
	{"DK1", "10YDK-1--------W"},
	{"DK2", "10YDK-2--------M"},
	{"FI", "10YFI-1--------U"},
	{"FR", "10YFR-RTE------C"},
	{"IT-North", "10Y1001A1001A73I"},
	{"NL", "10YNL----------L"},
	{"NO1", "10YNO-1--------2"},
	{"NO2", "10YNO-2--------T"},
	{"NO3", "10YNO-3--------J"},
	{"NO4", "10YNO-4--------9"},
	{"NO5", "10Y1001A1001A48H"},
	{"PL", "10YPL-AREA-----S"},
	{"ES", "10YES-REE------0"},
	{"SE1", "10Y1001A1001A44P"},
	{"SE2", "10Y1001A1001A45N"},
	{"SE3", "10Y1001A1001A46L"},
	{"SE4", "10Y1001A1001A47J"},
	{"CH", "10YCH-SWISSGRIDZ"},
	{"GB", "10YGB----------A"},
}

// All returns every supported bidding zone.
func All() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// FromCode resolves a short zone code (case-insensitive) to a Zone.
func FromCode(code string) (Zone, bool) {
	norm := strings.ToUpper(strings.TrimSpace(code))
	if norm == "ITNORTH" {
		norm = "IT-NORTH"
	}
	for _, z := range zones {
		if strings.ToUpper(z.Code) == norm {
			return z, true
		}
	}
	return Zone{}, false
}

func (z Zone) String() string { return z.Code }

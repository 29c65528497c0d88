package repository

import "strings"

// Coords is a lat/lon pair.
type Coords struct {
	Lat float64
	Lon float64
}

// regionCoords maps known region dataset names to representative
// coordinates for the climate and satellite agents.
var regionCoords = map[string]Coords{
	"Kerala_Kottayam":        {9.59, 76.52},
	"Kerala_Ernakulam":       {9.98, 76.28},
	"Kerala_Thrissur":        {10.52, 76.21},
	"Kerala_Palakkad":        {10.78, 76.65},
	"Maharashtra_Pune":       {18.52, 73.86},
	"Maharashtra_Nashik":     {20.00, 73.79},
	"TamilNadu_Coimbatore":   {11.02, 76.96},
	"TamilNadu_Thanjavur":    {10.79, 79.14},
	"Karnataka_Mysore":       {12.30, 76.64},
	"AndhraPradesh_Chittoor": {13.22, 79.10},
}

// stateCoords is the substring fallback when a region name has no
// exact entry.
var stateCoords = []struct {
	substr string
	c      Coords
}{
	{"kerala", Coords{10.85, 76.27}},
	{"maharashtra", Coords{19.75, 75.71}},
	{"tamil", Coords{11.12, 78.65}},
	{"karnataka", Coords{15.32, 75.71}},
	{"andhra", Coords{15.91, 79.74}},
}

// defaultCoords is central Kerala, the platform's primary deployment.
var defaultCoords = Coords{10.85, 76.27}

// ResolveRegionCoords maps a region dataset name to coordinates. Exact
// matches win, then a case-insensitive state substring, then Kerala.
func ResolveRegionCoords(region string) Coords {
	if c, ok := regionCoords[region]; ok {
		return c
	}
	lower := strings.ToLower(region)
	for _, sc := range stateCoords {
		if strings.Contains(lower, sc.substr) {
			return sc.c
		}
	}
	return defaultCoords
}

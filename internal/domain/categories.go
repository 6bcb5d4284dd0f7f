package domain

import "strings"

// DefaultHumidity is substituted for unrecognized humidity descriptors.
var DefaultHumidity = Range{Min: 40, Max: 70}

// humidityRanges maps humidity descriptors to relative-humidity bounds.
// Read-only after init.
var humidityRanges = map[string]Range{
	"Low":         {Min: 20, Max: 40},
	"Low-Medium":  {Min: 30, Max: 50},
	"Medium":      {Min: 40, Max: 70},
	"Medium-High": {Min: 50, Max: 80},
	"High":        {Min: 70, Max: 90},
	"Very High":   {Min: 80, Max: 95},
}

// lightCategories maps light descriptors to output categories. Read-only
// after init.
var lightCategories = map[string]LightCategory{
	"Very Bright (Full Sun)": LightFullSun,
	"Bright":                 LightBright,
	"Partial Shade/Bright":   LightPartialShade,
	"Partial Shade":          LightPartialShade,
}

// MapHumidity resolves a humidity descriptor. The second result is false when
// the descriptor is unknown and DefaultHumidity was returned.
func MapHumidity(desc string) (Range, bool) {
	r, ok := humidityRanges[strings.TrimSpace(desc)]
	if !ok {
		return DefaultHumidity, false
	}
	return r, true
}

// MapLight resolves a light descriptor. Unknown descriptors, including the
// empty string, resolve to LightBright with ok=false. Callers must not treat
// that as a warning.
func MapLight(desc string) (LightCategory, bool) {
	c, ok := lightCategories[strings.TrimSpace(desc)]
	if !ok {
		return LightBright, false
	}
	return c, true
}

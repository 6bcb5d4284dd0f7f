package domain

import (
	"fmt"
	"strings"
)

// Source column names.
const (
	FieldCrop           = "Crop"
	FieldScientificName = "Scientific Name"
	FieldTempMin        = "Temp_Min_C"
	FieldTempMax        = "Temp_Max_C"
	FieldHumidity       = "Humidity"
	FieldLight          = "Light"
	FieldKcIni          = "Kc_ini"
	FieldKcMid          = "Kc_mid"
	FieldKcLate         = "Kc_late"
	FieldStageIniDays   = "Stage_ini_days"
	FieldStageDevDays   = "Stage_dev_days"
	FieldStageMidDays   = "Stage_mid_days"
	FieldStageLateDays  = "Stage_late_days"
)

// ExpectedFields lists the source columns in their canonical header order.
var ExpectedFields = []string{
	FieldCrop,
	FieldScientificName,
	FieldTempMin,
	FieldTempMax,
	FieldHumidity,
	FieldLight,
	FieldKcIni,
	FieldKcMid,
	FieldKcLate,
	FieldStageIniDays,
	FieldStageDevDays,
	FieldStageMidDays,
	FieldStageLateDays,
}

// CropRecord is one source row. Fields holds the raw cell text keyed by header
// name; a column missing from a short row is absent from the map.
type CropRecord struct {
	Line   int // 1-based line in the source, header is line 1
	Fields map[string]string
}

// Value returns the trimmed value of a field and whether it was present.
func (r CropRecord) Value(field string) (string, bool) {
	v, ok := r.Fields[field]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Blank reports whether a field is absent or whitespace-only.
func (r CropRecord) Blank(field string) bool {
	v, _ := r.Value(field)
	return v == ""
}

// Name is the crop's common name, or "" when the Crop cell is blank.
func (r CropRecord) Name() string {
	v, _ := r.Value(FieldCrop)
	return v
}

// Label identifies the record in reports and errors. Rows without a crop name
// fall back to their line number.
func (r CropRecord) Label() string {
	if name := r.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("(line %d)", r.Line)
}

// Dataset is the in-memory result of loading a source: the header as read and
// every data row in source order.
type Dataset struct {
	Header  []string
	Records []CropRecord
}

// LightCategory is the normalized light requirement of a crop.
type LightCategory string

const (
	LightFullSun      LightCategory = "Full Sun"
	LightBright       LightCategory = "Bright"
	LightPartialShade LightCategory = "Partial Shade"
)

// StageName labels one of the four growth stages.
type StageName string

const (
	StageInitial     StageName = "Initial"
	StageDevelopment StageName = "Development"
	StageMid         StageName = "Mid"
	StageLate        StageName = "Late"
)

// StageOrder is the fixed progression every profile follows.
var StageOrder = [4]StageName{StageInitial, StageDevelopment, StageMid, StageLate}

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Stage holds the environmental targets for one growth stage.
type Stage struct {
	Name            StageName `json:"name"`
	Duration        int       `json:"duration"`
	Kc              float64   `json:"kc"`
	TempMin         int       `json:"tempMin"`
	TempMax         int       `json:"tempMax"`
	HumidityMin     int       `json:"humidityMin"`
	HumidityMax     int       `json:"humidityMax"`
	SoilMoistureMin int       `json:"soilMoistureMin"`
	SoilMoistureMax int       `json:"soilMoistureMax"`
}

// CropProfile is the normalized output for one crop. Field order is the JSON
// key order.
type CropProfile struct {
	Name           string        `json:"name"`
	ScientificName string        `json:"scientificName"`
	Light          LightCategory `json:"light"`
	Stages         []Stage       `json:"stages"`
}

// Stage returns the profile's stage with the given name.
func (p CropProfile) Stage(name StageName) (Stage, bool) {
	for _, s := range p.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

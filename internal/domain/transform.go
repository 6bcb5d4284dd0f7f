package domain

import (
	"errors"
	"math"
	"strconv"
)

// stagePlan fixes, per stage, the source column holding its duration and its
// soil-moisture bounds.
var stagePlan = [4]struct {
	name          StageName
	durationField string
	soilMoisture  Range
}{
	{StageInitial, FieldStageIniDays, Range{Min: 40, Max: 100}},
	{StageDevelopment, FieldStageDevDays, Range{Min: 50, Max: 100}},
	{StageMid, FieldStageMidDays, Range{Min: 60, Max: 100}},
	{StageLate, FieldStageLateDays, Range{Min: 40, Max: 80}},
}

var errNotFinite = errors.New("value is not a finite number")

// BuildCropProfile derives the four-stage profile for one record. Unknown
// humidity descriptors are replaced by DefaultHumidity and returned as
// warnings. Unknown light descriptors fall back to LightBright without a
// warning. Any unparsable numeric field yields a *FieldParseError.
func BuildCropProfile(rec CropRecord) (CropProfile, []UnknownCategoryWarning, error) {
	var warnings []UnknownCategoryWarning

	humidityDesc, _ := rec.Value(FieldHumidity)
	humidity, ok := MapHumidity(humidityDesc)
	if !ok {
		warnings = append(warnings, UnknownCategoryWarning{
			Crop:  rec.Label(),
			Field: FieldHumidity,
			Value: humidityDesc,
		})
	}

	lightDesc, _ := rec.Value(FieldLight)
	light, _ := MapLight(lightDesc)

	p := fieldParser{rec: rec}
	tempMin := p.int(FieldTempMin)
	tempMax := p.int(FieldTempMax)
	kcIni := p.float(FieldKcIni)
	kcMid := p.float(FieldKcMid)
	kcLate := p.float(FieldKcLate)

	kc := map[StageName]float64{
		StageInitial:     kcIni,
		StageDevelopment: (kcIni + kcMid) / 2,
		StageMid:         kcMid,
		StageLate:        kcLate,
	}

	stages := make([]Stage, 0, len(stagePlan))
	for _, plan := range stagePlan {
		stages = append(stages, Stage{
			Name:            plan.name,
			Duration:        p.int(plan.durationField),
			Kc:              kc[plan.name],
			TempMin:         tempMin,
			TempMax:         tempMax,
			HumidityMin:     humidity.Min,
			HumidityMax:     humidity.Max,
			SoilMoistureMin: plan.soilMoisture.Min,
			SoilMoistureMax: plan.soilMoisture.Max,
		})
	}
	if p.err != nil {
		return CropProfile{}, nil, p.err
	}

	scientific, _ := rec.Value(FieldScientificName)
	return CropProfile{
		Name:           rec.Name(),
		ScientificName: scientific,
		Light:          light,
		Stages:         stages,
	}, warnings, nil
}

// fieldParser parses numeric fields of a record and keeps the first failure.
type fieldParser struct {
	rec CropRecord
	err error
}

func (p *fieldParser) int(field string) int {
	raw, ok := p.value(field)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(field, raw, err)
		return 0
	}
	return v
}

func (p *fieldParser) float(field string) float64 {
	raw, ok := p.value(field)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errNotFinite
	}
	if err != nil {
		p.fail(field, raw, err)
		return 0
	}
	return v
}

// value returns the trimmed field, or false once an earlier field has failed.
func (p *fieldParser) value(field string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, _ := p.rec.Value(field)
	return v, true
}

func (p *fieldParser) fail(field, raw string, err error) {
	p.err = &FieldParseError{
		Crop:  p.rec.Label(),
		Field: field,
		Value: raw,
		Line:  p.rec.Line,
		Err:   err,
	}
}

// Package domain models crop agronomic parameters and the growth-stage
// profiles derived from them.
//
// # Data Source
//
// Crop parameters arrive as a comma-separated table, one crop per row, with a
// header naming every column:
//
//	Crop, Scientific Name, Temp_Min_C, Temp_Max_C, Humidity, Light,
//	Kc_ini, Kc_mid, Kc_late,
//	Stage_ini_days, Stage_dev_days, Stage_mid_days, Stage_late_days
//
// Each row becomes a [CropRecord]: an unordered name → raw text mapping in
// which any value may be absent or blank. Records are never mutated.
//
// # Agronomic Conventions
//
// Crop coefficient (Kc):
//
//	Dimensionless multiplier applied to reference evapotranspiration. The
//	table supplies three values (initial, mid-season, late-season). The
//	development stage has no column of its own; it takes the mean of the
//	initial and mid-season values because Kc rises linearly across it.
//
// Growth stages:
//
//	Initial → Development → Mid → Late. Order is meaningful and is always
//	preserved in the output. Durations are whole days.
//
// Humidity descriptors (relative humidity, percent):
//
//	Low 20–40 | Low-Medium 30–50 | Medium 40–70 | Medium-High 50–80
//	High 70–90 | Very High 80–95
//	Anything else maps to 40–70 and produces an [UnknownCategoryWarning].
//
// Light descriptors:
//
//	"Very Bright (Full Sun)" → Full Sun
//	"Bright"                 → Bright
//	"Partial Shade/Bright"   → Partial Shade
//	"Partial Shade"          → Partial Shade
//	Anything else maps to Bright silently. Unlike humidity, no warning is
//	recorded for an unknown light descriptor.
//
// Soil moisture (volumetric, percent) is not part of the source table. Each
// stage carries fixed bounds: Initial 40–100, Development 50–100,
// Mid 60–100, Late 40–80.
//
// # Errors
//
// [SourceReadError], [FieldParseError] and [SinkWriteError] are fatal to a run.
// A single unparsable numeric field aborts the whole batch; rows are never
// skipped in isolation.
package domain

package domain

// CompletenessReport lists the fields that are absent or blank in at least one
// record. Fields keeps the report order; Affected maps each flagged field to
// the crops missing it, in row order.
type CompletenessReport struct {
	Fields   []string
	Affected map[string][]string
}

// Complete reports whether no field was flagged.
func (r CompletenessReport) Complete() bool {
	return len(r.Fields) == 0
}

// AuditCompleteness checks every header column, plus any expected column the
// header lacks, across all records. It never alters or drops a record.
func AuditCompleteness(ds Dataset) CompletenessReport {
	report := CompletenessReport{Affected: map[string][]string{}}

	for _, field := range auditFields(ds.Header) {
		var crops []string
		for _, rec := range ds.Records {
			if rec.Blank(field) {
				crops = append(crops, rec.Label())
			}
		}
		if len(crops) > 0 {
			report.Fields = append(report.Fields, field)
			report.Affected[field] = crops
		}
	}
	return report
}

// auditFields returns the header columns followed by expected columns that
// are missing from it, without duplicates.
func auditFields(header []string) []string {
	seen := make(map[string]bool, len(header)+len(ExpectedFields))
	fields := make([]string, 0, len(header)+len(ExpectedFields))
	for _, h := range header {
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		fields = append(fields, h)
	}
	for _, f := range ExpectedFields {
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}

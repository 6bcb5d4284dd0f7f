// Package verify checks a written profile collection against the source rows
// it was derived from. Checks are grouped into phases that each pass or fail
// independently.
package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/couchcryptid/crop-profile-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

// kcTolerance bounds the difference between the Development kc and the mean
// of the Initial and Mid kc.
const kcTolerance = 1e-9

// Phase tracks pass/fail for one group of checks.
type Phase struct {
	Name   string
	Errors []string
}

func (p *Phase) errorf(format string, args ...any) {
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

// Passed reports whether the phase recorded no errors.
func (p *Phase) Passed() bool { return len(p.Errors) == 0 }

// Result holds every phase of one verification.
type Result struct {
	Phases   []*Phase
	Records  int
	Profiles int
}

// Passed reports whether every phase passed.
func (r Result) Passed() bool {
	for _, p := range r.Phases {
		if !p.Passed() {
			return false
		}
	}
	return true
}

// LoadProfiles decodes a profile collection written by the jsonfile adapter.
func LoadProfiles(fs afero.Fs, path string) ([]domain.CropProfile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var profiles []domain.CropProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles %s: %w", path, err)
	}
	return profiles, nil
}

// Check runs all phases.
func Check(records []domain.CropRecord, profiles []domain.CropProfile) Result {
	return Result{
		Phases: []*Phase{
			checkRowParity(records, profiles),
			checkStageModel(profiles),
			checkRederivation(records, profiles),
		},
		Records:  len(records),
		Profiles: len(profiles),
	}
}

// checkRowParity requires one profile per record, in the same order.
func checkRowParity(records []domain.CropRecord, profiles []domain.CropProfile) *Phase {
	p := &Phase{Name: "Row parity (CSV -> JSON)"}
	if len(records) != len(profiles) {
		p.errorf("count: %d CSV rows, %d profiles", len(records), len(profiles))
	}
	for i := range min(len(records), len(profiles)) {
		if got, want := profiles[i].Name, records[i].Name(); got != want {
			p.errorf("position %d (line %d): expected %q, got %q", i+1, records[i].Line, want, got)
		}
	}
	return p
}

// checkStageModel validates the structural rules every profile follows.
func checkStageModel(profiles []domain.CropProfile) *Phase {
	p := &Phase{Name: "Stage model"}
	for i := range profiles {
		checkProfile(p, &profiles[i])
	}
	return p
}

func checkProfile(p *Phase, profile *domain.CropProfile) {
	pf := func(format string, args ...any) {
		p.errorf("%s: "+format, append([]any{profile.Name}, args...)...)
	}

	switch profile.Light {
	case domain.LightFullSun, domain.LightBright, domain.LightPartialShade:
	default:
		pf("invalid light %q", profile.Light)
	}

	if len(profile.Stages) != len(domain.StageOrder) {
		pf("expected %d stages, got %d", len(domain.StageOrder), len(profile.Stages))
		return
	}
	for i, want := range domain.StageOrder {
		if got := profile.Stages[i].Name; got != want {
			pf("stage %d: expected %s, got %s", i+1, want, got)
		}
	}

	ini, dev, mid := profile.Stages[0].Kc, profile.Stages[1].Kc, profile.Stages[2].Kc
	if mean := (ini + mid) / 2; math.Abs(dev-mean) > kcTolerance {
		pf("development kc %g is not the mean %g of initial and mid", dev, mean)
	}

	for _, s := range profile.Stages {
		checkBounds(pf, s.Name, "temp", s.TempMin, s.TempMax, false)
		checkBounds(pf, s.Name, "humidity", s.HumidityMin, s.HumidityMax, true)
		checkBounds(pf, s.Name, "soil moisture", s.SoilMoistureMin, s.SoilMoistureMax, true)
		if s.Duration <= 0 {
			pf("%s: duration %d is not positive", s.Name, s.Duration)
		}
		if s.Kc <= 0 {
			pf("%s: kc %g is not positive", s.Name, s.Kc)
		}
	}
}

// checkBounds requires lo <= hi, and for percentages both within 0-100.
// Temperatures may be negative, so they only get the ordering check.
func checkBounds(pf func(string, ...any), stage domain.StageName, label string, lo, hi int, percent bool) {
	if lo > hi {
		pf("%s: %s min %d exceeds max %d", stage, label, lo, hi)
	}
	if percent && (lo < 0 || hi > 100) {
		pf("%s: %s %d-%d outside 0-100", stage, label, lo, hi)
	}
}

// checkRederivation rebuilds each profile from its record and requires an
// exact match.
func checkRederivation(records []domain.CropRecord, profiles []domain.CropProfile) *Phase {
	p := &Phase{Name: "Re-derivation from CSV"}
	for i := range min(len(records), len(profiles)) {
		want, _, err := domain.BuildCropProfile(records[i])
		if err != nil {
			p.errorf("line %d: %v", records[i].Line, err)
			continue
		}
		if diff := cmp.Diff(want, profiles[i]); diff != "" {
			p.errorf("%s (line %d): profile differs (-derived +written):\n%s", records[i].Label(), records[i].Line, diff)
		}
	}
	return p
}

// Print writes a PASS/FAIL table followed by numbered errors for each failed
// phase.
func (r Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Crop Profile Integrity Validation ===")
	fmt.Fprintln(w)
	for _, p := range r.Phases {
		status := "PASS"
		if !p.Passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.Errors))
		}
		fmt.Fprintf(w, "  %-32s %s\n", p.Name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d CSV rows, %d JSON profiles\n", r.Records, r.Profiles)

	for _, p := range r.Phases {
		if p.Passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.Name)
		for i, e := range p.Errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if r.Passed() {
		fmt.Fprintln(w, "\nAll validations passed.")
		return
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
}

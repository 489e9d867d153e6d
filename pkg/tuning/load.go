package tuning

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadFromFiles starts from Defaults and overlays the drift rule CSV and the
// combat tuning workbook when paths are given. Either path may be empty.
func LoadFromFiles(driftCSV, combatXLSX string) (Params, error) {
	p := Defaults()
	if driftCSV != "" {
		rules, err := loadDriftRulesCSV(driftCSV)
		if err != nil {
			return p, err
		}
		if len(rules) > 0 {
			p.Drift.Rules = rules
		}
	}
	if combatXLSX != "" {
		if err := loadCombatXLSX(combatXLSX, &p.Combat); err != nil {
			return p, err
		}
	}
	return p, nil
}

func loadDriftRulesCSV(path string) ([]DriftRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return nil, err
	}

	// Build normalized header map
	norm := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, "\ufeff") // BOM
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, "-", "")
		s = strings.ReplaceAll(s, "_", "")
		return s
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[norm(h)] = i
	}

	// Accept multiple aliases
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cEvent := findAny("event", "event_type", "weather")
	cTrait := findAny("gate_trait", "trait", "gate")
	cThr := findAny("threshold", "gate_threshold")
	cIncl := findAny("inclusive_above", "above_inclusive", "inclusive")
	cATd := findAny("above_trait_delta", "abovetrait")
	cAHd := findAny("above_health_delta", "abovehealth")
	cBTd := findAny("below_trait_delta", "belowtrait")
	cBHd := findAny("below_health_delta", "belowhealth")

	if cEvent == -1 || cTrait == -1 || cThr == -1 {
		return nil, fmt.Errorf("drift rules CSV missing required columns. Found headers: %v\nNeed at least: event, gate_trait, threshold", head)
	}

	var rules []DriftRule
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		// guard against short rows
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return rec[idx]
		}
		getF := func(idx int) float64 {
			v, _ := strconv.ParseFloat(strings.TrimSpace(get(idx)), 64)
			return v
		}

		event := strings.ToLower(strings.TrimSpace(get(cEvent)))
		if event == "" {
			continue // skip invalid rows
		}
		incl := false
		switch strings.ToLower(strings.TrimSpace(get(cIncl))) {
		case "1", "true", "yes":
			incl = true
		}
		rules = append(rules, DriftRule{
			Event:            event,
			GateTrait:        strings.ToLower(strings.TrimSpace(get(cTrait))),
			Threshold:        getF(cThr),
			InclusiveAbove:   incl,
			AboveTraitDelta:  getF(cATd),
			AboveHealthDelta: getF(cAHd),
			BelowTraitDelta:  getF(cBTd),
			BelowHealthDelta: getF(cBHd),
		})
	}
	return rules, nil
}

// loadCombatXLSX reads key/value overrides from the first sheet: column A is
// the knob name, column B the value. Unknown names are ignored.
func loadCombatXLSX(path string, c *CombatParams) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return err
	}
	target := map[string]*float64{
		"attack_scale":      &c.AttackScale,
		"exploit_gate":      &c.ExploitGate,
		"exploit_scale":     &c.ExploitScale,
		"defense_scale":     &c.DefenseScale,
		"env_mod_min":       &c.EnvModMin,
		"env_mod_max":       &c.EnvModMax,
		"base_damage_unit":  &c.BaseDamageUnit,
		"mutation_chance":   &c.MutationChance,
		"extinction_chance": &c.ExtinctionChance,
		"failure_health":    &c.FailureHealth,
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(row[0]))
		if dst, ok := target[key]; ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64); err == nil {
				*dst = v
			}
		}
	}
	return nil
}

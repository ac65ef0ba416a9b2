package dataset

import (
	"fmt"
	"strconv"

	"github.com/tmessick/prepball/internal/model"
)

var multiplierHeader = []string{
	"Transition", "Kind", "Cohort_Size", "Avg_Volatility",
	"Stat", "Ratio", "Sample_Size", "Std_Dev",
}

// WriteMultipliers persists one tier's multiplier table in long format: one
// row per (transition, stat). Cohort-level fields repeat on every row of the
// transition, which keeps the file greppable and spreadsheet-friendly.
func WriteMultipliers(path string, table *model.MultiplierTable) error {
	rows := [][]string{multiplierHeader}
	for _, name := range sortedTransitionNames(table) {
		tr := table.Transitions[name]
		for _, code := range sortedStatCodes(tr.Stats) {
			m := tr.Stats[code]
			rows = append(rows, []string{
				tr.Name,
				string(tr.Kind),
				strconv.Itoa(tr.CohortSize),
				strconv.FormatFloat(tr.AvgVolatility, 'f', 4, 64),
				code,
				strconv.FormatFloat(m.Ratio, 'f', 4, 64),
				strconv.Itoa(m.SampleSize),
				strconv.FormatFloat(m.StdDev, 'f', 4, 64),
			})
		}
	}
	return writeAll(path, rows)
}

// LoadMultipliers reads a long-format multiplier file back into a table.
func LoadMultipliers(path string, tier model.Tier) (*model.MultiplierTable, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	idx := headerIndex(rows[0])
	for _, h := range multiplierHeader {
		if _, ok := idx[h]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, h)
		}
	}

	table := &model.MultiplierTable{Tier: tier, Transitions: make(map[string]model.Transition)}
	for n, row := range rows[1:] {
		line := n + 2
		name := row[idx["Transition"]]
		tr, ok := table.Transitions[name]
		if !ok {
			cohort, err := strconv.Atoi(row[idx["Cohort_Size"]])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad cohort size: %w", path, line, err)
			}
			vol, err := strconv.ParseFloat(row[idx["Avg_Volatility"]], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad volatility: %w", path, line, err)
			}
			tr = model.Transition{
				Name:          name,
				Kind:          model.TransitionKind(row[idx["Kind"]]),
				CohortSize:    cohort,
				AvgVolatility: vol,
				Stats:         make(map[string]model.StatMultiplier),
			}
		}
		ratio, err := strconv.ParseFloat(row[idx["Ratio"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad ratio: %w", path, line, err)
		}
		sample, err := strconv.Atoi(row[idx["Sample_Size"]])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad sample size: %w", path, line, err)
		}
		std, err := strconv.ParseFloat(row[idx["Std_Dev"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad std dev: %w", path, line, err)
		}
		tr.Stats[row[idx["Stat"]]] = model.StatMultiplier{Ratio: ratio, SampleSize: sample, StdDev: std}
		table.Transitions[name] = tr
	}
	return table, nil
}

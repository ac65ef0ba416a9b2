package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// WriteProfiles persists generic replacement-level profiles. Stat columns
// follow schema order so repeated runs diff cleanly.
func WriteProfiles(path string, profiles []model.GenericProfile, columns []string, cfg *config.Config) error {
	header := append([]string{"Name", "Role", "Tier", "Class", "Tenure"}, columns...)
	rows := [][]string{header}
	for i := range profiles {
		p := &profiles[i]
		row := []string{
			p.Name,
			string(p.Role),
			strconv.FormatFloat(p.Tier, 'f', 1, 64),
			string(p.Class),
			strconv.Itoa(p.Tenure),
		}
		for _, code := range columns {
			v, ok := p.Stats[code]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatStat(cfg, code, v))
		}
		rows = append(rows, row)
	}
	return writeAll(path, rows)
}

// LoadProfiles reads a profiles file back, returning the profiles and the
// stat codes present in the file.
func LoadProfiles(path string, cfg *config.Config) ([]model.GenericProfile, []string, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}
	idx := headerIndex(rows[0])
	for _, required := range []string{"Name", "Role", "Tier", "Class", "Tenure"} {
		if _, ok := idx[required]; !ok {
			return nil, nil, fmt.Errorf("%s: missing required column %q", path, required)
		}
	}

	var columns []string
	for _, d := range cfg.Schema {
		if _, ok := idx[d.Code]; ok {
			columns = append(columns, d.Code)
		}
	}

	profiles := make([]model.GenericProfile, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		tier, err := strconv.ParseFloat(row[idx["Tier"]], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: bad tier: %w", path, line, err)
		}
		tenure, err := strconv.Atoi(row[idx["Tenure"]])
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: bad tenure: %w", path, line, err)
		}
		p := model.GenericProfile{
			Name:   row[idx["Name"]],
			Role:   model.Role(row[idx["Role"]]),
			Tier:   tier,
			Class:  model.Class(row[idx["Class"]]),
			Tenure: tenure,
			Stats:  make(map[string]float64, len(columns)),
		}
		for _, code := range columns {
			raw := strings.TrimSpace(row[idx[code]])
			if raw == "" {
				continue
			}
			v, err := parseStat(cfg, code, raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%s:%d: bad %s value: %w", path, line, code, err)
			}
			p.Stats[code] = v
		}
		profiles = append(profiles, p)
	}
	return profiles, columns, nil
}

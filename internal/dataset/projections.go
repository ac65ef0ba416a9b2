package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// WriteProjections persists a projected roster with its provenance and role
// annotations. Innings columns go back to fractional-thirds notation on the
// way out, matching the raw source convention.
func WriteProjections(path string, players []model.ProjectedPlayerRecord, columns []string, cfg *config.Config) error {
	header := append([]string{
		"Name", "Team", "Season", "Class", "Tenure", "Elite",
		"Method", "Synthetic", "Backfill_Elite", "Tier_Label",
		"Is_Batter", "Is_Pitcher",
	}, columns...)
	rows := [][]string{header}
	for i := range players {
		p := &players[i]
		row := []string{
			p.Name,
			p.Team,
			strconv.Itoa(p.Season),
			string(p.Class),
			strconv.Itoa(p.Tenure),
			strconv.FormatBool(p.Elite),
			p.Method,
			strconv.FormatBool(p.Synthetic),
			strconv.FormatBool(p.BackfillElite),
			strconv.FormatFloat(p.TierLabel, 'f', 1, 64),
			strconv.FormatBool(p.IsBatter),
			strconv.FormatBool(p.IsPitcher),
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

// LoadProjections reads a projected roster back, returning the records and
// the stat codes present in the file.
func LoadProjections(path string, cfg *config.Config) ([]model.ProjectedPlayerRecord, []string, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}
	idx := headerIndex(rows[0])
	required := []string{
		"Name", "Team", "Season", "Class", "Tenure",
		"Method", "Synthetic", "Is_Batter", "Is_Pitcher",
	}
	for _, h := range required {
		if _, ok := idx[h]; !ok {
			return nil, nil, fmt.Errorf("%s: missing required column %q", path, h)
		}
	}

	var columns []string
	for _, d := range cfg.Schema {
		if _, ok := idx[d.Code]; ok {
			columns = append(columns, d.Code)
		}
	}

	players := make([]model.ProjectedPlayerRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		season, err := strconv.Atoi(row[idx["Season"]])
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: bad season: %w", path, line, err)
		}
		tenure, err := strconv.Atoi(row[idx["Tenure"]])
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: bad tenure: %w", path, line, err)
		}
		p := model.ProjectedPlayerRecord{
			PlayerSeasonRecord: model.PlayerSeasonRecord{
				Name:   row[idx["Name"]],
				Team:   row[idx["Team"]],
				Season: season,
				Class:  model.Class(row[idx["Class"]]),
				Tenure: tenure,
			},
			Method:    row[idx["Method"]],
			Synthetic: parseBool(row[idx["Synthetic"]]),
			IsBatter:  parseBool(row[idx["Is_Batter"]]),
			IsPitcher: parseBool(row[idx["Is_Pitcher"]]),
		}
		if col, ok := idx["Elite"]; ok {
			p.Elite = parseBool(row[col])
		}
		if col, ok := idx["Backfill_Elite"]; ok {
			p.BackfillElite = parseBool(row[col])
		}
		if col, ok := idx["Tier_Label"]; ok && strings.TrimSpace(row[col]) != "" {
			if v, err := strconv.ParseFloat(row[col], 64); err == nil {
				p.TierLabel = v
			}
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
			p.SetStat(code, v)
		}
		players = append(players, p)
	}
	return players, columns, nil
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}

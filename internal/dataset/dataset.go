// Package dataset reads and writes the pipeline's CSV artifacts: the raw
// player-season history, game schedules, and every intermediate table the
// stages persist between runs. All files are header-driven; column order in
// the source never matters, only the header names do.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// Reserved (non-stat) player history columns.
const (
	colName   = "Name"
	colTeam   = "Team"
	colSeason = "Season"
	colClass  = "Class"
)

// LoadPlayers reads the player-season history. It returns the parsed records
// plus the list of stat codes actually present in the file, in schema order.
// Stat columns not in the schema are skipped with a warning; schema stats not
// in the file are simply absent from every record. A record missing any of
// the reserved columns is a hard error.
func LoadPlayers(path string, cfg *config.Config, log *logrus.Logger) ([]model.PlayerSeasonRecord, []string, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}

	header := rows[0]
	idx := headerIndex(header)
	for _, required := range []string{colName, colTeam, colSeason, colClass} {
		if _, ok := idx[required]; !ok {
			return nil, nil, fmt.Errorf("%s: missing required column %q", path, required)
		}
	}

	reserved := map[string]struct{}{colName: {}, colTeam: {}, colSeason: {}, colClass: {}}
	present := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, ok := reserved[h]; ok {
			continue
		}
		if _, ok := cfg.Stat(h); !ok {
			if log != nil {
				log.WithFields(logrus.Fields{"file": path, "column": h}).
					Warn("unknown stat column, skipping")
			}
			continue
		}
		present[h] = i
	}

	// Stat codes in schema order keeps every downstream artifact stable.
	var columns []string
	for _, d := range cfg.Schema {
		if _, ok := present[d.Code]; ok {
			columns = append(columns, d.Code)
		}
	}

	records := make([]model.PlayerSeasonRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		season, err := strconv.Atoi(strings.TrimSpace(row[idx[colSeason]]))
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: bad season %q: %w", path, line, row[idx[colSeason]], err)
		}
		rec := model.PlayerSeasonRecord{
			Name:   strings.TrimSpace(row[idx[colName]]),
			Team:   strings.TrimSpace(row[idx[colTeam]]),
			Season: season,
			Class:  model.ParseClass(row[idx[colClass]]),
		}
		rec.Elite = cfg.IsElite(rec.Team)
		for code, col := range present {
			raw := strings.TrimSpace(row[col])
			if raw == "" || raw == "-" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				if log != nil {
					log.WithFields(logrus.Fields{"file": path, "line": line, "column": code, "value": raw}).
						Warn("unparseable stat value, skipping cell")
				}
				continue
			}
			if def, _ := cfg.Stat(code); def.Innings {
				v = model.InningsFromNotation(v)
			}
			rec.SetStat(code, v)
		}
		records = append(records, rec)
	}
	return records, columns, nil
}

// LoadSchedule reads a schedule file with Date, Home, and Away columns.
func LoadSchedule(path string) ([]model.ScheduledGame, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	idx := headerIndex(rows[0])
	for _, required := range []string{"Date", "Home", "Away"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, required)
		}
	}
	games := make([]model.ScheduledGame, 0, len(rows)-1)
	for _, row := range rows[1:] {
		games = append(games, model.ScheduledGame{
			Date: strings.TrimSpace(row[idx["Date"]]),
			Home: strings.TrimSpace(row[idx["Home"]]),
			Away: strings.TrimSpace(row[idx["Away"]]),
		})
	}
	return games, nil
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

func writeAll(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func formatStat(cfg *config.Config, code string, v float64) string {
	if def, ok := cfg.Stat(code); ok && def.Innings {
		v = model.InningsToNotation(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedTransitionNames(table *model.MultiplierTable) []string {
	names := make([]string, 0, len(table.Transitions))
	for name := range table.Transitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedStatCodes(stats map[string]model.StatMultiplier) []string {
	codes := make([]string, 0, len(stats))
	for code := range stats {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func parseStat(cfg *config.Config, code, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if def, ok := cfg.Stat(code); ok && def.Innings {
		v = model.InningsFromNotation(v)
	}
	return v, nil
}

package dataset

import (
	"fmt"
	"strconv"

	"github.com/tmessick/prepball/internal/model"
)

var strengthHeader = []string{
	"Team", "Power_Index", "Offense_Index", "Pitching_Index",
	"Offense_Raw", "Pitching_Raw",
	"Batters_Counted", "Pitchers_Counted",
	"Top_Hitter", "Top_Hitter_RC", "Ace_Pitcher", "Ace_Score",
	"Total_Roster", "Returning_Players", "Avg_Tenure", "Composition",
}

// WriteStrength persists the league power table.
func WriteStrength(path string, teams []model.TeamStrength) error {
	rows := [][]string{strengthHeader}
	for i := range teams {
		t := &teams[i]
		rows = append(rows, []string{
			t.Team,
			strconv.FormatFloat(t.PowerIndex, 'f', 2, 64),
			strconv.FormatFloat(t.OffenseIndex, 'f', 2, 64),
			strconv.FormatFloat(t.PitchingIndex, 'f', 2, 64),
			strconv.FormatFloat(t.OffenseRaw, 'f', 3, 64),
			strconv.FormatFloat(t.PitchingRaw, 'f', 3, 64),
			strconv.Itoa(t.BattersCounted),
			strconv.Itoa(t.PitchersCounted),
			t.TopHitter,
			strconv.FormatFloat(t.TopHitterRC, 'f', 3, 64),
			t.AcePitcher,
			strconv.FormatFloat(t.AceScore, 'f', 3, 64),
			strconv.Itoa(t.TotalRoster),
			strconv.Itoa(t.ReturningPlayers),
			strconv.FormatFloat(t.AvgTenure, 'f', 2, 64),
			t.CompositionLabel,
		})
	}
	return writeAll(path, rows)
}

// LoadStrength reads a league power table back. Only the columns the
// simulator needs are required; diagnostics are restored when present.
func LoadStrength(path string) ([]model.TeamStrength, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	idx := headerIndex(rows[0])
	for _, required := range []string{"Team", "Offense_Raw", "Pitching_Raw"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, required)
		}
	}

	num := func(row []string, col string) float64 {
		i, ok := idx[col]
		if !ok {
			return 0
		}
		v, _ := strconv.ParseFloat(row[i], 64)
		return v
	}

	teams := make([]model.TeamStrength, 0, len(rows)-1)
	for _, row := range rows[1:] {
		t := model.TeamStrength{
			Team:          row[idx["Team"]],
			OffenseRaw:    num(row, "Offense_Raw"),
			PitchingRaw:   num(row, "Pitching_Raw"),
			OffenseIndex:  num(row, "Offense_Index"),
			PitchingIndex: num(row, "Pitching_Index"),
			PowerIndex:    num(row, "Power_Index"),
			AvgTenure:     num(row, "Avg_Tenure"),
		}
		if col, ok := idx["Composition"]; ok {
			t.CompositionLabel = row[col]
		}
		teams = append(teams, t)
	}
	return teams, nil
}

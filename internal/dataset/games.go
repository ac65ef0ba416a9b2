package dataset

import (
	"strconv"

	"github.com/tmessick/prepball/internal/model"
)

var gamesHeader = []string{
	"Date", "Opponent", "Site", "Win_Pct", "Avg_Runs_For", "Avg_Runs_Vs",
	"Confidence", "Analysis",
}

// WriteGameResults persists a simulated schedule from the focus team's
// perspective, one row per game.
func WriteGameResults(path string, games []model.GameResult) error {
	rows := [][]string{gamesHeader}
	for i := range games {
		g := &games[i]
		site := "Away"
		if g.HomeGame {
			site = "Home"
		}
		rows = append(rows, []string{
			g.Date,
			g.Opponent,
			site,
			strconv.FormatFloat(g.WinPct, 'f', 3, 64),
			strconv.FormatFloat(g.AvgRunsFor, 'f', 2, 64),
			strconv.FormatFloat(g.AvgRunsVs, 'f', 2, 64),
			g.Confidence,
			g.Analysis,
		})
	}
	return writeAll(path, rows)
}

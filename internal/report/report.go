// Package report renders the pipeline's outputs as console tables.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tmessick/prepball/internal/backtest"
	"github.com/tmessick/prepball/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintPowerRankings prints the league power table to stdout.
// If focusTeam is non-empty, that team's row is marked with ">".
func PrintPowerRankings(teams []model.TeamStrength, focusTeam string) {
	PrintPowerRankingsTo(os.Stdout, teams, focusTeam)
}

// PrintPowerRankingsTo writes the power table to the provided writer.
func PrintPowerRankingsTo(w io.Writer, teams []model.TeamStrength, focusTeam string) {
	table := newTable(w)
	table.Header(
		" ", "RK", "TEAM", "POWER", "OFF", "PIT",
		"BAT", "ARM", "TOP HITTER", "ACE", "RET", "AVG_TEN", "SHAPE",
	)

	for i, t := range teams {
		marker := " "
		if focusTeam != "" && t.Team == focusTeam {
			marker = ">"
		}
		shape := "—"
		if t.CompositionLabel != "" {
			shape = t.CompositionLabel
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			t.Team,
			fmt.Sprintf("%.1f", t.PowerIndex),
			fmt.Sprintf("%.1f", t.OffenseIndex),
			fmt.Sprintf("%.1f", t.PitchingIndex),
			strconv.Itoa(t.BattersCounted),
			strconv.Itoa(t.PitchersCounted),
			t.TopHitter,
			t.AcePitcher,
			strconv.Itoa(t.ReturningPlayers),
			fmt.Sprintf("%.1f", t.AvgTenure),
			shape,
		)
	}
	table.Render()
}

// PrintSchedule prints simulated game results to stdout.
func PrintSchedule(results []model.GameResult, season model.SeasonResult, focusTeam string) {
	PrintScheduleTo(os.Stdout, results, season, focusTeam)
}

// PrintScheduleTo writes the simulated schedule and its season summary line.
func PrintScheduleTo(w io.Writer, results []model.GameResult, season model.SeasonResult, focusTeam string) {
	table := newTable(w)
	table.Header("DATE", "OPPONENT", "SITE", "WIN%", "RF", "RA", "CALL", "ANALYSIS")

	for _, g := range results {
		site := "@"
		if g.HomeGame {
			site = "vs"
		}
		table.Append(
			g.Date,
			g.Opponent,
			site,
			fmt.Sprintf("%.0f%%", g.WinPct*100),
			fmt.Sprintf("%.1f", g.AvgRunsFor),
			fmt.Sprintf("%.1f", g.AvgRunsVs),
			g.Confidence,
			g.Analysis,
		)
	}
	table.Render()

	fmt.Fprintf(w, "\n%s: %.1f projected wins over %d games (floor %.0f, ceiling %.0f, %d trials)\n",
		focusTeam, season.MeanWins, season.Games, season.FloorWins, season.CeilingWins, season.Trials)
}

// PrintBacktest prints a backtest report to stdout.
func PrintBacktest(rep backtest.Report) {
	PrintBacktestTo(os.Stdout, rep)
}

// PrintBacktestTo writes the per-stat accuracy table, the team rank
// comparison, and the player-matching summary line.
func PrintBacktestTo(w io.Writer, rep backtest.Report) {
	stats := newTable(w)
	stats.Header("STAT", "PLAYERS", "MEAN ERR", "MAE")
	for _, s := range rep.Stats {
		stats.Append(
			s.Stat,
			strconv.Itoa(s.Players),
			fmt.Sprintf("%+.2f", s.MeanError),
			fmt.Sprintf("%.2f", s.MAE),
		)
	}
	stats.Render()

	fmt.Fprintln(w)
	teams := newTable(w)
	teams.Header("TEAM", "PROJ RK", "ACT RK", "MOVE", "PROJ PWR", "ACT PWR")
	for _, d := range rep.Teams {
		teams.Append(
			d.Team,
			strconv.Itoa(d.ProjectedRank),
			strconv.Itoa(d.ActualRank),
			fmt.Sprintf("%+d", d.ProjectedRank-d.ActualRank),
			fmt.Sprintf("%.1f", d.ProjectedPower),
			fmt.Sprintf("%.1f", d.ActualPower),
		)
	}
	teams.Render()

	fmt.Fprintf(w, "\nSeason %d: %d players matched, %d projected without actuals, %d actuals never projected\n",
		rep.Season, rep.Matched, rep.Unmatched, rep.Missed)
}

// PrintProjectionSummary prints the per-team projected roster counts.
func PrintProjectionSummary(w io.Writer, players []model.ProjectedPlayerRecord) {
	type counts struct {
		returning int
		synthetic int
	}
	byTeam := make(map[string]*counts)
	var order []string
	for i := range players {
		p := &players[i]
		c, ok := byTeam[p.Team]
		if !ok {
			c = &counts{}
			byTeam[p.Team] = c
			order = append(order, p.Team)
		}
		if p.Synthetic {
			c.synthetic++
		} else {
			c.returning++
		}
	}

	table := newTable(w)
	table.Header("TEAM", "RETURNING", "BACKFILL", "TOTAL")
	for _, team := range order {
		c := byTeam[team]
		table.Append(
			team,
			strconv.Itoa(c.returning),
			strconv.Itoa(c.synthetic),
			strconv.Itoa(c.returning+c.synthetic),
		)
	}
	table.Render()
}

package storage

import (
	"fmt"

	"github.com/tmessick/prepball/internal/model"
)

// SaveTeamStrength replaces one season's power table in a transaction.
func (db *DB) SaveTeamStrength(season int, teams []model.TeamStrength) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO team_strength(
			season, team, power_index, offense_index, pitching_index,
			offense_raw, pitching_raw, batters_counted, pitchers_counted,
			top_hitter, top_hitter_rc, ace_pitcher, ace_score,
			total_roster, returning_players, avg_tenure, composition
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range teams {
		t := &teams[i]
		_, err = stmt.Exec(
			season, t.Team, t.PowerIndex, t.OffenseIndex, t.PitchingIndex,
			t.OffenseRaw, t.PitchingRaw, t.BattersCounted, t.PitchersCounted,
			t.TopHitter, t.TopHitterRC, t.AcePitcher, t.AceScore,
			t.TotalRoster, t.ReturningPlayers, t.AvgTenure, t.CompositionLabel,
		)
		if err != nil {
			return fmt.Errorf("insert team_strength for %s: %w", t.Team, err)
		}
	}
	return tx.Commit()
}

// ListTeamStrength returns one season's power table ordered by power index.
func (db *DB) ListTeamStrength(season int) ([]model.TeamStrength, error) {
	rows, err := db.conn.Query(`
		SELECT team, power_index, offense_index, pitching_index,
		       offense_raw, pitching_raw, batters_counted, pitchers_counted,
		       top_hitter, top_hitter_rc, ace_pitcher, ace_score,
		       total_roster, returning_players, avg_tenure, composition
		FROM team_strength WHERE season = ?
		ORDER BY power_index DESC, team`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []model.TeamStrength
	for rows.Next() {
		var t model.TeamStrength
		err = rows.Scan(
			&t.Team, &t.PowerIndex, &t.OffenseIndex, &t.PitchingIndex,
			&t.OffenseRaw, &t.PitchingRaw, &t.BattersCounted, &t.PitchersCounted,
			&t.TopHitter, &t.TopHitterRC, &t.AcePitcher, &t.AceScore,
			&t.TotalRoster, &t.ReturningPlayers, &t.AvgTenure, &t.CompositionLabel,
		)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// SaveGameResults archives a simulated schedule and its season summary.
func (db *DB) SaveGameResults(season int, focus string, games []model.GameResult, summary model.SeasonResult) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_results(
			season, focus_team, game_date, opponent, home_game,
			win_pct, avg_runs_for, avg_runs_vs, confidence, analysis
		) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range games {
		g := &games[i]
		_, err = stmt.Exec(
			season, focus, g.Date, g.Opponent, boolInt(g.HomeGame),
			g.WinPct, g.AvgRunsFor, g.AvgRunsVs, g.Confidence, g.Analysis,
		)
		if err != nil {
			return fmt.Errorf("insert game_results vs %s: %w", g.Opponent, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO season_results(
			season, focus_team, games, trials, mean_wins, floor_wins, ceiling_wins
		) VALUES (?,?,?,?,?,?,?)`,
		season, focus, summary.Games, summary.Trials,
		summary.MeanWins, summary.FloorWins, summary.CeilingWins,
	)
	if err != nil {
		return fmt.Errorf("insert season_results for %s: %w", focus, err)
	}
	return tx.Commit()
}

// GetGameResults returns an archived simulation, ordered by game date.
func (db *DB) GetGameResults(season int, focus string) ([]model.GameResult, model.SeasonResult, error) {
	rows, err := db.conn.Query(`
		SELECT game_date, opponent, home_game, win_pct,
		       avg_runs_for, avg_runs_vs, confidence, analysis
		FROM game_results WHERE season = ? AND focus_team = ?
		ORDER BY game_date, opponent`, season, focus)
	if err != nil {
		return nil, model.SeasonResult{}, err
	}
	defer rows.Close()

	var games []model.GameResult
	for rows.Next() {
		var g model.GameResult
		var home int
		err = rows.Scan(&g.Date, &g.Opponent, &home, &g.WinPct,
			&g.AvgRunsFor, &g.AvgRunsVs, &g.Confidence, &g.Analysis)
		if err != nil {
			return nil, model.SeasonResult{}, err
		}
		g.HomeGame = home != 0
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, model.SeasonResult{}, err
	}

	var summary model.SeasonResult
	err = db.conn.QueryRow(`
		SELECT games, trials, mean_wins, floor_wins, ceiling_wins
		FROM season_results WHERE season = ? AND focus_team = ?`,
		season, focus,
	).Scan(&summary.Games, &summary.Trials, &summary.MeanWins,
		&summary.FloorWins, &summary.CeilingWins)
	if err != nil {
		// Games without a summary row still return; callers see zeroes.
		return games, model.SeasonResult{}, nil
	}
	return games, summary, nil
}

// ListSimulatedSeasons returns the (season, focus team) pairs in the archive.
func (db *DB) ListSimulatedSeasons() ([]int, []string, error) {
	rows, err := db.conn.Query(`
		SELECT season, focus_team FROM season_results
		ORDER BY season DESC, focus_team`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var seasons []int
	var teams []string
	for rows.Next() {
		var s int
		var t string
		if err := rows.Scan(&s, &t); err != nil {
			return nil, nil, err
		}
		seasons = append(seasons, s)
		teams = append(teams, t)
	}
	return seasons, teams, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

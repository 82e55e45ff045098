package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gto-rangelab/server/parser"
	"gto-rangelab/server/solver"
	"gto-rangelab/server/spots"
)

//go:embed schema.sql
var schema embed.FS

// ErrNotFound reports a delete or lookup that matched no row.
var ErrNotFound = errors.New("not found")

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

/* -----------------------------
   Hands
------------------------------*/

// HandRow is a stored hand: the parsed form plus its row id.
type HandRow struct {
	ID   string
	Hand *parser.Hand
}

// HandFilter narrows hand queries. Zero values mean no filter.
type HandFilter struct {
	Position    string
	ThreeBetPot bool
	From        time.Time
	To          time.Time
}

func (f HandFilter) where(args *[]any) string {
	out := ""
	if f.Position != "" {
		*args = append(*args, f.Position)
		out += fmt.Sprintf(" AND hero_position = $%d", len(*args))
	}
	if f.ThreeBetPot {
		out += " AND three_bet_oppo = TRUE"
	}
	if !f.From.IsZero() {
		*args = append(*args, f.From)
		out += fmt.Sprintf(" AND played_at >= $%d", len(*args))
	}
	if !f.To.IsZero() {
		*args = append(*args, f.To)
		out += fmt.Sprintf(" AND played_at <= $%d", len(*args))
	}
	return out
}

// InsertHand stores a parsed hand. Duplicate uploads of the same hand id
// are dropped; the second return reports whether a row was written.
func (db *DB) InsertHand(ctx context.Context, player string, h *parser.Hand) (string, bool, error) {
	actions, err := json.Marshal(h.Actions)
	if err != nil {
		return "", false, err
	}
	var id string
	err = db.QueryRow(ctx, `
        INSERT INTO hands(
            player_name, hand_id_raw, played_at, stakes_sb, stakes_bb, table_name,
            hero_position, hero_hole_cards, board, pot_total, rake,
            hero_result, hero_won, went_to_showdown,
            vpip, pfr, three_bet, three_bet_oppo,
            actions_json, raw_text
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        ON CONFLICT (player_name, hand_id_raw) DO NOTHING
        RETURNING id
    `, player, h.HandID, h.PlayedAt, h.StakesSB, h.StakesBB, h.TableName,
		h.HeroPosition, h.HeroHoleCards, h.Board, h.PotTotal, h.Rake,
		h.HeroResult, h.HeroWon, h.WentToShowdown,
		h.VPIP, h.PFR, h.ThreeBet, h.ThreeBetOppo,
		actions, h.RawText).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	return id, err == nil, err
}

const handCols = `id, hand_id_raw, played_at, stakes_sb, stakes_bb, table_name,
        hero_position, hero_hole_cards, board, pot_total, rake,
        hero_result, hero_won, went_to_showdown,
        vpip, pfr, three_bet, three_bet_oppo, actions_json, raw_text`

func scanHand(row pgx.Row) (*HandRow, error) {
	h := &parser.Hand{}
	out := &HandRow{Hand: h}
	var actions []byte
	var raw *string
	err := row.Scan(&out.ID, &h.HandID, &h.PlayedAt, &h.StakesSB, &h.StakesBB, &h.TableName,
		&h.HeroPosition, &h.HeroHoleCards, &h.Board, &h.PotTotal, &h.Rake,
		&h.HeroResult, &h.HeroWon, &h.WentToShowdown,
		&h.VPIP, &h.PFR, &h.ThreeBet, &h.ThreeBetOppo, &actions, &raw)
	if err != nil {
		return nil, err
	}
	if len(actions) > 0 {
		if err := json.Unmarshal(actions, &h.Actions); err != nil {
			return nil, err
		}
	}
	if raw != nil {
		h.RawText = *raw
	}
	return out, nil
}

// ListHands returns a player's hands newest first. limit <= 0 means all.
func (db *DB) ListHands(ctx context.Context, player string, f HandFilter, limit, offset int) ([]*HandRow, error) {
	args := []any{player}
	q := `SELECT ` + handCols + ` FROM hands WHERE player_name = $1` + f.where(&args) +
		` ORDER BY played_at DESC`
	if limit > 0 {
		args = append(args, limit, offset)
		q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*HandRow
	for rows.Next() {
		hr, err := scanHand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, hr)
	}
	return out, rows.Err()
}

func (db *DB) GetHand(ctx context.Context, id, player string) (*HandRow, error) {
	return scanHand(db.QueryRow(ctx,
		`SELECT `+handCols+` FROM hands WHERE id = $1 AND player_name = $2`, id, player))
}

func (db *DB) DeleteHand(ctx context.Context, id, player string) error {
	tag, err := db.Exec(ctx, `DELETE FROM hands WHERE id = $1 AND player_name = $2`, id, player)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := db.Query(ctx, `SELECT DISTINCT player_name FROM hands ORDER BY player_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RawHands streams (id, raw_text) for reprocessing with the current parser.
func (db *DB) RawHands(ctx context.Context, player string) (map[string]string, error) {
	rows, err := db.Query(ctx,
		`SELECT id, raw_text FROM hands WHERE player_name = $1 AND raw_text IS NOT NULL`, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		out[id] = raw
	}
	return out, rows.Err()
}

// UpdateHandStats rewrites the derived columns after a reparse.
func (db *DB) UpdateHandStats(ctx context.Context, id string, h *parser.Hand) error {
	_, err := db.Exec(ctx, `
        UPDATE hands
           SET hero_result = $2, hero_won = $3, went_to_showdown = $4,
               vpip = $5, pfr = $6, three_bet = $7, three_bet_oppo = $8
         WHERE id = $1
    `, id, h.HeroResult, h.HeroWon, h.WentToShowdown, h.VPIP, h.PFR, h.ThreeBet, h.ThreeBetOppo)
	return err
}

/* -----------------------------
   Saved ranges
------------------------------*/

func (db *DB) SavedRanges(ctx context.Context, player string) (map[string]string, error) {
	rows, err := db.Query(ctx,
		`SELECT scenario_key, range_text FROM player_ranges WHERE player_name = $1`, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (db *DB) SaveRange(ctx context.Context, player, scenarioKey, rangeText string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO player_ranges(player_name, scenario_key, range_text)
        VALUES ($1,$2,$3)
        ON CONFLICT (player_name, scenario_key) DO UPDATE
          SET range_text = EXCLUDED.range_text,
              updated_at = now()
    `, player, scenarioKey, rangeText)
	return err
}

func (db *DB) DeleteRange(ctx context.Context, player, scenarioKey string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM player_ranges WHERE player_name = $1 AND scenario_key = $2`, player, scenarioKey)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

/* -----------------------------
   Trainer spots
------------------------------*/

// SpotRow mirrors one trainer_spots row.
type SpotRow struct {
	Key             string
	Label           string
	PositionMatchup string
	BoardTexture    string
	Board           string
	RangeIP         string
	RangeOOP        string
	Pot             float64
	EffectiveStack  float64
	BetSizes        []solver.BetSize
	SolveStatus     string
	SolveVersion    string
	ResultPath      string
	SolvedAt        *time.Time
}

// Spot rebuilds the solvable form of the row.
func (r *SpotRow) Spot() spots.Spot {
	return spots.Spot{
		Key:             r.Key,
		Label:           r.Label,
		PositionMatchup: r.PositionMatchup,
		BoardTexture:    r.BoardTexture,
		Board:           r.Board,
		RangeIP:         r.RangeIP,
		RangeOOP:        r.RangeOOP,
		Pot:             r.Pot,
		EffectiveStack:  r.EffectiveStack,
		BetSizes:        r.BetSizes,
	}
}

// SeedSpots inserts missing library spots and resets any spot solved
// under an older parameter version back to pending. Spots stuck in
// "solving" from a crashed process are also reset.
func (db *DB) SeedSpots(ctx context.Context, library []spots.Spot, version string) error {
	for _, s := range library {
		sizes, err := json.Marshal(s.BetSizes)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx, `
            INSERT INTO trainer_spots(
                spot_key, label, position_matchup, board_texture, board,
                range_ip, range_oop, pot, effective_stack, bet_sizes_json, solve_version
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
            ON CONFLICT (spot_key) DO NOTHING
        `, s.Key, s.Label, s.PositionMatchup, s.BoardTexture, s.Board,
			s.RangeIP, s.RangeOOP, s.Pot, s.EffectiveStack, sizes, version); err != nil {
			return err
		}
	}
	if _, err := db.Exec(ctx, `
        UPDATE trainer_spots
           SET solve_status = 'pending', result_path = NULL, solved_at = NULL, solve_version = $1
         WHERE solve_version <> $1 AND board_texture <> 'on_demand'
    `, version); err != nil {
		return err
	}
	_, err := db.Exec(ctx,
		`UPDATE trainer_spots SET solve_status = 'pending' WHERE solve_status = 'solving'`)
	return err
}

// UpsertSpot stores an on-demand analysis spot if it does not exist yet.
func (db *DB) UpsertSpot(ctx context.Context, s spots.Spot, version string) error {
	sizes, err := json.Marshal(s.BetSizes)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
        INSERT INTO trainer_spots(
            spot_key, label, position_matchup, board_texture, board,
            range_ip, range_oop, pot, effective_stack, bet_sizes_json, solve_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (spot_key) DO NOTHING
    `, s.Key, s.Label, s.PositionMatchup, s.BoardTexture, s.Board,
		s.RangeIP, s.RangeOOP, s.Pot, s.EffectiveStack, sizes, version)
	return err
}

const spotCols = `spot_key, label, position_matchup, board_texture, board,
        range_ip, range_oop, pot, effective_stack, bet_sizes_json,
        solve_status, solve_version, result_path, solved_at`

func scanSpot(row pgx.Row) (*SpotRow, error) {
	var r SpotRow
	var sizes []byte
	var resultPath *string
	err := row.Scan(&r.Key, &r.Label, &r.PositionMatchup, &r.BoardTexture, &r.Board,
		&r.RangeIP, &r.RangeOOP, &r.Pot, &r.EffectiveStack, &sizes,
		&r.SolveStatus, &r.SolveVersion, &resultPath, &r.SolvedAt)
	if err != nil {
		return nil, err
	}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &r.BetSizes); err != nil {
			return nil, err
		}
	}
	if resultPath != nil {
		r.ResultPath = *resultPath
	}
	return &r, nil
}

func (db *DB) ListSpots(ctx context.Context) ([]*SpotRow, error) {
	rows, err := db.Query(ctx,
		`SELECT `+spotCols+` FROM trainer_spots WHERE board_texture <> 'on_demand' ORDER BY spot_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*SpotRow
	for rows.Next() {
		r, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *DB) GetSpot(ctx context.Context, key string) (*SpotRow, error) {
	return scanSpot(db.QueryRow(ctx,
		`SELECT `+spotCols+` FROM trainer_spots WHERE spot_key = $1`, key))
}

// PendingSpots lists spot keys waiting for a solve, library spots first.
func (db *DB) PendingSpots(ctx context.Context) ([]string, error) {
	rows, err := db.Query(ctx, `
        SELECT spot_key FROM trainer_spots
         WHERE solve_status = 'pending'
         ORDER BY (board_texture = 'on_demand'), spot_key
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// ClaimSpot flips a pending spot to solving, returning false if another
// worker got there first.
func (db *DB) ClaimSpot(ctx context.Context, key string) (bool, error) {
	tag, err := db.Exec(ctx, `
        UPDATE trainer_spots SET solve_status = 'solving'
         WHERE spot_key = $1 AND solve_status = 'pending'
    `, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (db *DB) FinishSpot(ctx context.Context, key string, ok bool, resultPath string) error {
	if ok {
		_, err := db.Exec(ctx, `
            UPDATE trainer_spots
               SET solve_status = 'ready', result_path = $2, solved_at = now()
             WHERE spot_key = $1
        `, key, resultPath)
		return err
	}
	_, err := db.Exec(ctx, `
        UPDATE trainer_spots
           SET solve_status = 'failed', result_path = NULL, solved_at = NULL
         WHERE spot_key = $1
    `, key)
	return err
}

/* -----------------------------
   Training sessions and stats
------------------------------*/

func (db *DB) InsertSession(ctx context.Context, id, player, spotKey, heroPosition, heroCombo string) error {
	_, err := db.Exec(ctx, `
        INSERT INTO training_sessions(id, player_name, spot_key, hero_position, hero_combo)
        VALUES ($1,$2,$3,$4,$5)
    `, id, player, spotKey, heroPosition, heroCombo)
	return err
}

func (db *DB) CompleteSession(ctx context.Context, id string, score float64, decisions any) error {
	blob, err := json.Marshal(decisions)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
        UPDATE training_sessions
           SET score = $2, decisions_json = $3, completed_at = now()
         WHERE id = $1
    `, id, score, blob)
	return err
}

// SessionRow is one finished or abandoned row for history listings.
type SessionRow struct {
	ID           string     `json:"id"`
	SpotKey      string     `json:"spot_key"`
	HeroPosition string     `json:"hero_position"`
	HeroCombo    string     `json:"hero_combo"`
	Score        *float64   `json:"score"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

func (db *DB) ListSessions(ctx context.Context, player string, limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
        SELECT id, spot_key, hero_position, hero_combo, score, started_at, completed_at
          FROM training_sessions
         WHERE player_name = $1
         ORDER BY started_at DESC
         LIMIT $2
    `, player, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		if err := rows.Scan(&r.ID, &r.SpotKey, &r.HeroPosition, &r.HeroCombo,
			&r.Score, &r.StartedAt, &r.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecordSpotScore folds a completed session score into the per-spot
// running average. Zero scores are not recorded.
func (db *DB) RecordSpotScore(ctx context.Context, player, spotKey string, score float64) error {
	if score <= 0 {
		return nil
	}
	_, err := db.Exec(ctx, `
        INSERT INTO player_spot_stats(player_name, spot_key, sessions_played, avg_score, best_score, worst_score)
        VALUES ($1,$2,1,$3,$3,$3)
        ON CONFLICT (player_name, spot_key) DO UPDATE SET
            avg_score = (player_spot_stats.avg_score * player_spot_stats.sessions_played + EXCLUDED.avg_score)
                        / (player_spot_stats.sessions_played + 1),
            sessions_played = player_spot_stats.sessions_played + 1,
            best_score = GREATEST(player_spot_stats.best_score, EXCLUDED.best_score),
            worst_score = LEAST(player_spot_stats.worst_score, EXCLUDED.worst_score),
            updated_at = now()
    `, player, spotKey, score)
	return err
}

// SpotStatRow is the aggregate for one player and spot.
type SpotStatRow struct {
	SpotKey        string  `json:"spot_key"`
	SessionsPlayed int     `json:"sessions_played"`
	AvgScore       float64 `json:"avg_score"`
	BestScore      float64 `json:"best_score"`
	WorstScore     float64 `json:"worst_score"`
}

func (db *DB) SpotStats(ctx context.Context, player string) ([]SpotStatRow, error) {
	rows, err := db.Query(ctx, `
        SELECT spot_key, sessions_played, avg_score, best_score, worst_score
          FROM player_spot_stats
         WHERE player_name = $1
         ORDER BY spot_key
    `, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SpotStatRow
	for rows.Next() {
		var r SpotStatRow
		if err := rows.Scan(&r.SpotKey, &r.SessionsPlayed, &r.AvgScore, &r.BestScore, &r.WorstScore); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gto-rangelab/server/solver"
	"gto-rangelab/server/spots"
	"gto-rangelab/server/store"
	"gto-rangelab/server/strategy"
	"gto-rangelab/server/trainer"
)

// App wires the store, the solver runner, and the in-memory session and
// result caches together for the HTTP layer.
type App struct {
	DB         *store.DB
	Runner     *solver.Runner
	Results    *solver.ResultCache
	Sessions   *trainer.Manager
	LibraryDir string
}

var errSpotNotReady = errors.New("spot not solved yet")

func (a *App) spotResultPath(key string) string {
	return filepath.Join(a.LibraryDir, key, "result.json")
}

// SolveSpot claims and solves one spot, marking the row ready or failed.
// A spot someone else already claimed is skipped silently.
func (a *App) SolveSpot(ctx context.Context, key string) error {
	claimed, err := a.DB.ClaimSpot(ctx, key)
	if err != nil || !claimed {
		return err
	}
	row, err := a.DB.GetSpot(ctx, key)
	if err != nil {
		return err
	}
	spot := row.Spot()
	req := spot.SolveRequest()
	if row.BoardTexture == "on_demand" {
		req = spot.AnalysisSolveRequest()
	}
	resultPath := a.spotResultPath(key)

	log.Info().Str("spot", key).Msg("solving spot")
	solveErr := a.Runner.RunToPath(ctx, req, resultPath)
	if solveErr != nil {
		log.Error().Err(solveErr).Str("spot", key).Msg("spot solve failed")
		if err := a.DB.FinishSpot(ctx, key, false, ""); err != nil {
			return err
		}
		return solveErr
	}
	a.Results.Evict(resultPath)
	return a.DB.FinishSpot(ctx, key, true, resultPath)
}

// KickSpot requeues a solve without waiting on it.
func (a *App) KickSpot(key string) {
	go func() {
		if err := a.SolveSpot(context.Background(), key); err != nil {
			log.Error().Err(err).Str("spot", key).Msg("background solve")
		}
	}()
}

// SolvePendingSpots drains the pending queue one spot at a time. Runs at
// startup and keeps going until the context ends or the queue is empty.
func (a *App) SolvePendingSpots(ctx context.Context) {
	for {
		keys, err := a.DB.PendingSpots(ctx)
		if err != nil {
			log.Error().Err(err).Msg("list pending spots")
			return
		}
		if len(keys) == 0 {
			return
		}
		for _, key := range keys {
			if ctx.Err() != nil {
				return
			}
			if err := a.SolveSpot(ctx, key); err != nil {
				log.Error().Err(err).Str("spot", key).Msg("pending solve")
			}
		}
	}
}

// SpotTree loads the solved tree for a spot, or errSpotNotReady.
func (a *App) SpotTree(ctx context.Context, key string) (*strategy.Node, *store.SpotRow, error) {
	row, err := a.DB.GetSpot(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if row.SolveStatus != "ready" || row.ResultPath == "" {
		return nil, row, errSpotNotReady
	}
	tree, err := a.Results.Load(row.ResultPath)
	if err != nil {
		return nil, row, err
	}
	return tree, row, nil
}

// HandAnalysis is the review payload for one stored hand.
type HandAnalysis struct {
	Status           string                   `json:"status,omitempty"`
	MatchedSpotKey   string                   `json:"matched_spot_key,omitempty"`
	MatchedSpotLabel string                   `json:"matched_spot_label,omitempty"`
	HeroCombo        string                   `json:"hero_combo,omitempty"`
	HeroIsoCombo     string                   `json:"hero_iso_combo,omitempty"`
	Decisions        []trainer.ReviewDecision `json:"decisions,omitempty"`
	Note             string                   `json:"note,omitempty"`
}

// AnalyzeHand reviews one hand against a solve of its exact flop. The
// first request queues a background solve and reports its status;
// callers poll until the spot is ready.
func (a *App) AnalyzeHand(ctx context.Context, handID, player string) (*HandAnalysis, error) {
	hr, err := a.DB.GetHand(ctx, handID, player)
	if err != nil {
		return nil, err
	}
	hand := hr.Hand
	if hand.HeroPosition == "" || hand.HeroHoleCards == "" {
		return &HandAnalysis{Note: "Hand missing position or hole cards"}, nil
	}
	if len(hand.Board) < 6 {
		return &HandAnalysis{Note: "Hand missing board data, the hand may not have reached the flop"}, nil
	}
	matchup, _, ok := trainer.ResolveMatchup(strings.ToUpper(hand.HeroPosition))
	if !ok {
		return &HandAnalysis{
			Note: fmt.Sprintf("No solved spot available for %s", hand.HeroPosition),
		}, nil
	}

	raiseCount := 0
	for _, act := range hand.Actions["preflop"] {
		if act.Verb == "raises" {
			raiseCount++
		}
	}
	spot, ok := spots.AnalysisSpot(matchup, hand.Board[:6], raiseCount >= 2)
	if !ok {
		return &HandAnalysis{Note: fmt.Sprintf("No ranges configured for %s", matchup)}, nil
	}

	if err := a.DB.UpsertSpot(ctx, spot, spots.SolveVersion); err != nil {
		return nil, err
	}
	row, err := a.DB.GetSpot(ctx, spot.Key)
	if err != nil {
		return nil, err
	}
	if row.SolveStatus == "pending" {
		a.KickSpot(spot.Key)
	}
	if row.SolveStatus != "ready" {
		return &HandAnalysis{
			Status:           row.SolveStatus,
			MatchedSpotKey:   spot.Key,
			MatchedSpotLabel: spot.Label,
			Note:             "Solving exact board, retry in a moment",
		}, nil
	}

	tree, err := a.Results.Load(row.ResultPath)
	if err != nil {
		return nil, err
	}
	decisions, iso := trainer.Review(tree, hand.HeroHoleCards, hand.Board, hand.Actions)
	return &HandAnalysis{
		Status:           "ready",
		MatchedSpotKey:   spot.Key,
		MatchedSpotLabel: spot.Label,
		HeroCombo:        hand.HeroHoleCards,
		HeroIsoCombo:     iso,
		Decisions:        decisions,
	}, nil
}

// SeedAndResetSpots syncs the built-in library into the store.
func (a *App) SeedAndResetSpots(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return a.DB.SeedSpots(ctx, spots.Library, spots.SolveVersion)
}

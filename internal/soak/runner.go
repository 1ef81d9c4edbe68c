// Package soak plays many random games through the action dispatcher and
// checks the engine's invariants after every move.
package soak

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/hexsettle/internal/actions"
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/multiplayer"
)

// Config controls a soak run.
type Config struct {
	Games      int
	Workers    int
	MaxActions int   // per game
	ProbeEvery int   // 0 disables rejected-action probes
	Seed       int64 // game i uses Seed+i
	Options    engine.Options
}

// Report summarises one played game.
type Report struct {
	MatchID      multiplayer.MatchID
	Seed         int64
	Players      int
	Turns        int
	Actions      int
	Probes       int
	Rejected     map[check.Reason]int
	Winner       int // -1 when the game hit MaxActions
	WinnerPoints int
	Violations   []Violation
	Duration     time.Duration
}

// Finished reports whether somebody won.
func (r Report) Finished() bool {
	return r.Winner >= 0
}

// maxViolations caps the violations kept per game.
const maxViolations = 50

// Play runs one game to a winner or cfg.MaxActions, whichever comes first.
func Play(ctx context.Context, seed int64, cfg Config) (Report, error) {
	opts := cfg.Options
	opts.Seed = seed
	g, err := engine.New(opts)
	if err != nil {
		return Report{}, fmt.Errorf("soak: new game %d: %w", seed, err)
	}
	d := actions.New(g)
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))

	start := time.Now()
	report := Report{
		MatchID:  multiplayer.NewMatchID(),
		Seed:     seed,
		Players:  len(g.Players()),
		Rejected: make(map[check.Reason]int),
		Winner:   -1,
	}
	violate := func(action int, vs ...Violation) {
		for _, v := range vs {
			if len(report.Violations) >= maxViolations {
				return
			}
			v.Action = action
			report.Violations = append(report.Violations, v)
		}
	}

	for report.Actions < cfg.MaxActions {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if _, won := g.Winner(); won {
			break
		}

		before := fingerprint(g)
		moves := Legal(g, d, rng)
		if _, err := d.AvailableActions(g.Turn().Player().ID()); err != nil {
			violate(report.Actions, Violation{Invariant: InvReadOnly, Detail: err.Error()})
		}
		if fingerprint(g) != before {
			violate(report.Actions, Violation{Invariant: InvReadOnly, Detail: "move enumeration changed state"})
		}
		if len(moves) == 0 {
			violate(report.Actions, Violation{Invariant: InvStuck, Detail: fmt.Sprintf("turn %d has no legal move", g.TurnNumber())})
			break
		}

		if cfg.ProbeEvery > 0 && report.Actions%cfg.ProbeEvery == 0 {
			res := probe(g, d, rng)
			report.Probes++
			if res.rejected && res.reason != "" {
				report.Rejected[res.reason]++
			}
			if res.violation != nil {
				violate(report.Actions, *res.violation)
			}
		}

		m := choose(rng, moves)
		if err := d.ExecuteAction(m.Player, m.Action.String(), m.Args); err != nil {
			violate(report.Actions, Violation{Invariant: InvLegalMove, Detail: fmt.Sprintf("%s: %v", m, err)})
			break
		}
		report.Actions++
		violate(report.Actions, checkState(g)...)
	}

	report.Turns = g.TurnNumber()
	if w, ok := g.Winner(); ok {
		report.Winner = int(w.ID())
		report.WinnerPoints = w.VictoryPoints()
	}
	report.Duration = time.Since(start)
	return report, nil
}

// Run plays cfg.Games games on cfg.Workers goroutines. Reports come back in
// seed order. progress, if set, is called after every finished game, one
// call at a time.
func Run(ctx context.Context, cfg Config, logger *log.Logger, progress func(done, total int)) ([]Report, error) {
	if cfg.Games < 1 || cfg.Workers < 1 || cfg.MaxActions < 1 {
		return nil, errors.New("soak: games, workers and max actions must be positive")
	}
	if logger == nil {
		logger = log.Default()
	}

	reports := make([]Report, cfg.Games)
	seeds := make(chan int)

	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(seeds)
		for i := 0; i < cfg.Games; i++ {
			select {
			case seeds <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for i := range seeds {
				seed := cfg.Seed + int64(i)
				r, err := Play(ctx, seed, cfg)
				if err != nil {
					return err
				}
				reports[i] = r

				if len(r.Violations) > 0 {
					logger.Warn("invariant violated", "seed", seed, "violations", len(r.Violations), "first", r.Violations[0])
				} else {
					logger.Debug("game finished", "seed", seed, "winner", r.Winner, "turns", r.Turns, "actions", r.Actions)
				}

				mu.Lock()
				done++
				if progress != nil {
					progress(done, cfg.Games)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Summary aggregates reports.
type Summary struct {
	Games      int
	Finished   int
	Violations int
	Actions    int
	Rejected   map[check.Reason]int
}

// Summarize totals reports.
func Summarize(reports []Report) Summary {
	s := Summary{Games: len(reports), Rejected: make(map[check.Reason]int)}
	for _, r := range reports {
		if r.Finished() {
			s.Finished++
		}
		s.Violations += len(r.Violations)
		s.Actions += r.Actions
		for reason, n := range r.Rejected {
			s.Rejected[reason] += n
		}
	}
	return s
}

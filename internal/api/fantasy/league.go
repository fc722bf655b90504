package fantasy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/omarshaarawi/sleeperboard/internal/config"
	"github.com/omarshaarawi/sleeperboard/internal/models"
	"golang.org/x/sync/errgroup"
)

const loadErrorMessage = "Failed to fetch data. Please try again later."

// LoadError is the single error a failed load reports. Its message never
// names the endpoint or the cause; Unwrap keeps the cause for logs.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return loadErrorMessage
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source is the provider surface a load needs.
type Source interface {
	GetLeagueUsers(ctx context.Context) ([]models.LeagueUser, error)
	GetRosters(ctx context.Context) ([]models.Roster, error)
	GetPlayers(ctx context.Context) (map[string]models.Player, error)
	GetWeeklyStats(ctx context.Context, week int) (map[string]models.PlayerStats, error)
	GetNFLState(ctx context.Context) (models.NFLState, error)
}

type API struct {
	source Source
	cfg    config.Sleeper
	now    func() time.Time
}

func NewAPI(source Source, cfg config.Sleeper) *API {
	return &API{source: source, cfg: cfg, now: time.Now}
}

// Load fetches users, rosters, the player directory and the week's stats
// concurrently. The snapshot is returned only when all four succeed.
func (a *API) Load(ctx context.Context) (*models.Snapshot, error) {
	loadID := uuid.NewString()
	start := a.now()
	logger := slog.With("load_id", loadID, "league_id", a.cfg.LeagueID)

	week, err := a.resolveWeek(ctx)
	if err != nil {
		logger.Error("Failed to resolve week", "error", err)
		return nil, &LoadError{Err: err}
	}
	logger.Info("Loading league snapshot", "week", week)

	var (
		users   []models.LeagueUser
		rosters []models.Roster
		players map[string]models.Player
		stats   map[string]models.PlayerStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = a.source.GetLeagueUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rosters, err = a.source.GetRosters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = a.source.GetPlayers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = a.source.GetWeeklyStats(gctx, week)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to load league snapshot", "error", err)
		return nil, &LoadError{Err: err}
	}

	snapshot := &models.Snapshot{
		LeagueID: a.cfg.LeagueID,
		Week:     week,
		Users:    users,
		Rosters:  rosters,
		Players:  players,
		Stats:    stats,
		LoadedAt: a.now(),
	}

	logger.Info("Loaded league snapshot",
		"users", len(users),
		"rosters", len(rosters),
		"players", len(players),
		"stats", len(stats),
		"duration", snapshot.LoadedAt.Sub(start))

	return snapshot, nil
}

func (a *API) resolveWeek(ctx context.Context) (int, error) {
	if a.cfg.Week > 0 {
		return a.cfg.Week, nil
	}

	state, err := a.source.GetNFLState(ctx)
	if err != nil {
		return 0, err
	}
	week := state.CurrentWeek()
	if week <= 0 {
		return 0, fmt.Errorf("nfl state reported no current week (season type %q)", state.SeasonType)
	}
	return week, nil
}

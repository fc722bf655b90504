package sleeper

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/sleeperboard/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeagueUsers(ctx context.Context) ([]models.LeagueUser, error) {
	var users []models.LeagueUser
	endpoint := fmt.Sprintf("league/%s/users", a.client.Config.LeagueID)

	if err := a.client.Get(ctx, endpoint, &users); err != nil {
		return nil, fmt.Errorf("fetching league users: %w", err)
	}
	return users, nil
}

func (a *API) GetRosters(ctx context.Context) ([]models.Roster, error) {
	var rosters []models.Roster
	endpoint := fmt.Sprintf("league/%s/rosters", a.client.Config.LeagueID)

	if err := a.client.Get(ctx, endpoint, &rosters); err != nil {
		return nil, fmt.Errorf("fetching league rosters: %w", err)
	}
	return rosters, nil
}

func (a *API) GetPlayers(ctx context.Context) (map[string]models.Player, error) {
	var players map[string]models.Player

	if err := a.client.Get(ctx, "players/nfl", &players); err != nil {
		return nil, fmt.Errorf("fetching player directory: %w", err)
	}
	return players, nil
}

func (a *API) GetWeeklyStats(ctx context.Context, week int) (map[string]models.PlayerStats, error) {
	var stats map[string]models.PlayerStats
	endpoint := fmt.Sprintf("stats/nfl/%d", week)

	if err := a.client.Get(ctx, endpoint, &stats); err != nil {
		return nil, fmt.Errorf("fetching week %d stats: %w", week, err)
	}
	return stats, nil
}

func (a *API) GetNFLState(ctx context.Context) (models.NFLState, error) {
	var state models.NFLState

	if err := a.client.Get(ctx, "state/nfl", &state); err != nil {
		return models.NFLState{}, fmt.Errorf("fetching nfl state: %w", err)
	}
	return state, nil
}

// Relay fetches an arbitrary provider path for pass-through.
func (a *API) Relay(ctx context.Context, endpoint string) (int, []byte, error) {
	return a.client.GetRaw(ctx, endpoint)
}

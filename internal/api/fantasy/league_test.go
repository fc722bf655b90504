package fantasy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/omarshaarawi/sleeperboard/internal/config"
	"github.com/omarshaarawi/sleeperboard/internal/models"
)

type fakeSource struct {
	mu        sync.Mutex
	statsWeek int
	stateCall int

	state    models.NFLState
	usersErr error
	statsErr error
}

func (f *fakeSource) GetLeagueUsers(ctx context.Context) ([]models.LeagueUser, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return []models.LeagueUser{{UserID: "u1", Metadata: models.UserMetadata{TeamName: "A"}}}, nil
}

func (f *fakeSource) GetRosters(ctx context.Context) ([]models.Roster, error) {
	return []models.Roster{{OwnerID: "u1", Players: []string{"p1"}}}, nil
}

func (f *fakeSource) GetPlayers(ctx context.Context) (map[string]models.Player, error) {
	return map[string]models.Player{"p1": {PlayerID: "p1", FullName: "Player One"}}, nil
}

func (f *fakeSource) GetWeeklyStats(ctx context.Context, week int) (map[string]models.PlayerStats, error) {
	f.mu.Lock()
	f.statsWeek = week
	f.mu.Unlock()
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	pts := 10.0
	return map[string]models.PlayerStats{"p1": {Stats: models.StatLine{PtsPPR: &pts}}}, nil
}

func (f *fakeSource) GetNFLState(ctx context.Context) (models.NFLState, error) {
	f.mu.Lock()
	f.stateCall++
	f.mu.Unlock()
	return f.state, nil
}

func TestAPI_Load(t *testing.T) {
	src := &fakeSource{}
	api := NewAPI(src, config.Sleeper{LeagueID: "L1", Week: 5})

	snapshot, err := api.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if snapshot.Week != 5 || snapshot.LeagueID != "L1" {
		t.Errorf("snapshot week/league = %d/%q", snapshot.Week, snapshot.LeagueID)
	}
	if len(snapshot.Users) != 1 || len(snapshot.Rosters) != 1 || len(snapshot.Players) != 1 || len(snapshot.Stats) != 1 {
		t.Errorf("snapshot = %+v", snapshot)
	}
	if src.statsWeek != 5 {
		t.Errorf("stats week = %d, want 5", src.statsWeek)
	}
	if src.stateCall != 0 {
		t.Errorf("GetNFLState called %d times with a fixed week", src.stateCall)
	}
}

func TestAPI_Load_ResolvesWeek(t *testing.T) {
	src := &fakeSource{state: models.NFLState{Week: 8, DisplayWeek: 9}}
	api := NewAPI(src, config.Sleeper{LeagueID: "L1"})

	snapshot, err := api.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snapshot.Week != 9 || src.statsWeek != 9 {
		t.Errorf("week = %d, stats week = %d, want 9", snapshot.Week, src.statsWeek)
	}
}

func TestAPI_Load_Errors(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		src  *fakeSource
		cfg  config.Sleeper
	}{
		{name: "users fail", src: &fakeSource{usersErr: cause}, cfg: config.Sleeper{Week: 1}},
		{name: "stats fail", src: &fakeSource{statsErr: cause}, cfg: config.Sleeper{Week: 1}},
		{name: "offseason", src: &fakeSource{state: models.NFLState{SeasonType: "off"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := NewAPI(tt.src, tt.cfg).Load(context.Background())
			if snapshot != nil {
				t.Errorf("Load() snapshot = %+v, want nil", snapshot)
			}

			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("Load() error = %v, want *LoadError", err)
			}
			if err.Error() != "Failed to fetch data. Please try again later." {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestLoadError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(&LoadError{Err: cause})
	if !errors.Is(err, cause) {
		t.Error("errors.Is(LoadError, cause) = false")
	}
}

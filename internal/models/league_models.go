package models

import "time"

// Snapshot is one complete load of the league. It is never mutated after
// being published.
type Snapshot struct {
	LeagueID string
	Week     int
	Users    []LeagueUser
	Rosters  []Roster
	Players  map[string]Player
	Stats    map[string]PlayerStats
	LoadedAt time.Time
}

// User finds the league member with the given id.
func (s *Snapshot) User(userID string) (LeagueUser, bool) {
	for _, u := range s.Users {
		if u.UserID == userID {
			return u, true
		}
	}
	return LeagueUser{}, false
}

// Player returns nil when the id is missing from the player directory.
func (s *Snapshot) Player(playerID string) *Player {
	p, ok := s.Players[playerID]
	if !ok {
		return nil
	}
	return &p
}

func (s *Snapshot) StatLine(playerID string) StatLine {
	return s.Stats[playerID].Stats
}

type Performer struct {
	PlayerID string
	Player   *Player
	Stats    StatLine
}

func (p Performer) Name() string {
	if p.Player == nil {
		return ""
	}
	return p.Player.FullName
}

func (p Performer) Team() string {
	if p.Player == nil {
		return ""
	}
	return p.Player.Team
}

type Category string

const (
	CategoryPoints     Category = "Points"
	CategoryYards      Category = "Yards"
	CategoryTouchdowns Category = "Touchdowns"
)

// Categories lists leaderboard categories in display order.
var Categories = []Category{CategoryPoints, CategoryYards, CategoryTouchdowns}

type LeaderboardEntry struct {
	Team  string  `json:"team"`
	Value float64 `json:"value"`
}

type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusReady   LoadStatus = "ready"
	StatusError   LoadStatus = "error"
)

// LoadState is what readers of the snapshot store observe.
type LoadState struct {
	Status    LoadStatus
	Snapshot  *Snapshot
	Err       error
	UpdatedAt time.Time
}

type PerformerRow struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Position string  `json:"position"`
	Points   float64 `json:"points"`
}

type LeaderboardRow struct {
	Rank  int     `json:"rank"`
	Team  string  `json:"team"`
	Value float64 `json:"value"`
}

type Leaderboard struct {
	Category Category         `json:"category"`
	Rows     []LeaderboardRow `json:"rows"`
}

// Dashboard is the render-ready view of the current load state.
type Dashboard struct {
	Status        LoadStatus     `json:"status"`
	Error         string         `json:"error,omitempty"`
	Week          int            `json:"week,omitempty"`
	LoadedAt      *time.Time     `json:"loaded_at,omitempty"`
	TopPerformers []PerformerRow `json:"top_performers"`
	Leaderboards  []Leaderboard  `json:"leaderboards"`
}

type WhoHasResult struct {
	PlayerName string
	Position   string
	ProTeam    string
	TeamName   string
	Found      bool
	Rostered   bool
	IsStarter  bool
	Points     float64
}

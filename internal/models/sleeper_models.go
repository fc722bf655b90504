package models

import (
	"bytes"
	"encoding/json"
)

type Player struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             string   `json:"team"`
}

// Position returns the first eligible fantasy position, or "" if none.
func (p *Player) Position() string {
	if p == nil || len(p.FantasyPositions) == 0 {
		return ""
	}
	return p.FantasyPositions[0]
}

// StatLine holds the weekly stats the dashboard reads. Absent fields are nil
// and read as zero.
type StatLine struct {
	PtsPPR *float64 `json:"pts_ppr,omitempty"`
	PassYd *float64 `json:"pass_yd,omitempty"`
	RushYd *float64 `json:"rush_yd,omitempty"`
	RecYd  *float64 `json:"rec_yd,omitempty"`
	TD     *float64 `json:"td,omitempty"`
}

func (s StatLine) Points() float64 {
	return value(s.PtsPPR)
}

func (s StatLine) Yards() float64 {
	return value(s.PassYd) + value(s.RushYd) + value(s.RecYd)
}

func (s StatLine) Touchdowns() float64 {
	return value(s.TD)
}

func value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

type PlayerStats struct {
	Stats StatLine `json:"stats"`
}

// UnmarshalJSON accepts both {"stats": {...}} and the flat stat object the
// weekly stats endpoint serves.
func (p *PlayerStats) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if nested, ok := probe["stats"]; ok && !bytes.Equal(bytes.TrimSpace(nested), []byte("null")) {
		return json.Unmarshal(nested, &p.Stats)
	}
	return json.Unmarshal(data, &p.Stats)
}

type LeagueUser struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

// TeamLabel is the fantasy team name, falling back to the owner's display
// name when the owner never set one.
func (u LeagueUser) TeamLabel() string {
	if u.Metadata.TeamName != "" {
		return u.Metadata.TeamName
	}
	return u.DisplayName
}

type Roster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
}

type NFLState struct {
	Week        int    `json:"week"`
	DisplayWeek int    `json:"display_week"`
	Season      string `json:"season"`
	SeasonType  string `json:"season_type"`
}

// CurrentWeek prefers display_week, which Sleeper advances on Wednesdays.
func (s NFLState) CurrentWeek() int {
	if s.DisplayWeek > 0 {
		return s.DisplayWeek
	}
	return s.Week
}

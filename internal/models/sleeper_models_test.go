package models

import (
	"encoding/json"
	"testing"
)

func TestPlayerStats_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPoints float64
		wantYards  float64
		wantTD     float64
	}{
		{
			name:       "nested",
			input:      `{"stats": {"pts_ppr": 12.5, "pass_yd": 250, "rush_yd": 10, "td": 2}}`,
			wantPoints: 12.5,
			wantYards:  260,
			wantTD:     2,
		},
		{
			name:       "flat",
			input:      `{"pts_ppr": 8.2, "rec_yd": 75, "gp": 1}`,
			wantPoints: 8.2,
			wantYards:  75,
		},
		{
			name:  "empty",
			input: `{}`,
		},
		{
			name:  "null stats",
			input: `{"stats": null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps PlayerStats
			if err := json.Unmarshal([]byte(tt.input), &ps); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := ps.Stats.Points(); got != tt.wantPoints {
				t.Errorf("Points() = %v, want %v", got, tt.wantPoints)
			}
			if got := ps.Stats.Yards(); got != tt.wantYards {
				t.Errorf("Yards() = %v, want %v", got, tt.wantYards)
			}
			if got := ps.Stats.Touchdowns(); got != tt.wantTD {
				t.Errorf("Touchdowns() = %v, want %v", got, tt.wantTD)
			}
		})
	}
}

func TestPlayerStats_UnmarshalMap(t *testing.T) {
	input := `{"4046": {"pts_ppr": 20}, "6794": null}`

	var stats map[string]PlayerStats
	if err := json.Unmarshal([]byte(input), &stats); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := stats["4046"].Stats.Points(); got != 20 {
		t.Errorf("4046 points = %v, want 20", got)
	}
	if got := stats["6794"].Stats.Points(); got != 0 {
		t.Errorf("6794 points = %v, want 0", got)
	}
}

func TestLeagueUser_TeamLabel(t *testing.T) {
	named := LeagueUser{DisplayName: "omar", Metadata: UserMetadata{TeamName: "Coach Dad"}}
	if got := named.TeamLabel(); got != "Coach Dad" {
		t.Errorf("TeamLabel() = %q, want %q", got, "Coach Dad")
	}

	unnamed := LeagueUser{DisplayName: "omar"}
	if got := unnamed.TeamLabel(); got != "omar" {
		t.Errorf("TeamLabel() = %q, want %q", got, "omar")
	}
}

func TestPlayer_Position(t *testing.T) {
	var missing *Player
	if got := missing.Position(); got != "" {
		t.Errorf("nil Position() = %q, want empty", got)
	}

	p := &Player{FantasyPositions: []string{"WR", "RB"}}
	if got := p.Position(); got != "WR" {
		t.Errorf("Position() = %q, want WR", got)
	}
}

func TestNFLState_CurrentWeek(t *testing.T) {
	if got := (NFLState{Week: 3, DisplayWeek: 4}).CurrentWeek(); got != 4 {
		t.Errorf("CurrentWeek() = %d, want 4", got)
	}
	if got := (NFLState{Week: 3}).CurrentWeek(); got != 3 {
		t.Errorf("CurrentWeek() = %d, want 3", got)
	}
}

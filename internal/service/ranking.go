package service

import (
	"sort"

	"github.com/omarshaarawi/sleeperboard/internal/models"
)

const topPerformerLimit = 5

// TopPerformers joins every rostered player id with the directory and the
// week's stats and returns the five highest PPR scorers. A player listed on
// more than one roster appears once per roster. Ties keep roster order.
func TopPerformers(s *models.Snapshot) []models.Performer {
	if s == nil {
		return nil
	}

	var performers []models.Performer
	for _, roster := range s.Rosters {
		for _, playerID := range roster.Players {
			performers = append(performers, models.Performer{
				PlayerID: playerID,
				Player:   s.Player(playerID),
				Stats:    s.StatLine(playerID),
			})
		}
	}

	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].Stats.Points() > performers[j].Stats.Points()
	})

	if len(performers) > topPerformerLimit {
		performers = performers[:topPerformerLimit]
	}
	return performers
}

// Leaderboards totals points, yards and touchdowns over every player of each
// roster whose owner is a league member, sorted descending per category.
// Rosters without a matching owner are left out. Nothing is truncated.
func Leaderboards(s *models.Snapshot) map[models.Category][]models.LeaderboardEntry {
	boards := make(map[models.Category][]models.LeaderboardEntry, len(models.Categories))
	for _, c := range models.Categories {
		boards[c] = []models.LeaderboardEntry{}
	}
	if s == nil {
		return boards
	}

	for _, roster := range s.Rosters {
		user, ok := s.User(roster.OwnerID)
		if !ok {
			continue
		}

		var points, yards, touchdowns float64
		for _, playerID := range roster.Players {
			stats := s.StatLine(playerID)
			points += stats.Points()
			yards += stats.Yards()
			touchdowns += stats.Touchdowns()
		}

		team := user.TeamLabel()
		boards[models.CategoryPoints] = append(boards[models.CategoryPoints], models.LeaderboardEntry{Team: team, Value: points})
		boards[models.CategoryYards] = append(boards[models.CategoryYards], models.LeaderboardEntry{Team: team, Value: yards})
		boards[models.CategoryTouchdowns] = append(boards[models.CategoryTouchdowns], models.LeaderboardEntry{Team: team, Value: touchdowns})
	}

	for _, entries := range boards {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Value > entries[j].Value
		})
	}

	return boards
}

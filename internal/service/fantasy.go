package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/sleeperboard/internal/api/fantasy"
	"github.com/omarshaarawi/sleeperboard/internal/metrics"
	"github.com/omarshaarawi/sleeperboard/internal/models"
	"github.com/omarshaarawi/sleeperboard/internal/repository/memory"
)

const (
	leaderboardDisplayLimit = 5
	whoHasThreshold         = 0.7
	genericLoadError        = "Failed to fetch data. Please try again later."
)

var (
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrNoSnapshot        = errors.New("league data has not been loaded yet")
	ErrUnknownCategory   = errors.New("unknown leaderboard category")
)

type Loader interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}

type FantasyService struct {
	loader Loader
	repo   *memory.Repository
}

func NewFantasyService(loader Loader, repo *memory.Repository) *FantasyService {
	return &FantasyService{loader: loader, repo: repo}
}

// Refresh runs one load cycle. A trigger that arrives while another load is
// in flight is dropped with ErrRefreshInProgress.
func (s *FantasyService) Refresh(ctx context.Context) error {
	if !s.repo.BeginLoad() {
		metrics.RefreshSkipped()
		slog.Info("Refresh skipped, load already in flight")
		return ErrRefreshInProgress
	}
	return s.load(ctx)
}

// TriggerRefresh starts a load in the background and reports whether it
// did; false means one was already in flight.
func (s *FantasyService) TriggerRefresh(ctx context.Context) bool {
	if !s.repo.BeginLoad() {
		metrics.RefreshSkipped()
		return false
	}
	go func() {
		if err := s.load(ctx); err != nil {
			slog.Error("Background refresh failed", "error", err)
		}
	}()
	return true
}

func (s *FantasyService) load(ctx context.Context) error {
	start := time.Now()
	snapshot, err := s.loader.Load(ctx)
	metrics.ObserveLoad(time.Since(start), err)
	if err != nil {
		s.repo.Fail(err)
		return err
	}

	s.repo.Publish(snapshot)
	return nil
}

// current reads the store once. Reports built from it must not read the
// store again so one message never mixes two load cycles.
func (s *FantasyService) current() (models.LoadState, error) {
	state := s.repo.State()
	if state.Snapshot == nil {
		return state, ErrNoSnapshot
	}
	return state, nil
}

// writeStaleWarning flags a report built from the last good snapshot after
// a failed load.
func writeStaleWarning(sb *strings.Builder, state models.LoadState) {
	if state.Status != models.StatusError {
		return
	}
	sb.WriteString(fmt.Sprintf("⚠️ %s\n", loadErrorText(state.Err)))
	sb.WriteString(fmt.Sprintf("Showing week %d data loaded %s.\n\n", state.Snapshot.Week, state.Snapshot.LoadedAt.Format(time.RFC1123)))
}

// escape makes provider-supplied names safe inside Telegram Markdown.
func escape(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}

// View builds the dashboard from whatever snapshot is currently published.
func (s *FantasyService) View() models.Dashboard {
	state := s.repo.State()

	view := models.Dashboard{
		Status:        state.Status,
		TopPerformers: []models.PerformerRow{},
		Leaderboards:  []models.Leaderboard{},
	}
	if state.Status == models.StatusError {
		view.Error = loadErrorText(state.Err)
	}

	snapshot := state.Snapshot
	if snapshot == nil {
		return view
	}

	view.Week = snapshot.Week
	loadedAt := snapshot.LoadedAt
	view.LoadedAt = &loadedAt

	for i, p := range TopPerformers(snapshot) {
		view.TopPerformers = append(view.TopPerformers, models.PerformerRow{
			Rank:     i + 1,
			PlayerID: p.PlayerID,
			Name:     p.Name(),
			Team:     p.Team(),
			Position: p.Player.Position(),
			Points:   p.Stats.Points(),
		})
	}

	boards := Leaderboards(snapshot)
	for _, category := range models.Categories {
		board := models.Leaderboard{Category: category, Rows: []models.LeaderboardRow{}}
		for i, entry := range boards[category] {
			if i == leaderboardDisplayLimit {
				break
			}
			board.Rows = append(board.Rows, models.LeaderboardRow{Rank: i + 1, Team: entry.Team, Value: entry.Value})
		}
		view.Leaderboards = append(view.Leaderboards, board)
	}

	return view
}

func loadErrorText(err error) string {
	var loadErr *fantasy.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Error()
	}
	return genericLoadError
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(name string) (models.Category, error) {
	for _, c := range models.Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// FormatValue renders points with two decimals and counts as integers.
func FormatValue(category models.Category, v float64) string {
	if category == models.CategoryPoints {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

func (s *FantasyService) GetStatus() string {
	state := s.repo.State()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📡 *Status:* %s\n", state.Status))
	if state.Snapshot != nil {
		sb.WriteString(fmt.Sprintf("Week %d, loaded %s\n", state.Snapshot.Week, state.Snapshot.LoadedAt.Format(time.RFC1123)))
		sb.WriteString(fmt.Sprintf("%d teams, %d rostered players\n", len(state.Snapshot.Rosters), countRostered(state.Snapshot)))
	}
	if state.Status == models.StatusError {
		sb.WriteString(fmt.Sprintf("⚠️ %s\n", loadErrorText(state.Err)))
	}
	return sb.String()
}

func countRostered(s *models.Snapshot) int {
	n := 0
	for _, r := range s.Rosters {
		n += len(r.Players)
	}
	return n
}

func (s *FantasyService) GetTopPerformers() (string, error) {
	state, err := s.current()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeStaleWarning(&sb, state)
	writeTopPerformers(&sb, state.Snapshot)
	return sb.String(), nil
}

func writeTopPerformers(sb *strings.Builder, snapshot *models.Snapshot) {
	performers := TopPerformers(snapshot)

	sb.WriteString(fmt.Sprintf("🔥 *Week %d Top Performers*\n\n", snapshot.Week))
	if len(performers) == 0 {
		sb.WriteString("No rostered players yet.\n")
		return
	}

	for i, p := range performers {
		name := p.Name()
		if name == "" {
			name = fmt.Sprintf("Player %s", p.PlayerID)
		}
		sb.WriteString(fmt.Sprintf("%d. *%s*", i+1, escape(name)))
		if pos, team := p.Player.Position(), p.Team(); pos != "" || team != "" {
			sb.WriteString(fmt.Sprintf(" (%s - %s)", escape(pos), escape(team)))
		}
		sb.WriteString(fmt.Sprintf(": %.2f pts\n", p.Stats.Points()))
	}
}

func (s *FantasyService) GetLeaderboard(categoryName string) (string, error) {
	category, err := ParseCategory(categoryName)
	if err != nil {
		return "", err
	}

	state, err := s.current()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeStaleWarning(&sb, state)
	writeLeaderboard(&sb, category, Leaderboards(state.Snapshot)[category], state.Snapshot.Week)
	return sb.String(), nil
}

// GetWeeklyReport combines top performers and every leaderboard for the
// scheduled post.
func (s *FantasyService) GetWeeklyReport() (string, error) {
	state, err := s.current()
	if err != nil {
		return "", err
	}
	boards := Leaderboards(state.Snapshot)

	var sb strings.Builder
	writeStaleWarning(&sb, state)
	writeTopPerformers(&sb, state.Snapshot)
	for _, category := range models.Categories {
		sb.WriteString("\n")
		writeLeaderboard(&sb, category, boards[category], state.Snapshot.Week)
	}
	return sb.String(), nil
}

func writeLeaderboard(sb *strings.Builder, category models.Category, entries []models.LeaderboardEntry, week int) {
	sb.WriteString(fmt.Sprintf("🏆 *Week %d %s Leaders*\n\n", week, category))
	if len(entries) == 0 {
		sb.WriteString("No teams to rank.\n")
		return
	}
	for i, entry := range entries {
		if i == leaderboardDisplayLimit {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. *%s* - %s\n", i+1, escape(entry.Team), FormatValue(category, entry.Value)))
	}
}

type candidate struct {
	playerID string
	name     string
}

// WhoHas finds the player whose name best matches and reports which fantasy
// team rosters that player. Rostered players are searched first, then the directory.
func (s *FantasyService) WhoHas(playerName string) (string, error) {
	state, err := s.current()
	if err != nil {
		return "", err
	}
	snapshot := state.Snapshot

	var sb strings.Builder
	writeStaleWarning(&sb, state)

	result := searchPlayers(snapshot, playerName)
	if !result.Found {
		sb.WriteString(fmt.Sprintf("🔍 No player found matching '%s'.", escape(playerName)))
		return sb.String(), nil
	}

	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", escape(result.PlayerName), escape(result.Position), escape(result.ProTeam)))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")

	if result.Rostered {
		sb.WriteString(fmt.Sprintf("*%s*\n", escape(result.TeamName)))
		if result.IsStarter {
			sb.WriteString("Starting\n")
		} else {
			sb.WriteString("Bench\n")
		}
	} else {
		sb.WriteString("Free Agent\n")
	}

	sb.WriteString(fmt.Sprintf("\nWeek %d: %.2f pts", snapshot.Week, result.Points))

	return sb.String(), nil
}

func searchPlayers(s *models.Snapshot, query string) models.WhoHasResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.WhoHasResult{PlayerName: query}
	}

	var rostered []candidate
	seen := make(map[string]bool)
	for _, roster := range s.Rosters {
		for _, id := range roster.Players {
			if p := s.Player(id); p != nil && p.FullName != "" && !seen[id] {
				seen[id] = true
				rostered = append(rostered, candidate{playerID: id, name: p.FullName})
			}
		}
	}

	best, ok := bestMatch(query, rostered)
	if !ok {
		var everyone []candidate
		for id, p := range s.Players {
			if p.FullName != "" && !seen[id] {
				everyone = append(everyone, candidate{playerID: id, name: p.FullName})
			}
		}
		sort.Slice(everyone, func(i, j int) bool {
			return everyone[i].playerID < everyone[j].playerID
		})
		best, ok = bestMatch(query, everyone)
	}
	if !ok {
		return models.WhoHasResult{PlayerName: query}
	}

	player := s.Player(best.playerID)
	result := models.WhoHasResult{
		PlayerName: player.FullName,
		Position:   player.Position(),
		ProTeam:    player.Team,
		Found:      true,
		Points:     s.StatLine(best.playerID).Points(),
	}
	if result.ProTeam == "" {
		result.ProTeam = "FA"
	}

	for _, roster := range s.Rosters {
		if !contains(roster.Players, best.playerID) {
			continue
		}
		result.Rostered = true
		result.IsStarter = contains(roster.Starters, best.playerID)
		result.TeamName = "Unknown"
		if owner, ok := s.User(roster.OwnerID); ok {
			result.TeamName = owner.TeamLabel()
		}
		break
	}

	return result
}

// bestMatch prefers a fuzzy subsequence hit ("mahomes" in "Patrick Mahomes")
// and falls back to Levenshtein similarity for misspellings.
func bestMatch(query string, candidates []candidate) (candidate, bool) {
	if len(candidates) == 0 {
		return candidate{}, false
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return candidates[ranks[0].OriginalIndex], true
	}

	bestIdx := -1
	bestScore := 0.0
	q := strings.ToLower(query)
	for i, name := range names {
		n := strings.ToLower(name)
		distance := fuzzy.LevenshteinDistance(q, n)
		maxLen := float64(max(len(q), len(n)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > whoHasThreshold && similarity > bestScore {
			bestScore = similarity
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return candidate{}, false
	}
	return candidates[bestIdx], true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

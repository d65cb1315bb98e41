// Package handlers exposes the league registry, match analytics and the
// sync pipeline over HTTP.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/puckline/proclubs-stats/internal/league"
	"github.com/puckline/proclubs-stats/internal/stats"
)

// LeagueHandler serves team and player season reports out of the
// registry.
type LeagueHandler struct {
	registry *league.Registry
	logger   *logrus.Logger
}

// NewLeagueHandler creates the handler.
func NewLeagueHandler(registry *league.Registry, logger *logrus.Logger) *LeagueHandler {
	return &LeagueHandler{registry: registry, logger: logger}
}

type teamSummary struct {
	ID           uuid.UUID `json:"id"`
	OfficialName string    `json:"official_name"`
	LeagueLevel  string    `json:"league_level"`
	EAClubID     string    `json:"ea_club_id"`
	Season       int       `json:"season"`
	RosterSize   int       `json:"roster_size"`
}

type teamSeasonReport struct {
	teamSummary

	MatchesPlayed       int     `json:"matches_played"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	Points              int     `json:"points"`
	WinPercentage       float64 `json:"win_percentage"`
	GoalsFor            int     `json:"goals_for"`
	GoalsAgainst        int     `json:"goals_against"`
	GoalDifferential    int     `json:"goal_differential"`
	GoalsPerGame        float64 `json:"goals_per_game"`
	GoalsAgainstPerGame float64 `json:"goals_against_per_game"`
	ShootingPercentage  float64 `json:"shooting_percentage"`
	PowerplayPercentage float64 `json:"powerplay_percentage"`
	PenaltyKillPct      float64 `json:"penalty_kill_percentage"`
	TimeOnAttackPerGame float64 `json:"time_on_attack_per_game"`
}

type playerTeamReport struct {
	TeamID         uuid.UUID `json:"team_id"`
	Season         int       `json:"season"`
	GamesPlayed    int       `json:"games_played"`
	Goals          int       `json:"goals"`
	Assists        int       `json:"assists"`
	Points         int       `json:"points"`
	Shots          int       `json:"shots"`
	Hits           int       `json:"hits"`
	Takeaways      int       `json:"takeaways"`
	Giveaways      int       `json:"giveaways"`
	PenaltyMinutes int       `json:"penalty_minutes"`
	PlusMinus      int       `json:"plus_minus"`
	ShootingPct    float64   `json:"shooting_percentage"`
	PointsPerGame  float64   `json:"points_per_game"`
	TkGvRatio      float64   `json:"takeaway_giveaway_ratio"`
	Positions      []string  `json:"positions_played"`
}

type playerReport struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Position    string             `json:"position"`
	EAID        string             `json:"ea_id"`
	EAName      string             `json:"ea_name"`
	CurrentTeam *uuid.UUID         `json:"current_team,omitempty"`
	Manager     *managerReport     `json:"manager,omitempty"`
	Teams       []playerTeamReport `json:"teams"`
}

type managerReport struct {
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ListTeams returns a summary of every registered team.
func (h *LeagueHandler) ListTeams(c *gin.Context) {
	teams := h.registry.Teams()
	summaries := make([]teamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, summarizeTeam(t))
	}
	c.JSON(http.StatusOK, gin.H{"teams": summaries})
}

// GetTeam returns one team's full season report.
func (h *LeagueHandler) GetTeam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}
	team := h.registry.TeamByID(id)
	if team == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	s := team.Stats
	c.JSON(http.StatusOK, teamSeasonReport{
		teamSummary:         summarizeTeam(team),
		MatchesPlayed:       s.MatchesPlayed,
		Wins:                s.Wins,
		Losses:              s.Losses,
		Points:              s.Points(),
		WinPercentage:       s.WinPercentage(),
		GoalsFor:            s.GoalsFor,
		GoalsAgainst:        s.GoalsAgainst,
		GoalDifferential:    s.GoalDifferential(),
		GoalsPerGame:        s.GoalsPerGame(),
		GoalsAgainstPerGame: s.GoalsAgainstPerGame(),
		ShootingPercentage:  s.ShootingPercentage(),
		PowerplayPercentage: s.PowerplayPercentage(),
		PenaltyKillPct:      s.PenaltyKillPercentage(),
		TimeOnAttackPerGame: s.TimeOnAttackPerGame(),
	})
}

// GetTeamRoster returns the current roster with each player's stats for
// this team.
func (h *LeagueHandler) GetTeamRoster(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
		return
	}
	team := h.registry.TeamByID(id)
	if team == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}

	roster := make([]playerReport, 0, len(team.CurrentRoster))
	for _, p := range team.CurrentRoster {
		report := buildPlayerReport(p)
		report.Teams = filterTeamReports(report.Teams, team.ID)
		roster = append(roster, report)
	}
	c.JSON(http.StatusOK, gin.H{"team_id": team.ID, "roster": roster})
}

// GetPlayer returns one player's report across every team played for.
func (h *LeagueHandler) GetPlayer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player id"})
		return
	}
	player := h.registry.PlayerByID(id)
	if player == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		return
	}
	c.JSON(http.StatusOK, buildPlayerReport(player))
}

// ListPlayers returns every registered player's report.
func (h *LeagueHandler) ListPlayers(c *gin.Context) {
	players := h.registry.Players()
	reports := make([]playerReport, 0, len(players))
	for _, p := range players {
		reports = append(reports, buildPlayerReport(p))
	}
	c.JSON(http.StatusOK, gin.H{"players": reports})
}

func summarizeTeam(t *league.LeagueTeam) teamSummary {
	return teamSummary{
		ID:           t.ID,
		OfficialName: t.OfficialName,
		LeagueLevel:  string(t.LeagueLevel),
		EAClubID:     t.EAClubID,
		Season:       t.Stats.Season,
		RosterSize:   len(t.CurrentRoster),
	}
}

func buildPlayerReport(p *league.LeaguePlayer) playerReport {
	report := playerReport{
		ID:       p.ID,
		Name:     p.Name,
		Position: string(p.Position),
		EAID:     p.EAID,
		EAName:   p.EAName,
		Teams:    make([]playerTeamReport, 0, len(p.TeamStats)),
	}
	if p.CurrentTeam != uuid.Nil {
		teamID := p.CurrentTeam
		report.CurrentTeam = &teamID
	}
	if p.Manager != nil {
		report.Manager = &managerReport{
			Role:     p.Manager.Role.DisplayName(),
			IsActive: p.Manager.IsActive,
		}
	}
	for teamID, bucket := range p.TeamStats {
		report.Teams = append(report.Teams, buildTeamReport(teamID, bucket))
	}
	return report
}

func buildTeamReport(teamID uuid.UUID, s *stats.PlayerStats) playerTeamReport {
	positions := s.PositionsPlayed()
	positionNames := make([]string, 0, len(positions))
	for _, pos := range positions {
		positionNames = append(positionNames, string(pos))
	}
	return playerTeamReport{
		TeamID:         teamID,
		Season:         s.Season,
		GamesPlayed:    s.GamesPlayed,
		Goals:          s.Goals(),
		Assists:        s.Assists(),
		Points:         s.Points(),
		Shots:          s.Shots(),
		Hits:           s.Hits(),
		Takeaways:      s.Takeaways(),
		Giveaways:      s.Giveaways(),
		PenaltyMinutes: s.PenaltyMinutes(),
		PlusMinus:      s.PlusMinus(),
		ShootingPct:    s.ShootingPercentage(),
		PointsPerGame:  s.PointsPerGame(),
		TkGvRatio:      s.TakeawayGiveawayRatio(),
		Positions:      positionNames,
	}
}

func filterTeamReports(reports []playerTeamReport, teamID uuid.UUID) []playerTeamReport {
	filtered := make([]playerTeamReport, 0, 1)
	for _, r := range reports {
		if r.TeamID == teamID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

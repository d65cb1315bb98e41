package analytics

import (
	"fmt"

	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/pkg/types"
)

// TeamGameSummary is one club's rolled-up report of a single game,
// shaped for display rather than aggregation.
type TeamGameSummary struct {
	ClubID   string `json:"club_id"`
	ClubName string `json:"club_name"`

	Goals        int `json:"goals"`
	GoalsAgainst int `json:"goals_against"`
	Shots        int `json:"shots"`

	// TimeOnAttack is formatted MM:SS.
	TimeOnAttack        string  `json:"time_on_attack"`
	TimeOnAttackSeconds int     `json:"time_on_attack_seconds"`
	PassingPct          float64 `json:"passing_pct"`

	PowerplayPct  float64 `json:"powerplay_pct"`
	PowerplayLine string  `json:"powerplay"`

	PenaltyMinutes int `json:"penalty_minutes"`
	MajorPenalties int `json:"major_penalties"`
	MinorPenalties int `json:"minor_penalties"`
	TimesPenalized int `json:"times_penalized"`

	BlockedShots     int `json:"blocked_shots"`
	ShorthandedGoals int `json:"shorthanded_goals"`
	// PenaltyKillOpportunities estimates shorthanded situations as the
	// number of penalties taken.
	PenaltyKillOpportunities int `json:"penalty_kill_opportunities"`

	// PossessionByPosition maps each skater position to the seconds of
	// puck possession its players logged.
	PossessionByPosition map[types.Position]int `json:"possession_by_position"`
}

// BuildTeamGameSummary summarizes one club's game from a parsed match.
// Returns nil when the club did not take part in the match.
func BuildTeamGameSummary(m *game.Match, clubID string) *TeamGameSummary {
	club, ok := m.Clubs[clubID]
	if !ok || club == nil {
		return nil
	}

	s := &TeamGameSummary{
		ClubID:               clubID,
		ClubName:             club.Details.Name,
		Goals:                club.Goals.Int(),
		GoalsAgainst:         club.GoalsAgainst.Int(),
		Shots:                club.Shots.Int(),
		TimeOnAttackSeconds:  club.TimeOnAttack.Int(),
		TimeOnAttack:         formatSeconds(club.TimeOnAttack.Int()),
		PossessionByPosition: make(map[types.Position]int),
	}

	if passes := club.PassesAttempted.Int(); passes > 0 {
		s.PassingPct = round2(float64(club.PassesCompleted.Int()) / float64(passes) * 100)
	}

	ppg, ppo := club.PowerplayGoals.Int(), club.PowerplayOpportunities.Int()
	s.PowerplayLine = fmt.Sprintf("%d / %d", ppg, ppo)
	if ppo > 0 {
		s.PowerplayPct = round2(float64(ppg) / float64(ppo) * 100)
	}

	for _, p := range m.GetClubPlayers(clubID) {
		if p == nil {
			continue
		}
		s.PenaltyMinutes += p.PenaltyMinutes.Int()
		s.BlockedShots += p.BlockedShots.Int()
		s.ShorthandedGoals += p.ShorthandedGoals.Int()

		if pos := types.ParsePosition(p.Position); pos != types.PositionUnknown {
			s.PossessionByPosition[pos] += p.PossessionSeconds.Int()
		}
	}

	s.MajorPenalties, s.MinorPenalties = decomposePenalties(s.PenaltyMinutes)
	s.TimesPenalized = s.MajorPenalties + s.MinorPenalties
	s.PenaltyKillOpportunities = s.TimesPenalized

	return s
}

// decomposePenalties splits total penalty minutes into five-minute
// majors and two-minute minors, taking the smallest number of majors
// that leaves an even remainder.
func decomposePenalties(pim int) (majors, minors int) {
	for majors = 0; majors*5 <= pim; majors++ {
		rem := pim - majors*5
		if rem%2 == 0 {
			return majors, rem / 2
		}
	}
	// Odd totals under five minutes have no exact split; treat the
	// whole total as minors and drop the odd minute.
	return 0, pim / 2
}

func formatSeconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

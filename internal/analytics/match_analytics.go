// Package analytics derives cross-club insight from a single match:
// possession splits, efficiency rates, special teams conversion and a
// momentum estimate. Everything is computed from the match record alone.
package analytics

import (
	"math"

	"github.com/puckline/proclubs-stats/internal/models/game"
)

// Momentum event weights. Shots drive momentum hardest, takeaway
// exchanges next, hits the least.
const (
	shotWeight     = 1.0
	hitWeight      = 0.5
	takeawayWeight = 0.7
)

// PossessionMetrics is the puck-possession split between the two clubs.
// The split and differential come from the aggregate possession seconds;
// time on attack is a separate differential from the club lines.
type PossessionMetrics struct {
	HomePossessionSeconds int     `json:"home_possession_seconds"`
	AwayPossessionSeconds int     `json:"away_possession_seconds"`
	HomePossessionPct     float64 `json:"home_possession_pct"`
	AwayPossessionPct     float64 `json:"away_possession_pct"`
	PossessionDiff        int     `json:"possession_differential"`
	HomeTimeOnAttack      int     `json:"home_time_on_attack"`
	AwayTimeOnAttack      int     `json:"away_time_on_attack"`
	TimeOnAttackDiff      int     `json:"time_on_attack_differential"`
}

// TeamEfficiency carries one club's conversion rates for a match.
type TeamEfficiency struct {
	ShootingPct          float64 `json:"shooting_pct"`
	PassingPct           float64 `json:"passing_pct"`
	PossessionEfficiency float64 `json:"possession_efficiency"`
}

// EfficiencyMetrics pairs both clubs' conversion rates.
type EfficiencyMetrics struct {
	Home TeamEfficiency `json:"home"`
	Away TeamEfficiency `json:"away"`
}

// TeamSpecialTeams carries one club's powerplay and penalty kill rates.
type TeamSpecialTeams struct {
	PowerplayGoals         int     `json:"powerplay_goals"`
	PowerplayOpportunities int     `json:"powerplay_opportunities"`
	PowerplayPct           float64 `json:"powerplay_pct"`
	PenaltyKillPct         float64 `json:"penalty_kill_pct"`
}

// SpecialTeamsMetrics pairs both clubs' special teams rates.
type SpecialTeamsMetrics struct {
	Home TeamSpecialTeams `json:"home"`
	Away TeamSpecialTeams `json:"away"`
}

// MomentumMetrics is a weighted estimate of which club controlled the
// game, built from shot, hit and takeaway differentials.
type MomentumMetrics struct {
	ShotDifferential     int     `json:"shot_differential"`
	HitDifferential      int     `json:"hit_differential"`
	TakeawayDifferential int     `json:"takeaway_differential"`
	HomeMomentum         float64 `json:"home_momentum"`
	AwayMomentum         float64 `json:"away_momentum"`
}

// MatchMetrics bundles every analytics view of one match.
type MatchMetrics struct {
	MatchID      string               `json:"match_id"`
	Possession   *PossessionMetrics   `json:"possession"`
	Efficiency   *EfficiencyMetrics   `json:"efficiency"`
	SpecialTeams *SpecialTeamsMetrics `json:"special_teams"`
	Momentum     *MomentumMetrics     `json:"momentum"`
}

// MatchAnalytics computes per-match metrics. Each method returns nil
// when the match is missing the home or away club data it needs, so
// callers never see partial numbers built from one side.
type MatchAnalytics struct {
	match *game.Match
}

// NewMatchAnalytics wraps a parsed match for analysis.
func NewMatchAnalytics(m *game.Match) *MatchAnalytics {
	return &MatchAnalytics{match: m}
}

// Possession returns the puck-possession split, taken from each club's
// aggregate possession seconds. Time on attack measures zone pressure,
// not possession, so it only contributes its own differential. When
// neither club held the puck the split is an even 50/50, not a division
// error.
func (a *MatchAnalytics) Possession() *PossessionMetrics {
	home, away := a.match.HomeClub(), a.match.AwayClub()
	homeAgg, awayAgg := a.match.HomeAggregate(), a.match.AwayAggregate()
	if home == nil || away == nil || homeAgg == nil || awayAgg == nil {
		return nil
	}

	homePoss := homeAgg.PossessionSeconds.Int()
	awayPoss := awayAgg.PossessionSeconds.Int()
	total := homePoss + awayPoss

	homePct, awayPct := 50.0, 50.0
	if total > 0 {
		homePct = round2(float64(homePoss) / float64(total) * 100)
		awayPct = round2(float64(awayPoss) / float64(total) * 100)
	}

	return &PossessionMetrics{
		HomePossessionSeconds: homePoss,
		AwayPossessionSeconds: awayPoss,
		HomePossessionPct:     homePct,
		AwayPossessionPct:     awayPct,
		PossessionDiff:        homePoss - awayPoss,
		HomeTimeOnAttack:      home.TimeOnAttack.Int(),
		AwayTimeOnAttack:      away.TimeOnAttack.Int(),
		TimeOnAttackDiff:      home.TimeOnAttack.Int() - away.TimeOnAttack.Int(),
	}
}

// Efficiency returns both clubs' shooting, passing and possession
// conversion rates. Rates with a zero denominator report 0.0.
func (a *MatchAnalytics) Efficiency() *EfficiencyMetrics {
	home, away := a.match.HomeClub(), a.match.AwayClub()
	if home == nil || away == nil {
		return nil
	}
	return &EfficiencyMetrics{
		Home: teamEfficiency(home),
		Away: teamEfficiency(away),
	}
}

func teamEfficiency(club *game.ClubGameStats) TeamEfficiency {
	eff := TeamEfficiency{
		// Possession efficiency is attack time as a share of a full
		// regulation game (3600 seconds).
		PossessionEfficiency: round2(float64(club.TimeOnAttack.Int()) / 3600 * 100),
	}
	if shots := club.Shots.Int(); shots > 0 {
		eff.ShootingPct = round2(float64(club.Goals.Int()) / float64(shots) * 100)
	}
	if passes := club.PassesAttempted.Int(); passes > 0 {
		eff.PassingPct = round2(float64(club.PassesCompleted.Int()) / float64(passes) * 100)
	}
	return eff
}

// SpecialTeams returns both clubs' powerplay conversion and penalty
// kill rates. The match record carries no shorthanded data, so a club's
// penalty kill is derived from what the opponent's powerplay did not
// convert: 100 minus the opponent's powerplay percentage. A club whose
// opponent had no powerplays reports a perfect 100.0 kill rate.
func (a *MatchAnalytics) SpecialTeams() *SpecialTeamsMetrics {
	home, away := a.match.HomeClub(), a.match.AwayClub()
	if home == nil || away == nil {
		return nil
	}

	homeST := teamSpecialTeams(home)
	awayST := teamSpecialTeams(away)
	homeST.PenaltyKillPct = round2(100 - awayST.PowerplayPct)
	awayST.PenaltyKillPct = round2(100 - homeST.PowerplayPct)

	return &SpecialTeamsMetrics{Home: homeST, Away: awayST}
}

func teamSpecialTeams(club *game.ClubGameStats) TeamSpecialTeams {
	st := TeamSpecialTeams{
		PowerplayGoals:         club.PowerplayGoals.Int(),
		PowerplayOpportunities: club.PowerplayOpportunities.Int(),
	}
	if st.PowerplayOpportunities > 0 {
		st.PowerplayPct = round2(float64(st.PowerplayGoals) / float64(st.PowerplayOpportunities) * 100)
	}
	return st
}

// Momentum returns the weighted control estimate, built entirely from
// the per-club aggregate rollups. The takeaway differential nets each
// club's giveaways against its takeaways first. A positive score is
// home momentum, a negative one away momentum; the losing side reports
// zero.
func (a *MatchAnalytics) Momentum() *MomentumMetrics {
	homeAgg, awayAgg := a.match.HomeAggregate(), a.match.AwayAggregate()
	if homeAgg == nil || awayAgg == nil {
		return nil
	}

	shotDiff := homeAgg.Shots.Int() - awayAgg.Shots.Int()
	hitDiff := homeAgg.Hits.Int() - awayAgg.Hits.Int()
	takeawayDiff := (homeAgg.Takeaways.Int() - homeAgg.Giveaways.Int()) -
		(awayAgg.Takeaways.Int() - awayAgg.Giveaways.Int())

	score := float64(shotDiff)*shotWeight +
		float64(hitDiff)*hitWeight +
		float64(takeawayDiff)*takeawayWeight

	return &MomentumMetrics{
		ShotDifferential:     shotDiff,
		HitDifferential:      hitDiff,
		TakeawayDifferential: takeawayDiff,
		HomeMomentum:         round2(math.Max(0, score)),
		AwayMomentum:         round2(math.Max(0, -score)),
	}
}

// AllMetrics computes every view at once. Individual sections are nil
// when the match lacks the data for them.
func (a *MatchAnalytics) AllMetrics() *MatchMetrics {
	return &MatchMetrics{
		MatchID:      a.match.MatchID,
		Possession:   a.Possession(),
		Efficiency:   a.Efficiency(),
		SpecialTeams: a.SpecialTeams(),
		Momentum:     a.Momentum(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

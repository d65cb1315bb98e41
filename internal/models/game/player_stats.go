package game

import (
	"encoding/json"
	"strings"

	"github.com/puckline/proclubs-stats/pkg/types"
)

// PlayerGameStats is one player's full statistic line for one game, as
// returned by the Pro Clubs API. Every numeric field arrives as a string
// and is coerced on load; the "--" placeholder parses to an absent value.
// Records are immutable once constructed and shared by reference between
// the Match that parsed them and every season accumulator that stores
// the same game.
type PlayerGameStats struct {
	// Basic information
	PlayerLevel        FlexInt `json:"class"`
	Position           string  `json:"position"`
	PosSorted          FlexInt `json:"posSorted"`
	PlayerName         string  `json:"playername"`
	ClientPlatform     string  `json:"clientPlatform"`
	PlayerLevelDisplay FlexInt `json:"playerLevel"`

	// Game status
	IsGuest        FlexInt `json:"isGuest"`
	PlayerDNF      FlexInt `json:"player_dnf"`
	OnlineGameType string  `json:"pNhlOnlineGameType"`

	// Team information
	TeamID         FlexInt `json:"teamId"`
	TeamSide       FlexInt `json:"teamSide"`
	OpponentClubID string  `json:"opponentClubId"`
	OpponentTeamID FlexInt `json:"opponentTeamId"`
	OpponentScore  FlexInt `json:"opponentScore"`
	Score          FlexInt `json:"score"`

	// Ratings
	RatingDefense  FlexFloat `json:"ratingDefense"`
	RatingOffense  FlexFloat `json:"ratingOffense"`
	RatingTeamplay FlexFloat `json:"ratingTeamplay"`

	// Time stats
	TOI        FlexInt `json:"toi"`
	TOISeconds FlexInt `json:"toiseconds"`

	// Skater stats
	Assists           FlexInt   `json:"skassists"`
	BlockedShots      FlexInt   `json:"skbs"`
	Deflections       FlexInt   `json:"skdeflections"`
	FaceoffsLost      FlexInt   `json:"skfol"`
	FaceoffPct        FlexFloat `json:"skfopct"`
	FaceoffsWon       FlexInt   `json:"skfow"`
	Giveaways         FlexInt   `json:"skgiveaways"`
	Goals             FlexInt   `json:"skgoals"`
	GameWinningGoals  FlexInt   `json:"skgwg"`
	Hits              FlexInt   `json:"skhits"`
	Interceptions     FlexInt   `json:"skinterceptions"`
	PassAttempts      FlexInt   `json:"skpassattempts"`
	Passes            FlexInt   `json:"skpasses"`
	PassPct           FlexFloat `json:"skpasspct"`
	PenaltiesDrawn    FlexInt   `json:"skpenaltiesdrawn"`
	PenaltyMinutes    FlexInt   `json:"skpim"`
	PKClearZone       FlexInt   `json:"skpkclearzone"`
	PlusMinus         FlexInt   `json:"skplusmin"`
	PossessionSeconds FlexInt   `json:"skpossession"`
	PowerplayGoals    FlexInt   `json:"skppg"`
	SaucerPasses      FlexInt   `json:"sksaucerpasses"`
	ShorthandedGoals  FlexInt   `json:"skshg"`
	ShotAttempts      FlexInt   `json:"skshotattempts"`
	ShotOnNetPct      FlexFloat `json:"skshotonnetpct"`
	ShotPct           FlexFloat `json:"skshotpct"`
	Shots             FlexInt   `json:"skshots"`
	Takeaways         FlexInt   `json:"sktakeaways"`

	// Goalie stats
	BreakawaySavePct   FlexFloat `json:"glbrksavepct"`
	BreakawaySaves     FlexInt   `json:"glbrksaves"`
	BreakawayShots     FlexInt   `json:"glbrkshots"`
	DesperationSaves   FlexInt   `json:"gldsaves"`
	GoalsAgainst       FlexInt   `json:"glga"`
	GoalsAgainstAvg    FlexFloat `json:"glgaa"`
	PenaltyShotSavePct FlexFloat `json:"glpensavepct"`
	PenaltyShotSaves   FlexInt   `json:"glpensaves"`
	PenaltyShots       FlexInt   `json:"glpenshots"`
	GoaliePKClearZone  FlexInt   `json:"glpkclearzone"`
	PokeChecks         FlexInt   `json:"glpokechecks"`
	SavePct            FlexFloat `json:"glsavepct"`
	Saves              FlexInt   `json:"glsaves"`
	ShotsFaced         FlexInt   `json:"glshots"`
	ShutoutPeriods     FlexInt   `json:"glsoperiods"`
}

// UnmarshalJSON decodes an upstream player stat object. The whole record
// is scrubbed for the "--" placeholder before any field conversion, and
// the first coercion failure or missing field is reported as a
// ValidationError naming the field.
func (p *PlayerGameStats) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d := newFieldDecoder(raw)

	p.PlayerLevel = d.flexInt("class")
	p.Position = strings.ToLower(d.str("position"))
	p.PosSorted = d.flexInt("posSorted")
	p.PlayerName = d.str("playername")
	p.ClientPlatform = d.str("clientPlatform")
	p.PlayerLevelDisplay = d.flexInt("playerLevel")

	p.IsGuest = d.flexInt("isGuest")
	p.PlayerDNF = d.flexInt("player_dnf")
	p.OnlineGameType = d.str("pNhlOnlineGameType")

	p.TeamID = d.flexInt("teamId")
	p.TeamSide = d.flexInt("teamSide")
	p.OpponentClubID = d.str("opponentClubId")
	p.OpponentTeamID = d.flexInt("opponentTeamId")
	p.OpponentScore = d.flexInt("opponentScore")
	p.Score = d.flexInt("score")

	p.RatingDefense = d.flexFloat("ratingDefense")
	p.RatingOffense = d.flexFloat("ratingOffense")
	p.RatingTeamplay = d.flexFloat("ratingTeamplay")

	p.TOI = d.flexInt("toi")
	p.TOISeconds = d.flexInt("toiseconds")

	p.Assists = d.flexInt("skassists")
	p.BlockedShots = d.flexInt("skbs")
	p.Deflections = d.flexInt("skdeflections")
	p.FaceoffsLost = d.flexInt("skfol")
	p.FaceoffPct = d.flexFloat("skfopct")
	p.FaceoffsWon = d.flexInt("skfow")
	p.Giveaways = d.flexInt("skgiveaways")
	p.Goals = d.flexInt("skgoals")
	p.GameWinningGoals = d.flexInt("skgwg")
	p.Hits = d.flexInt("skhits")
	p.Interceptions = d.flexInt("skinterceptions")
	p.PassAttempts = d.flexInt("skpassattempts")
	p.Passes = d.flexInt("skpasses")
	p.PassPct = d.flexFloat("skpasspct")
	p.PenaltiesDrawn = d.flexInt("skpenaltiesdrawn")
	p.PenaltyMinutes = d.flexInt("skpim")
	p.PKClearZone = d.flexInt("skpkclearzone")
	p.PlusMinus = d.flexInt("skplusmin")
	p.PossessionSeconds = d.flexInt("skpossession")
	p.PowerplayGoals = d.flexInt("skppg")
	p.SaucerPasses = d.flexInt("sksaucerpasses")
	p.ShorthandedGoals = d.flexInt("skshg")
	p.ShotAttempts = d.flexInt("skshotattempts")
	p.ShotOnNetPct = d.flexFloat("skshotonnetpct")
	p.ShotPct = d.flexFloat("skshotpct")
	p.Shots = d.flexInt("skshots")
	p.Takeaways = d.flexInt("sktakeaways")

	p.BreakawaySavePct = d.flexFloat("glbrksavepct")
	p.BreakawaySaves = d.flexInt("glbrksaves")
	p.BreakawayShots = d.flexInt("glbrkshots")
	p.DesperationSaves = d.flexInt("gldsaves")
	p.GoalsAgainst = d.flexInt("glga")
	p.GoalsAgainstAvg = d.flexFloat("glgaa")
	p.PenaltyShotSavePct = d.flexFloat("glpensavepct")
	p.PenaltyShotSaves = d.flexInt("glpensaves")
	p.PenaltyShots = d.flexInt("glpenshots")
	p.GoaliePKClearZone = d.flexInt("glpkclearzone")
	p.PokeChecks = d.flexInt("glpokechecks")
	p.SavePct = d.flexFloat("glsavepct")
	p.Saves = d.flexInt("glsaves")
	p.ShotsFaced = d.flexInt("glshots")
	p.ShutoutPeriods = d.flexInt("glsoperiods")

	return d.Err()
}

// PositionCode returns the parsed position for this game.
func (p *PlayerGameStats) PositionCode() types.Position {
	return types.ParsePosition(p.Position)
}

// IsGoalie reports whether the player appeared in goal for this game.
func (p *PlayerGameStats) IsGoalie() bool {
	return p.Position == "goalie"
}

// Points returns total points (goals + assists).
func (p *PlayerGameStats) Points() int {
	return p.Goals.Int() + p.Assists.Int()
}

// FaceoffsTotal returns total faceoffs taken.
func (p *PlayerGameStats) FaceoffsTotal() int {
	return p.FaceoffsWon.Int() + p.FaceoffsLost.Int()
}

// FaceoffPercentage returns the faceoff win percentage (0-100). The
// second return is false if no faceoffs were taken.
func (p *PlayerGameStats) FaceoffPercentage() (float64, bool) {
	total := p.FaceoffsTotal()
	if total == 0 {
		return 0, false
	}
	return round2(float64(p.FaceoffsWon.Int()) / float64(total) * 100), true
}

// ShotsMissed returns the number of shot attempts that missed the net.
func (p *PlayerGameStats) ShotsMissed() int {
	missed := p.ShotAttempts.Int() - p.Shots.Int()
	if missed < 0 {
		return 0
	}
	return missed
}

// ShootingPercentage returns goals over shots on goal (0-100). The
// second return is false if no shots were taken.
func (p *PlayerGameStats) ShootingPercentage() (float64, bool) {
	if p.Shots.Int() == 0 {
		return 0, false
	}
	return round2(float64(p.Goals.Int()) / float64(p.Shots.Int()) * 100), true
}

// PassesMissed returns the number of incomplete passes.
func (p *PlayerGameStats) PassesMissed() int {
	missed := p.PassAttempts.Int() - p.Passes.Int()
	if missed < 0 {
		return 0
	}
	return missed
}

// PassingPercentage returns completed over attempted passes (0-100). The
// second return is false if no passes were attempted.
func (p *PlayerGameStats) PassingPercentage() (float64, bool) {
	if p.PassAttempts.Int() == 0 {
		return 0, false
	}
	return round2(float64(p.Passes.Int()) / float64(p.PassAttempts.Int()) * 100), true
}

// GoalsSaved returns total goals saved. The second return is false
// unless the player is a goalie.
func (p *PlayerGameStats) GoalsSaved() (int, bool) {
	if !p.IsGoalie() {
		return 0, false
	}
	saved := p.ShotsFaced.Int() - p.GoalsAgainst.Int()
	if saved < 0 {
		saved = 0
	}
	return saved, true
}

// SavePercentage returns the share of shots faced that were saved
// (0-100). The second return is false unless the player is a goalie who
// faced at least one shot.
func (p *PlayerGameStats) SavePercentage() (float64, bool) {
	if !p.IsGoalie() || p.ShotsFaced.Int() == 0 {
		return 0, false
	}
	return round2(float64(p.Saves.Int()) / float64(p.ShotsFaced.Int()) * 100), true
}

// MajorPenalties returns the number of major penalties (5 minutes each).
func (p *PlayerGameStats) MajorPenalties() int {
	return p.PenaltyMinutes.Int() / 5
}

// MinorPenalties returns the number of minor penalties (2 minutes each).
func (p *PlayerGameStats) MinorPenalties() int {
	return (p.PenaltyMinutes.Int() % 5) / 2
}

// TotalPenalties returns the total number of penalties taken.
func (p *PlayerGameStats) TotalPenalties() int {
	return p.MajorPenalties() + p.MinorPenalties()
}

// PointsPer60 returns points per 60 minutes of ice time, or 0 with no
// ice time.
func (p *PlayerGameStats) PointsPer60() float64 {
	if p.TOI.Int() == 0 {
		return 0
	}
	return round2(float64(p.Points()*60) / float64(p.TOI.Int()))
}

// PossessionPerMinute returns seconds of puck possession per minute of
// ice time, or 0 with no ice time.
func (p *PlayerGameStats) PossessionPerMinute() float64 {
	if p.TOI.Int() == 0 {
		return 0
	}
	return round2(float64(p.PossessionSeconds.Int()) / float64(p.TOI.Int()))
}

// ShotEfficiency returns goals over all shot attempts (0-100), a more
// punishing rate than ShootingPercentage since it includes missed shots.
// The second return is false if there were no attempts.
func (p *PlayerGameStats) ShotEfficiency() (float64, bool) {
	if p.ShotAttempts.Int() == 0 {
		return 0, false
	}
	return round2(float64(p.Goals.Int()) / float64(p.ShotAttempts.Int()) * 100), true
}

// TakeawayGiveawayRatio returns takeaways over giveaways. The second
// return is false if there were no giveaways.
func (p *PlayerGameStats) TakeawayGiveawayRatio() (float64, bool) {
	if p.Giveaways.Int() == 0 {
		return 0, false
	}
	return round2(float64(p.Takeaways.Int()) / float64(p.Giveaways.Int())), true
}

// PenaltyDifferential returns net penalties (drawn - taken).
func (p *PlayerGameStats) PenaltyDifferential() int {
	return p.PenaltiesDrawn.Int() - p.TotalPenalties()
}

// DefensiveActionsPerMinute returns hits, blocks and takeaways per
// minute of ice time.
func (p *PlayerGameStats) DefensiveActionsPerMinute() float64 {
	if p.TOI.Int() == 0 {
		return 0
	}
	actions := p.Hits.Int() + p.BlockedShots.Int() + p.Takeaways.Int()
	return round2(float64(actions) / float64(p.TOI.Int()))
}

// OffensiveImpact weighs goals, assists and shots per minute of ice time.
func (p *PlayerGameStats) OffensiveImpact() float64 {
	if p.TOI.Int() == 0 {
		return 0
	}
	impact := float64(p.Goals.Int()*2) + float64(p.Assists.Int()) + float64(p.Shots.Int())*0.5
	return round2(impact / float64(p.TOI.Int()))
}

// DefensiveImpact weighs positive defensive actions against giveaways
// per minute of ice time.
func (p *PlayerGameStats) DefensiveImpact() float64 {
	if p.TOI.Int() == 0 {
		return 0
	}
	impact := p.Hits.Int() + p.BlockedShots.Int() + p.Takeaways.Int() - p.Giveaways.Int()
	return round2(float64(impact) / float64(p.TOI.Int()))
}

// AggregateStats is the upstream API's own pre-summed per-club rollup of
// all its players' stats for one match. It shares the player stat wire
// shape, so the same record type serves both.
type AggregateStats = PlayerGameStats

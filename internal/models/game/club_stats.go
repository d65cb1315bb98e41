package game

import (
	"encoding/json"
)

// CustomKit is a club's custom team kit configuration.
type CustomKit struct {
	IsCustomTeam FlexInt `json:"isCustomTeam"`
	CrestAssetID string  `json:"crestAssetId"`
	UseBaseAsset FlexInt `json:"useBaseAsset"`
}

func (k *CustomKit) decodeFrom(raw map[string]interface{}, d *fieldDecoder) {
	sub := &fieldDecoder{raw: raw}
	k.IsCustomTeam = sub.flexInt("isCustomTeam")
	k.CrestAssetID = sub.str("crestAssetId")
	k.UseBaseAsset = sub.flexInt("useBaseAsset")
	if sub.err != nil && d.err == nil {
		d.err = sub.err
	}
}

// ClubDetails carries the nested club identity block on a club record.
type ClubDetails struct {
	Name      string    `json:"name"`
	ClubID    FlexInt   `json:"clubId"`
	RegionID  FlexInt   `json:"regionId"`
	TeamID    FlexInt   `json:"teamId"`
	CustomKit CustomKit `json:"customKit"`
}

func (c *ClubDetails) decodeFrom(raw map[string]interface{}, d *fieldDecoder) {
	sub := &fieldDecoder{raw: raw}
	c.Name = sub.str("name")
	c.ClubID = sub.flexInt("clubId")
	c.RegionID = sub.flexInt("regionId")
	c.TeamID = sub.flexInt("teamId")
	if kit := sub.object("customKit"); kit != nil {
		c.CustomKit.decodeFrom(kit, sub)
	}
	if sub.err != nil && d.err == nil {
		d.err = sub.err
	}
}

// ClubGameStats is one club's per-game line: score, shots, passing,
// special teams, time on attack, plus nested club identity and the
// home/away side flag. Field keys are the upstream wire contract,
// misspellings and abbreviations included.
type ClubGameStats struct {
	// Basic information
	ClubDivision   FlexInt `json:"clubDivision"`
	OnlineGameType string  `json:"cNhlOnlineGameType"`

	// Game results
	GoalsAgainstRaw   FlexInt `json:"garaw"`
	GoalsForRaw       FlexInt `json:"gfraw"`
	Losses            FlexInt `json:"losses"`
	Result            FlexInt `json:"result"`
	Score             FlexInt `json:"score"`
	ScoreString       string  `json:"scoreString"`
	WinnerByDNF       FlexInt `json:"winnerByDnf"`
	WinnerByGoalieDNF FlexInt `json:"winnerByGoalieDnf"`

	// Team stats
	MemberString           string  `json:"memberString"`
	PassesAttempted        FlexInt `json:"passa"`
	PassesCompleted        FlexInt `json:"passc"`
	PowerplayGoals         FlexInt `json:"ppg"`
	PowerplayOpportunities FlexInt `json:"ppo"`
	Shots                  FlexInt `json:"shots"`
	TeamArtAbbr            string  `json:"teamArtAbbr"`
	TeamSide               FlexInt `json:"teamSide"`
	TimeOnAttack           FlexInt `json:"toa"`

	// Opponent info
	OpponentClubID      string  `json:"opponentClubId"`
	OpponentScore       FlexInt `json:"opponentScore"`
	OpponentTeamArtAbbr string  `json:"opponentTeamArtAbbr"`

	// Club details and final goal counts
	Details      ClubDetails `json:"details"`
	Goals        FlexInt     `json:"goals"`
	GoalsAgainst FlexInt     `json:"goalsAgainst"`
}

// UnmarshalJSON decodes an upstream club stat object with the same
// scrub-then-coerce pass as player records.
func (c *ClubGameStats) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d := newFieldDecoder(raw)

	c.ClubDivision = d.flexInt("clubDivision")
	c.OnlineGameType = d.str("cNhlOnlineGameType")

	c.GoalsAgainstRaw = d.flexInt("garaw")
	c.GoalsForRaw = d.flexInt("gfraw")
	c.Losses = d.flexInt("losses")
	c.Result = d.flexInt("result")
	c.Score = d.flexInt("score")
	c.ScoreString = d.str("scoreString")
	c.WinnerByDNF = d.flexInt("winnerByDnf")
	c.WinnerByGoalieDNF = d.flexInt("winnerByGoalieDnf")

	c.MemberString = d.str("memberString")
	c.PassesAttempted = d.flexInt("passa")
	c.PassesCompleted = d.flexInt("passc")
	c.PowerplayGoals = d.flexInt("ppg")
	c.PowerplayOpportunities = d.flexInt("ppo")
	c.Shots = d.flexInt("shots")
	c.TeamArtAbbr = d.str("teamArtAbbr")
	c.TeamSide = d.flexInt("teamSide")
	c.TimeOnAttack = d.flexInt("toa")

	c.OpponentClubID = d.str("opponentClubId")
	c.OpponentScore = d.flexInt("opponentScore")
	c.OpponentTeamArtAbbr = d.str("opponentTeamArtAbbr")

	if details := d.object("details"); details != nil {
		c.Details.decodeFrom(details, d)
	}
	c.Goals = d.flexInt("goals")
	c.GoalsAgainst = d.flexInt("goalsAgainst")

	return d.Err()
}

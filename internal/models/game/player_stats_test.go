package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playerPayload returns a complete upstream player record with every
// field zeroed as a numeric string, the way EA serves them. Tests
// override the fields they care about.
func playerPayload(overrides map[string]interface{}) []byte {
	base := map[string]interface{}{
		"class":              "1",
		"position":           "center",
		"posSorted":          "0",
		"playername":         "TestPlayer",
		"clientPlatform":     "ps5",
		"playerLevel":        "14",
		"isGuest":            "0",
		"player_dnf":         "0",
		"pNhlOnlineGameType": "5",
		"teamId":             "100",
		"teamSide":           "0",
		"opponentClubId":     "9999",
		"opponentTeamId":     "200",
		"opponentScore":      "2",
		"score":              "3",
		"ratingDefense":      "75.5",
		"ratingOffense":      "80.0",
		"ratingTeamplay":     "70.0",
		"toi":                "60",
		"toiseconds":         "3600",
		"skassists":          "0",
		"skbs":               "0",
		"skdeflections":      "0",
		"skfol":              "0",
		"skfopct":            "0.0",
		"skfow":              "0",
		"skgiveaways":        "0",
		"skgoals":            "0",
		"skgwg":              "0",
		"skhits":             "0",
		"skinterceptions":    "0",
		"skpassattempts":     "0",
		"skpasses":           "0",
		"skpasspct":          "0.0",
		"skpenaltiesdrawn":   "0",
		"skpim":              "0",
		"skpkclearzone":      "0",
		"skplusmin":          "0",
		"skpossession":       "0",
		"skppg":              "0",
		"sksaucerpasses":     "0",
		"skshg":              "0",
		"skshotattempts":     "0",
		"skshotonnetpct":     "0.0",
		"skshotpct":          "0.0",
		"skshots":            "0",
		"sktakeaways":        "0",
		"glbrksavepct":       "0.0",
		"glbrksaves":         "0",
		"glbrkshots":         "0",
		"gldsaves":           "0",
		"glga":               "0",
		"glgaa":              "0.0",
		"glpensavepct":       "0.0",
		"glpensaves":         "0",
		"glpenshots":         "0",
		"glpkclearzone":      "0",
		"glpokechecks":       "0",
		"glsavepct":          "0.0",
		"glsaves":            "0",
		"glshots":            "0",
		"glsoperiods":        "0",
	}
	for k, v := range overrides {
		base[k] = v
	}
	data, err := json.Marshal(base)
	if err != nil {
		panic(err)
	}
	return data
}

func decodePlayer(t *testing.T, overrides map[string]interface{}) *PlayerGameStats {
	t.Helper()
	var p PlayerGameStats
	require.NoError(t, json.Unmarshal(playerPayload(overrides), &p))
	return &p
}

func TestPlayerGameStatsDecode(t *testing.T) {
	t.Run("numeric strings coerce to values", func(t *testing.T) {
		p := decodePlayer(t, map[string]interface{}{
			"skgoals":       "3",
			"skshots":       "7",
			"ratingOffense": "88.5",
		})
		assert.Equal(t, 3, p.Goals.Int())
		assert.True(t, p.Goals.Present)
		assert.Equal(t, 7, p.Shots.Int())
		assert.Equal(t, 88.5, p.RatingOffense.Float())
	})

	t.Run("raw numbers accepted alongside strings", func(t *testing.T) {
		p := decodePlayer(t, map[string]interface{}{
			"skgoals": 2,
			"skfopct": 55.5,
		})
		assert.Equal(t, 2, p.Goals.Int())
		assert.Equal(t, 55.5, p.FaceoffPct.Float())
	})

	t.Run("placeholder parses to absent in any field", func(t *testing.T) {
		p := decodePlayer(t, map[string]interface{}{
			"skgoals":       "--",
			"ratingDefense": "--",
			"toi":           "--",
		})
		assert.False(t, p.Goals.Present)
		assert.Equal(t, 0, p.Goals.Int())
		assert.False(t, p.RatingDefense.Present)
		assert.False(t, p.TOI.Present)
	})

	t.Run("unparseable value names the field", func(t *testing.T) {
		var p PlayerGameStats
		err := json.Unmarshal(playerPayload(map[string]interface{}{"skgoals": "abc"}), &p)
		require.Error(t, err)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "skgoals", verr.Field)
	})

	t.Run("missing field names the field", func(t *testing.T) {
		raw := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(playerPayload(nil), &raw))
		delete(raw, "skshots")
		data, err := json.Marshal(raw)
		require.NoError(t, err)

		var p PlayerGameStats
		err = json.Unmarshal(data, &p)
		require.Error(t, err)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "skshots", verr.Field)
	})

	t.Run("position is lowercased", func(t *testing.T) {
		p := decodePlayer(t, map[string]interface{}{"position": "Goalie"})
		assert.Equal(t, "goalie", p.Position)
		assert.True(t, p.IsGoalie())
	})
}

func TestPlayerDerivedMetrics(t *testing.T) {
	t.Run("points and percentages", func(t *testing.T) {
		p := decodePlayer(t, map[string]interface{}{
			"skgoals":        "5",
			"skassists":      "3",
			"skshots":        "11",
			"skpasses":       "11",
			"skpassattempts": "26",
			"skfow":          "6",
			"skfol":          "4",
		})

		assert.Equal(t, 8, p.Points())

		pct, ok := p.ShootingPercentage()
		require.True(t, ok)
		assert.Equal(t, 45.45, pct)

		pct, ok = p.PassingPercentage()
		require.True(t, ok)
		assert.Equal(t, 42.31, pct)

		pct, ok = p.FaceoffPercentage()
		require.True(t, ok)
		assert.Equal(t, 60.0, pct)
		assert.Equal(t, 10, p.FaceoffsTotal())
		assert.Equal(t, 15, p.PassesMissed())
	})

	t.Run("zero denominators report absent", func(t *testing.T) {
		p := decodePlayer(t, nil)

		_, ok := p.ShootingPercentage()
		assert.False(t, ok)
		_, ok = p.PassingPercentage()
		assert.False(t, ok)
		_, ok = p.FaceoffPercentage()
		assert.False(t, ok)
		_, ok = p.ShotEfficiency()
		assert.False(t, ok)
		_, ok = p.TakeawayGiveawayRatio()
		assert.False(t, ok)
	})

	t.Run("shots missed clamps at zero", func(t *testing.T) {
		p := decodePlayer(t, map[string]interface{}{
			"skshots":        "8",
			"skshotattempts": "5",
		})
		assert.Equal(t, 0, p.ShotsMissed())
	})

	t.Run("penalty decomposition", func(t *testing.T) {
		// 12 pim = two majors, one minor
		p := decodePlayer(t, map[string]interface{}{
			"skpim":            "12",
			"skpenaltiesdrawn": "1",
		})
		assert.Equal(t, 2, p.MajorPenalties())
		assert.Equal(t, 1, p.MinorPenalties())
		assert.Equal(t, 3, p.TotalPenalties())
		assert.Equal(t, -2, p.PenaltyDifferential())
	})

	t.Run("goalie metrics require goalie position", func(t *testing.T) {
		skater := decodePlayer(t, map[string]interface{}{
			"glshots": "30",
			"glsaves": "28",
		})
		_, ok := skater.GoalsSaved()
		assert.False(t, ok)
		_, ok = skater.SavePercentage()
		assert.False(t, ok)

		goalie := decodePlayer(t, map[string]interface{}{
			"position": "goalie",
			"glshots":  "30",
			"glsaves":  "28",
			"glga":     "2",
		})
		saved, ok := goalie.GoalsSaved()
		require.True(t, ok)
		assert.Equal(t, 28, saved)

		pct, ok := goalie.SavePercentage()
		require.True(t, ok)
		assert.Equal(t, 93.33, pct)
	})

	t.Run("per-minute rates", func(t *testing.T) {
		p := decodePlayer(t, map[string]interface{}{
			"toi":          "60",
			"skgoals":      "2",
			"skassists":    "1",
			"skshots":      "8",
			"skpossession": "180",
			"skhits":       "4",
			"skbs":         "2",
			"sktakeaways":  "3",
			"skgiveaways":  "6",
		})

		assert.Equal(t, 3.0, p.PointsPer60())
		assert.Equal(t, 3.0, p.PossessionPerMinute())
		assert.Equal(t, 0.15, p.DefensiveActionsPerMinute())
		assert.InDelta(t, 0.15, p.OffensiveImpact(), 0.001)
		assert.InDelta(t, 0.05, p.DefensiveImpact(), 0.001)

		ratio, ok := p.TakeawayGiveawayRatio()
		require.True(t, ok)
		assert.Equal(t, 0.5, ratio)
	})
}

func TestFlexRoundTrip(t *testing.T) {
	p := decodePlayer(t, map[string]interface{}{
		"skgoals": "4",
		"skshots": "--",
	})

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back PlayerGameStats
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 4, back.Goals.Int())
	assert.True(t, back.Goals.Present)
	assert.False(t, back.Shots.Present)
}

package game

import (
	"encoding/json"
)

// TimeAgo is the upstream's relative description of when a match was
// played.
type TimeAgo struct {
	Number FlexInt `json:"number"`
	Unit   string  `json:"unit"`
}

// UnmarshalJSON applies the standard coercion rules to the block.
func (t *TimeAgo) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d := newFieldDecoder(raw)
	t.Number = d.flexInt("number")
	t.Unit = d.str("unit")
	return d.Err()
}

// Match is a single game's full picture: both clubs, their rosters'
// per-player lines, and the upstream's own per-club aggregate rollups.
// Every club id present in Clubs should also key Players and Aggregate;
// this is not enforced at parse time. Consumers treat an absent entry
// as "not our match" and get nil from the lookup helpers.
type Match struct {
	MatchID   string  `json:"matchId"`
	Timestamp int64   `json:"timestamp"`
	TimeAgo   TimeAgo `json:"timeAgo"`

	Clubs     map[string]*ClubGameStats              `json:"clubs"`
	Players   map[string]map[string]*PlayerGameStats `json:"players"`
	Aggregate map[string]*AggregateStats             `json:"aggregate"`
}

// UnmarshalJSON validates match identity before delegating the nested
// club/player/aggregate maps to their own decoders.
func (m *Match) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}

	idRaw, ok := top["matchId"]
	if !ok {
		return &ValidationError{Field: "matchId", Reason: "required field missing"}
	}
	var idVal interface{}
	if err := json.Unmarshal(idRaw, &idVal); err != nil {
		return err
	}
	d := &fieldDecoder{raw: map[string]interface{}{"matchId": idVal}}
	m.MatchID = d.str("matchId")
	if d.err != nil {
		return d.err
	}
	if m.MatchID == "" {
		return &ValidationError{Field: "matchId", Reason: "must not be empty"}
	}

	if tsRaw, ok := top["timestamp"]; ok {
		var ts json.Number
		if err := json.Unmarshal(tsRaw, &ts); err != nil {
			return &ValidationError{Field: "timestamp", Reason: "expected number"}
		}
		sec, err := ts.Int64()
		if err != nil {
			return &ValidationError{Field: "timestamp", Reason: "expected integer seconds"}
		}
		m.Timestamp = sec
	} else {
		return &ValidationError{Field: "timestamp", Reason: "required field missing"}
	}

	if taRaw, ok := top["timeAgo"]; ok {
		if err := json.Unmarshal(taRaw, &m.TimeAgo); err != nil {
			return err
		}
	} else {
		return &ValidationError{Field: "timeAgo", Reason: "required field missing"}
	}

	m.Clubs = make(map[string]*ClubGameStats)
	rawClubs, ok := top["clubs"]
	if !ok {
		return &ValidationError{Field: "clubs", Reason: "required field missing"}
	}
	if err := json.Unmarshal(rawClubs, &m.Clubs); err != nil {
		return err
	}
	m.Players = make(map[string]map[string]*PlayerGameStats)
	rawPlayers, ok := top["players"]
	if !ok {
		return &ValidationError{Field: "players", Reason: "required field missing"}
	}
	if err := json.Unmarshal(rawPlayers, &m.Players); err != nil {
		return err
	}
	m.Aggregate = make(map[string]*AggregateStats)
	rawAggregate, ok := top["aggregate"]
	if !ok {
		return &ValidationError{Field: "aggregate", Reason: "required field missing"}
	}
	if err := json.Unmarshal(rawAggregate, &m.Aggregate); err != nil {
		return err
	}

	return nil
}

// HomeClubID returns the id of the club whose side flag is 0, or ""
// when no club carries that flag. Callers must check for the empty id.
func (m *Match) HomeClubID() string {
	return m.clubIDBySide(0)
}

// AwayClubID returns the id of the club whose side flag is 1, or "".
func (m *Match) AwayClubID() string {
	return m.clubIDBySide(1)
}

func (m *Match) clubIDBySide(side int) string {
	for clubID, club := range m.Clubs {
		if club != nil && club.TeamSide.Present && club.TeamSide.Value == side {
			return clubID
		}
	}
	return ""
}

// HomeClub returns the home club's stats, or nil.
func (m *Match) HomeClub() *ClubGameStats {
	if id := m.HomeClubID(); id != "" {
		return m.Clubs[id]
	}
	return nil
}

// AwayClub returns the away club's stats, or nil.
func (m *Match) AwayClub() *ClubGameStats {
	if id := m.AwayClubID(); id != "" {
		return m.Clubs[id]
	}
	return nil
}

// HomePlayers returns all player lines from the home club. The map is
// empty, never nil, when the home club cannot be determined.
func (m *Match) HomePlayers() map[string]*PlayerGameStats {
	if id := m.HomeClubID(); id != "" {
		return m.GetClubPlayers(id)
	}
	return map[string]*PlayerGameStats{}
}

// AwayPlayers returns all player lines from the away club.
func (m *Match) AwayPlayers() map[string]*PlayerGameStats {
	if id := m.AwayClubID(); id != "" {
		return m.GetClubPlayers(id)
	}
	return map[string]*PlayerGameStats{}
}

// HomeAggregate returns the upstream aggregate for the home club, or nil.
func (m *Match) HomeAggregate() *AggregateStats {
	if id := m.HomeClubID(); id != "" {
		return m.Aggregate[id]
	}
	return nil
}

// AwayAggregate returns the upstream aggregate for the away club, or nil.
func (m *Match) AwayAggregate() *AggregateStats {
	if id := m.AwayClubID(); id != "" {
		return m.Aggregate[id]
	}
	return nil
}

// GetClubPlayers returns the player lines for a club, empty when the
// club is not in this match.
func (m *Match) GetClubPlayers(clubID string) map[string]*PlayerGameStats {
	if players, ok := m.Players[clubID]; ok {
		return players
	}
	return map[string]*PlayerGameStats{}
}

// GetPlayerStats returns one player's line, or nil when either key is
// missing.
func (m *Match) GetPlayerStats(clubID, playerID string) *PlayerGameStats {
	return m.Players[clubID][playerID]
}

// GetClubAggregate returns a club's aggregate rollup, or nil.
func (m *Match) GetClubAggregate(clubID string) *AggregateStats {
	return m.Aggregate[clubID]
}

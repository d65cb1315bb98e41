package types

// Position represents a player position on the ice.
type Position string

const (
	PositionUnknown      Position = ""
	PositionCenter       Position = "center"
	PositionLeftWing     Position = "left_wing"
	PositionRightWing    Position = "right_wing"
	PositionLeftDefense  Position = "left_defense"
	PositionRightDefense Position = "right_defense"
	PositionGoalie       Position = "goalie"
)

// SkaterPositions lists every position except goalie and unknown.
var SkaterPositions = []Position{
	PositionCenter,
	PositionLeftWing,
	PositionRightWing,
	PositionLeftDefense,
	PositionRightDefense,
}

// AllPositions lists every known position including goalie.
var AllPositions = append(append([]Position{}, SkaterPositions...), PositionGoalie)

// ParsePosition maps an upstream position string (already lowercased by
// the record decoder) to a Position. Unrecognized values map to
// PositionUnknown rather than failing; the upstream API has introduced
// new spellings between game releases.
func ParsePosition(s string) Position {
	switch s {
	case "center":
		return PositionCenter
	case "leftwing", "left_wing":
		return PositionLeftWing
	case "rightwing", "right_wing":
		return PositionRightWing
	case "leftdefense", "left_defense":
		return PositionLeftDefense
	case "rightdefense", "right_defense":
		return PositionRightDefense
	case "goalie":
		return PositionGoalie
	default:
		return PositionUnknown
	}
}

// ManagerRole represents a management position within a league team.
type ManagerRole string

const (
	RoleOwner   ManagerRole = "owner"
	RoleGM      ManagerRole = "gm"
	RoleAGM     ManagerRole = "agm"
	RolePaidAGM ManagerRole = "paid_agm"
)

// DisplayName returns the human-readable name of the role.
func (r ManagerRole) DisplayName() string {
	switch r {
	case RoleOwner:
		return "Owner"
	case RoleGM:
		return "General Manager"
	case RoleAGM:
		return "Assistant General Manager"
	case RolePaidAGM:
		return "Paid Assistant General Manager"
	default:
		return string(r)
	}
}

// CanHaveSalary reports whether the role is a compensated position.
func (r ManagerRole) CanHaveSalary() bool {
	return r == RolePaidAGM
}

// LeagueLevel represents a tier in the league system.
type LeagueLevel string

const (
	LevelNHL  LeagueLevel = "nhl"
	LevelAHL  LeagueLevel = "ahl"
	LevelECHL LeagueLevel = "echl"
	LevelCHL  LeagueLevel = "chl"
)

// TeamSide is the home/away flag carried on upstream club records.
type TeamSide int

const (
	SideHome TeamSide = 0
	SideAway TeamSide = 1
)

// Platform identifies a gaming platform accepted by the Pro Clubs API.
type Platform string

const (
	PlatformPS5        Platform = "ps5"
	PlatformPS4        Platform = "ps4"
	PlatformXboxSeries Platform = "xbox-series-xs"
	PlatformXboxOne    Platform = "xboxone"
	PlatformCommonGen5 Platform = "common-gen5"
)

var validPlatforms = map[Platform]bool{
	PlatformPS5:        true,
	PlatformPS4:        true,
	PlatformXboxSeries: true,
	PlatformXboxOne:    true,
	PlatformCommonGen5: true,
}

// Valid reports whether the platform is a legal upstream identifier.
// Request construction must be gated on this before any network call.
func (p Platform) Valid() bool {
	return validPlatforms[p]
}

// MatchType identifies a match category accepted by the Pro Clubs API.
type MatchType string

const (
	MatchTypeRegular MatchType = "gameType5"
	MatchTypePlayoff MatchType = "gameType10"
	MatchTypePrivate MatchType = "club_private"
)

var validMatchTypes = map[MatchType]bool{
	MatchTypeRegular: true,
	MatchTypePlayoff: true,
	MatchTypePrivate: true,
}

// Valid reports whether the match type is a legal upstream identifier.
func (m MatchType) Valid() bool {
	return validMatchTypes[m]
}

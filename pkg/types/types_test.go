package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"center", PositionCenter},
		{"leftwing", PositionLeftWing},
		{"left_wing", PositionLeftWing},
		{"rightwing", PositionRightWing},
		{"leftdefense", PositionLeftDefense},
		{"rightdefense", PositionRightDefense},
		{"goalie", PositionGoalie},
		{"", PositionUnknown},
		{"bench", PositionUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePosition(tt.in), tt.in)
	}
}

func TestPlatformAndMatchTypeEnumerations(t *testing.T) {
	for _, p := range []Platform{PlatformPS5, PlatformPS4, PlatformXboxSeries, PlatformXboxOne, PlatformCommonGen5} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, Platform("dreamcast").Valid())
	assert.False(t, Platform("").Valid())

	for _, m := range []MatchType{MatchTypeRegular, MatchTypePlayoff, MatchTypePrivate} {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, MatchType("gameType99").Valid())
}

func TestManagerRoles(t *testing.T) {
	assert.Equal(t, "General Manager", RoleGM.DisplayName())
	assert.True(t, RolePaidAGM.CanHaveSalary())
	assert.False(t, RoleOwner.CanHaveSalary())
}

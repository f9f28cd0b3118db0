package version

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, version, commit, built string) {
	t.Helper()
	oldVersion, oldCommit, oldBuilt := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, built
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = oldVersion, oldCommit, oldBuilt
	})
}

func TestLinkedVersion(t *testing.T) {
	withVersion(t, "v1.2.3", "0123456789abcdef", "2026-03-01T10:00:00Z")

	assert.Equal(t, "v1.2.3", GetVersion())
	assert.Equal(t, "v1.2.3 (0123456)", GetShortVersion())
	assert.True(t, IsRelease())
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), GetBuildTime())

	detailed := GetDetailedVersion()
	assert.True(t, strings.HasPrefix(detailed, "Version: v1.2.3\nCommit: 0123456789abcdef"))
	assert.Contains(t, detailed, "Built: 2026-03-01T10:00:00Z")
	assert.Contains(t, detailed, "Platform: ")
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		zero bool
	}{
		{"2026-03-01T10:00:00Z", false},
		{"2026-03-01T10:00:00", false},
		{"2026-03-01 10:00:00", false},
		{"unknown", true},
		{"", true},
		{"yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.zero, parseTime(tt.in).IsZero())
		})
	}
}

func TestBuildInfo(t *testing.T) {
	withVersion(t, "v0.1.0", "unknown", "unknown")

	info := GetBuildInfo()
	assert.Equal(t, "v0.1.0", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

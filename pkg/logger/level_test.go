package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel_RecognizedNames(t *testing.T) {
	cases := []struct {
		name string
		want Level
	}{
		{"DEBUG", LevelDebug},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"SUCCESS", LevelSuccess},
		{"warning", LevelWarning},
		{"ERROR", LevelError},
		{"  error  ", LevelError},
	}

	for _, tc := range cases {
		level, err := ParseLevel(tc.name)
		require.NoError(t, err, "ParseLevel(%q)", tc.name)
		assert.Equal(t, tc.want, level, "ParseLevel(%q)", tc.name)
	}
}

func TestParseLevel_Unrecognized(t *testing.T) {
	for _, name := range []string{"", "bogus", "WARN", "FATAL", "trace"} {
		_, err := ParseLevel(name)
		require.Error(t, err, "ParseLevel(%q)", name)

		var invalidErr *InvalidLevelError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, name, invalidErr.Name)
	}
}

func TestLevel_Priorities(t *testing.T) {
	levels := Levels()
	require.Len(t, levels, 5)

	for i := 1; i < len(levels); i++ {
		assert.Greater(t, int(levels[i]), int(levels[i-1]))
	}

	assert.True(t, LevelError.Enabled(LevelInfo))
	assert.True(t, LevelInfo.Enabled(LevelInfo))
	assert.True(t, LevelSuccess.Enabled(LevelInfo))
	assert.False(t, LevelDebug.Enabled(LevelInfo))
	assert.False(t, LevelWarning.Enabled(LevelError))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "SUCCESS", LevelSuccess.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
	assert.False(t, Level(42).Valid())
	assert.True(t, LevelWarning.Valid())
}

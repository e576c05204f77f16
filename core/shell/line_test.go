package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandLine(t *testing.T) {
	t.Run("strips newline", func(t *testing.T) {
		line, err := NewCommandLine("ls -l\n", 1024)
		require.NoError(t, err)
		assert.Equal(t, "ls -l", line.String())
	})

	t.Run("at limit", func(t *testing.T) {
		_, err := NewCommandLine(strings.Repeat("a", 1023), 1024)
		assert.NoError(t, err)
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := NewCommandLine(strings.Repeat("a", 1024), 1024)
		assert.True(t, errors.Is(err, ErrLineTooLong))
	})
}

func TestCommandLine_IsBlank(t *testing.T) {
	for _, tc := range []struct {
		text  string
		blank bool
	}{
		{"", true},
		{" \t ", true},
		{"ls", false},
		{" |", false},
	} {
		line, err := NewCommandLine(tc.text, 0)
		require.NoError(t, err)
		assert.Equal(t, tc.blank, line.IsBlank(), "%q", tc.text)
	}
}

func TestCommandLine_Segments(t *testing.T) {
	cases := map[string]struct {
		text     string
		pipes    int
		segments []Segment
	}{
		"no pipe":     {"ls -l", 0, []Segment{"ls -l"}},
		"one pipe":    {"ls | wc -l", 1, []Segment{"ls ", " wc -l"}},
		"two pipes":   {"a|b|c", 2, []Segment{"a", "b", "c"}},
		"empty stage": {"a||c", 2, []Segment{"a", "", "c"}},
		// There is no quoting, so a quoted pipe still separates.
		"quoted": {`echo "|"`, 1, []Segment{`echo "`, `"`}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			line, err := NewCommandLine(tc.text, 1024)
			require.NoError(t, err)
			assert.Equal(t, tc.pipes, line.PipeCount())
			assert.Equal(t, tc.segments, line.Segments())
			assert.Len(t, line.Segments(), line.PipeCount()+1)
		})
	}
}

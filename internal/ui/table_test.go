package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	tb := Table{
		Headers: []string{"COMMAND", "IMPACT"},
		Rows: [][]string{
			{"delete-db-proxy", "high"},
			{"describe-db-instances", "none"},
		},
		Summary: "2 operations",
	}
	require.NoError(t, tb.Render(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "╭───────────────────────┬────────╮", lines[0])
	assert.Equal(t, "│ COMMAND               │ IMPACT │", lines[1])
	assert.Equal(t, "│ delete-db-proxy       │ high   │", lines[3])
	assert.Equal(t, "╰───────────────────────┴────────╯", lines[5])
	assert.Equal(t, "  2 operations", lines[6])
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 4))
	assert.Equal(t, "a...", padRight("abcdefgh", 4))
}

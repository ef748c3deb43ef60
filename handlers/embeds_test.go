package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 1024))
	assert.Equal(t, "abcd", truncate("abcdef", 4))
	assert.Equal(t, "", truncate("", 10))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	// "é" is two bytes; cutting at byte 2 would split it.
	assert.Equal(t, "h", truncate("héllo", 2))
	assert.Equal(t, "hé", truncate("héllo", 3))

	long := strings.Repeat("日本語テキスト", 100)
	got := truncate(long, 1024)
	assert.LessOrEqual(t, len(got), 1024)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasPrefix(long, got))
}

func TestParseEntityID(t *testing.T) {
	msg := &discordgo.Message{Embeds: []*discordgo.MessageEmbed{{Title: "Confession #42"}}}
	id, ok := parseEntityID(msg)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	msg.Embeds[0].Title = "no number here"
	_, ok = parseEntityID(msg)
	assert.False(t, ok)

	_, ok = parseEntityID(nil)
	assert.False(t, ok)
}

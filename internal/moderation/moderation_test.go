package moderation

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCheckContent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"Plain", "Went for a walk today and it helped a little.", true},
		{"Empty", "", false},
		{"Whitespace", "   ", false},
		{"HatePhrase", "I hate people like that", false},
		{"Explicit", "this is OBSCENE", false},
		{"Phone", "call me at 555-123-4567", false},
		{"PhoneParens", "(555) 123-4567", false},
		{"Email", "write to sam@example.com", false},
		{"IPAddress", "my server is 192.168.0.1", false},
		{"SmallNumbers", "I slept 6 hours and walked 3 km", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckContent(tt.text))
			assert.Equal(t, tt.want, NewPatternScreen(zap.NewNop()).Allow(tt.text))
		})
	}
}

func TestAnonymousName(t *testing.T) {
	assert.Equal(t, "Anonymous", AnonymousName("", "salt"))

	name := AnonymousName("sam", "salt")
	assert.Equal(t, name, AnonymousName("sam", "salt"))
	assert.NotEqual(t, name, AnonymousName("sam", "other"))
	assert.Regexp(t, regexp.MustCompile(`^(Brave|Calm|Kind|Wise|Gentle|Quiet|Happy|Friendly)(Wolf|Bear|Eagle|Deer|Fox|Owl|Tiger|Dolphin)[0-9a-f]{4}$`), name)

	sum := md5.Sum([]byte("samsalt"))
	digest := hex.EncodeToString(sum[:])
	assert.Equal(t, digest[len(digest)-4:], name[len(name)-4:])
}

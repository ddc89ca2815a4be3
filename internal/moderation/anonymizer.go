package moderation

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

var (
	adjectives = []string{"Brave", "Calm", "Kind", "Wise", "Gentle", "Quiet", "Happy", "Friendly"}
	animals    = []string{"Wolf", "Bear", "Eagle", "Deer", "Fox", "Owl", "Tiger", "Dolphin"}
)

// AnonymousName maps a username to a stable pseudonym such as "CalmOwl3fa2".
func AnonymousName(username, salt string) string {
	if username == "" {
		return "Anonymous"
	}
	sum := md5.Sum([]byte(username + salt))
	digest := hex.EncodeToString(sum[:])

	adj, _ := strconv.ParseUint(digest[0:2], 16, 8)
	animal, _ := strconv.ParseUint(digest[2:4], 16, 8)
	return adjectives[int(adj)%len(adjectives)] + animals[int(animal)%len(animals)] + digest[len(digest)-4:]
}

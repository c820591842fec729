package utils

import (
	"fmt"
	"math/rand"
)

var nicknameAdjectives = []string{
	"brave", "calm", "clever", "crimson", "curious", "eager",
	"gentle", "golden", "happy", "keen", "lively", "lucky",
	"mellow", "noble", "quiet", "rapid", "silent", "silver",
	"swift", "witty",
}

var nicknameNouns = []string{
	"badger", "falcon", "fox", "heron", "lynx", "marten",
	"otter", "owl", "panda", "raven", "salmon", "sparrow",
	"tiger", "walrus", "wolf", "wren",
}

// NicknameGenerator produces random human-readable nicknames of the form
// "adjective_noun_NNN" for accounts registered without an explicit nickname.
// Uniqueness is not guaranteed here; callers retry on collision.
type NicknameGenerator struct {
}

func NewNicknameGenerator() *NicknameGenerator {
	return &NicknameGenerator{}
}

func (g *NicknameGenerator) Generate() string {
	adjective := nicknameAdjectives[rand.Intn(len(nicknameAdjectives))]
	noun := nicknameNouns[rand.Intn(len(nicknameNouns))]

	return fmt.Sprintf("%s_%s_%03d", adjective, noun, rand.Intn(1000))
}

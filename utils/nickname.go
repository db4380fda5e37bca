package utils

import (
	"fmt"
	"math/rand"
)

// Word lists for seeding posts and comments with believable author names.
var nicknameAdjectives = []string{
	"happy", "sleepy", "lonely", "nervous", "hopeful",
	"restless", "curious", "shy", "cheerful", "dreamy",
}

var nicknameNouns = []string{
	"fox", "rabbit", "otter", "penguin", "hamster",
	"koala", "deer", "cat", "puppy", "duck",
}

// RandomNickname generates a throwaway author nickname for admin-seeded
// content, e.g. "hopeful-otter42".
func RandomNickname() string {
	adj := nicknameAdjectives[rand.Intn(len(nicknameAdjectives))]
	noun := nicknameNouns[rand.Intn(len(nicknameNouns))]
	return fmt.Sprintf("%s-%s%d", adj, noun, rand.Intn(100))
}

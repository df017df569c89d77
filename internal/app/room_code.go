package app

import (
	"math/rand"
	"strings"
)

const (
	// RoomCodeAlphabet leaves out I, O, 0 and 1 so codes can be read aloud.
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	RoomCodeLength   = 5
)

// GenerateRoomCode draws RoomCodeLength symbols uniformly from RoomCodeAlphabet.
func GenerateRoomCode(rnd *rand.Rand) string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = RoomCodeAlphabet[rnd.Intn(len(RoomCodeAlphabet))]
	}
	return string(code)
}

// IsRoomCode reports whether code is well formed, ignoring case.
func IsRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}
	for _, c := range strings.ToUpper(code) {
		if !strings.ContainsRune(RoomCodeAlphabet, c) {
			return false
		}
	}
	return true
}

package domain

import "math/rand"

// VoiceOptions is the fixed set of prebuilt TTS voices the storyboard
// may assign. Order matters only for the random pick.
var VoiceOptions = []string{
	"Zephyr",
	"Puck",
	"Charon",
	"Kore",
	"Fenrir",
	"Leda",
	"Orus",
	"Aoede",
}

// DefaultVoice substitutes for any voice name outside VoiceOptions.
const DefaultVoice = "Kore"

// NormalizeVoice returns name when it belongs to the fixed voice set,
// otherwise the default voice. Invalid names are not an error.
func NormalizeVoice(name string) string {
	for _, v := range VoiceOptions {
		if v == name {
			return name
		}
	}
	return DefaultVoice
}

// PickVoice chooses one voice uniformly from the fixed set. The rand
// source is injected so tests can fix the sequence.
func PickVoice(r *rand.Rand) string {
	return VoiceOptions[r.Intn(len(VoiceOptions))]
}

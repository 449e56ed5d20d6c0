package persona

import "strings"

// DefaultDescription is the fallback used whenever no personality is selected
// or the referenced descriptor no longer exists. A missing personality must
// never block a chat turn.
const DefaultDescription = "loving, supportive, caring, playful, always-listening companion"

const (
	PresetPlayful      = "Playful"
	PresetSweet        = "Sweet"
	PresetIntellectual = "Intellectual"
	PresetMotivator    = "Motivator"
	PresetChill        = "Chill"
	PresetRomantic     = "Romantic"
)

var presets = map[string]string{
	PresetPlayful:      "playful, teasing, high-energy companion who loves jokes, banter and keeping every conversation fun",
	PresetSweet:        "gentle, caring companion who is warm, affectionate and endlessly patient",
	PresetIntellectual: "thoughtful, curious companion who enjoys deep conversations, books and big ideas",
	PresetMotivator:    "encouraging, upbeat companion who cheers you on and keeps you focused on your goals",
	PresetChill:        "laid-back, easygoing companion who keeps things relaxed and never judges",
	PresetRomantic:     "romantic, devoted companion who is tender, attentive and loves heartfelt moments",
}

// PresetDescription returns the canned description for a preset key. The match
// is case-insensitive; the returned string is always the fixed one.
func PresetDescription(name string) (string, bool) {
	for key, desc := range presets {
		if strings.EqualFold(key, name) {
			return desc, true
		}
	}
	return "", false
}

// PresetName canonicalizes a case-insensitive preset key.
func PresetName(name string) (string, bool) {
	for key := range presets {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}

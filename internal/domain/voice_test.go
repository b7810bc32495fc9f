package domain

import (
	"math/rand"
	"testing"
)

func TestNormalizeVoice(t *testing.T) {
	for _, v := range VoiceOptions {
		if got := NormalizeVoice(v); got != v {
			t.Errorf("known voice %s must pass through, got %s", v, got)
		}
	}
	if got := NormalizeVoice("HAL9000"); got != DefaultVoice {
		t.Errorf("unknown voice must fall back to %s, got %s", DefaultVoice, got)
	}
	if got := NormalizeVoice(""); got != DefaultVoice {
		t.Errorf("empty voice must fall back to %s, got %s", DefaultVoice, got)
	}
}

func TestPickVoiceDeterministicWithFixedSeed(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		va, vb := PickVoice(a), PickVoice(b)
		if va != vb {
			t.Fatalf("same seed diverged at pick %d: %s vs %s", i, va, vb)
		}
		if NormalizeVoice(va) != va {
			t.Fatalf("picked voice %s is outside the catalog", va)
		}
	}
}

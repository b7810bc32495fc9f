package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestResolvePlacementDomesticForcesCN(t *testing.T) {
	for _, p := range Platforms {
		if p.Scope != ScopeDomestic {
			continue
		}
		t.Run(p.ID, func(t *testing.T) {
			platform, market, err := ResolvePlacement(p.ID, "US")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if platform.ID != p.ID {
				t.Errorf("expected platform %s, got %s", p.ID, platform.ID)
			}
			if market.ID != DomesticMarketID {
				t.Errorf("domestic platform must force market %s, got %s", DomesticMarketID, market.ID)
			}
		})
	}
}

func TestResolvePlacementGlobalDefaultsToUS(t *testing.T) {
	for _, id := range []string{"", "XX"} {
		platform, market, err := ResolvePlacement("tiktok", id)
		if err != nil {
			t.Fatalf("market %q: unexpected error: %v", id, err)
		}
		if platform.ID != "tiktok" {
			t.Errorf("market %q: unexpected platform %s", id, platform.ID)
		}
		if market.ID != DefaultGlobalMarketID {
			t.Errorf("market %q: expected default %s, got %s", id, DefaultGlobalMarketID, market.ID)
		}
	}
}

func TestResolvePlacementGlobalRejectsCN(t *testing.T) {
	_, _, err := ResolvePlacement("tiktok", "CN")
	if !errors.Is(err, ErrMarketUnavailable) {
		t.Fatalf("expected ErrMarketUnavailable, got %v", err)
	}
}

func TestResolvePlacementGlobal(t *testing.T) {
	platform, market, err := ResolvePlacement("amazon", "JP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if platform.Scope != ScopeGlobal {
		t.Errorf("expected global scope, got %s", platform.Scope)
	}
	if market.ID != "JP" || market.Language != "Japanese" {
		t.Errorf("unexpected market %+v", market)
	}
}

func TestUnknownIdentifiersFallBackToDefaults(t *testing.T) {
	if got := PlatformByID("nonexistent"); got.ID != Platforms[0].ID {
		t.Errorf("expected default platform %s, got %s", Platforms[0].ID, got.ID)
	}
	if got := MarketByID("XX"); got.ID != Markets[0].ID {
		t.Errorf("expected default market %s, got %s", Markets[0].ID, got.ID)
	}
}

func TestStyleDirectiveBuckets(t *testing.T) {
	tests := []struct {
		platformID string
		marker     string
	}{
		{"douyin", "Fast-paced"},
		{"tiktok", "Fast-paced"},
		{"amazon", "Professional"},
		{"jd", "Professional"},
		{"tmall", "Professional"},
		{"taobao", "Professional"},
		{"temu", "Value-focused"},
		{"pdd", "Value-focused"},
		{"aliexpress", "Value-focused"},
	}
	for _, tt := range tests {
		t.Run(tt.platformID, func(t *testing.T) {
			got := PlatformByID(tt.platformID).StyleDirective()
			if got == "" {
				t.Fatal("expected a style directive")
			}
			if !strings.Contains(got, tt.marker) {
				t.Errorf("directive %q missing marker %q", got, tt.marker)
			}
		})
	}
}

package domain

import "golang.org/x/text/language"

// Scope splits platforms into the Chinese domestic ecosystem and the
// global (cross-border) one. Domestic scope pins the market to CN.
type Scope string

const (
	ScopeDomestic Scope = "domestic"
	ScopeGlobal   Scope = "global"
)

// PlatformProfile describes one e-commerce platform the script is
// written for.
type PlatformProfile struct {
	ID    string
	Label string
	Scope Scope
}

// MarketProfile parameterizes generation instructions for one target
// market. It is never persisted beyond a single generation call.
type MarketProfile struct {
	ID       string
	Label    string
	Language string
	Tag      language.Tag
	Culture  string
}

// DomesticMarketID is the single market domestic platforms resolve to.
const DomesticMarketID = "CN"

// DefaultGlobalMarketID is the market assumed when a global-platform
// request names no known market. It must never be the domestic market,
// or an empty request would resolve straight into a rejection.
const DefaultGlobalMarketID = "US"

// Platforms is the fixed platform catalog. The first entry is the
// default when the caller's identifier is unknown.
var Platforms = []PlatformProfile{
	{ID: "douyin", Label: "抖音 Douyin", Scope: ScopeDomestic},
	{ID: "taobao", Label: "淘宝 Taobao", Scope: ScopeDomestic},
	{ID: "tmall", Label: "天猫 Tmall", Scope: ScopeDomestic},
	{ID: "jd", Label: "京东 JD.com", Scope: ScopeDomestic},
	{ID: "pdd", Label: "拼多多 Pinduoduo", Scope: ScopeDomestic},
	{ID: "tiktok", Label: "TikTok", Scope: ScopeGlobal},
	{ID: "amazon", Label: "Amazon", Scope: ScopeGlobal},
	{ID: "temu", Label: "Temu", Scope: ScopeGlobal},
	{ID: "aliexpress", Label: "AliExpress", Scope: ScopeGlobal},
}

// Markets is the fixed market catalog. CN leads: it is both the default
// and the forced market for domestic platforms.
var Markets = []MarketProfile{
	{ID: "CN", Label: "中国 China", Language: "Chinese", Tag: language.MustParse("zh-CN"), Culture: "Domestic livestream-commerce culture; trust cues, social proof, and gifting occasions matter."},
	{ID: "US", Label: "United States", Language: "English", Tag: language.MustParse("en-US"), Culture: "Convenience-driven, individualist; direct benefit claims and lifestyle framing perform well."},
	{ID: "GB", Label: "United Kingdom", Language: "English", Tag: language.MustParse("en-GB"), Culture: "Understated tone; value-for-money and practicality over hype."},
	{ID: "TH", Label: "Thailand", Language: "Thai", Tag: language.MustParse("th-TH"), Culture: "Playful, entertainment-led social commerce; humor and celebrity cues resonate."},
	{ID: "VN", Label: "Vietnam", Language: "Vietnamese", Tag: language.MustParse("vi-VN"), Culture: "Price-sensitive, mobile-first; family and community framing works."},
	{ID: "ID", Label: "Indonesia", Language: "Indonesian", Tag: language.MustParse("id-ID"), Culture: "Community-oriented; halal awareness and local idiom matter for trust."},
	{ID: "JP", Label: "日本 Japan", Language: "Japanese", Tag: language.MustParse("ja-JP"), Culture: "Detail- and quality-obsessed; restrained claims, craftsmanship and packaging emphasis."},
	{ID: "BR", Label: "Brasil Brazil", Language: "Portuguese", Tag: language.MustParse("pt-BR"), Culture: "Expressive and social; vibrant visuals and urgency framing perform well."},
}

// PlatformByID resolves a platform identifier, defaulting to the first
// catalog entry for unknown ids.
func PlatformByID(id string) PlatformProfile {
	for _, p := range Platforms {
		if p.ID == id {
			return p
		}
	}
	return Platforms[0]
}

// MarketByID resolves a market identifier, defaulting to the first
// catalog entry for unknown ids.
func MarketByID(id string) MarketProfile {
	if m, ok := lookupMarket(id); ok {
		return m
	}
	return Markets[0]
}

func lookupMarket(id string) (MarketProfile, bool) {
	for _, m := range Markets {
		if m.ID == id {
			return m, true
		}
	}
	return MarketProfile{}, false
}

// ResolvePlacement resolves the platform and market pair for one
// generation call. Domestic platforms force the CN market regardless of
// the requested target; global platforms reject an explicit CN request
// and resolve unknown or empty markets to the global default.
func ResolvePlacement(platformID, marketID string) (PlatformProfile, MarketProfile, error) {
	platform := PlatformByID(platformID)
	if platform.Scope == ScopeDomestic {
		return platform, MarketByID(DomesticMarketID), nil
	}
	market, ok := lookupMarket(marketID)
	if !ok {
		market = MarketByID(DefaultGlobalMarketID)
	}
	if market.ID == DomesticMarketID {
		return platform, market, ErrMarketUnavailable
	}
	return platform, market, nil
}

// StyleDirective returns the platform-specific creative direction
// embedded into the system instruction.
func (p PlatformProfile) StyleDirective() string {
	switch p.ID {
	case "douyin", "tiktok":
		return "Style: Fast-paced, high-energy, strong hook in first 3 seconds, entertainment-focused."
	case "amazon", "jd", "tmall", "taobao":
		return "Style: Professional, feature-focused, clear demonstration, trust-building, problem/solution structure."
	case "temu", "pdd", "aliexpress":
		return "Style: Value-focused, discount-emphasized, urgent call to action, viral gadget style."
	default:
		return ""
	}
}

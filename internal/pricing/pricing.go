// Package pricing computes seat prices from a movie's base price, the row
// tier of each seat and the screen format. It does no I/O and never fails.
package pricing

import (
	"strings"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierEconomy  Tier = "economy"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

var (
	tierMultipliers = map[Tier]decimal.Decimal{
		TierEconomy:  decimal.RequireFromString("0.8"),
		TierStandard: decimal.NewFromInt(1),
		TierPremium:  decimal.RequireFromString("1.2"),
	}

	screenMultipliers = map[entity.ScreenType]decimal.Decimal{
		entity.ScreenStandard: decimal.NewFromInt(1),
		entity.ScreenPremium:  decimal.RequireFromString("1.3"),
		entity.ScreenIMAX:     decimal.RequireFromString("1.8"),
		entity.Screen4DX:      decimal.NewFromInt(2),
	}
)

// RowTiers maps a row letter to its tier. Rows missing from the map are
// priced as standard.
type RowTiers map[string]Tier

// DefaultRowTiers is the partition used when a show is not bound to a
// theatre screen: front rows A-B economy, C-D standard, back rows E-F premium.
func DefaultRowTiers() RowTiers {
	return RowTiers{
		"A": TierEconomy, "B": TierEconomy,
		"C": TierStandard, "D": TierStandard,
		"E": TierPremium, "F": TierPremium,
	}
}

// RowTiersForScreen builds the tier map declared by a screen layout.
func RowTiersForScreen(s *entity.Screen) RowTiers {
	tiers := make(RowTiers, len(s.Rows))
	for _, row := range s.EconomyRows {
		tiers[strings.ToUpper(row)] = TierEconomy
	}
	for _, row := range s.StandardRows {
		tiers[strings.ToUpper(row)] = TierStandard
	}
	for _, row := range s.PremiumRows {
		tiers[strings.ToUpper(row)] = TierPremium
	}
	return tiers
}

// TierOf returns the tier of the seat's row.
func (t RowTiers) TierOf(seat string) Tier {
	if tier, ok := t[RowOf(seat)]; ok {
		return tier
	}
	return TierStandard
}

// RowOf extracts the row letter of a seat label such as "C7".
func RowOf(seat string) string {
	seat = strings.TrimSpace(seat)
	if seat == "" {
		return ""
	}
	return strings.ToUpper(seat[:1])
}

// TierMultiplier returns the price factor of a tier. Unknown tiers count as standard.
func TierMultiplier(t Tier) decimal.Decimal {
	if m, ok := tierMultipliers[t]; ok {
		return m
	}
	return tierMultipliers[TierStandard]
}

// ScreenMultiplier returns the price factor of a screen format. An empty or
// unknown format prices as Standard.
func ScreenMultiplier(st entity.ScreenType) decimal.Decimal {
	if m, ok := screenMultipliers[st]; ok {
		return m
	}
	return screenMultipliers[entity.ScreenStandard]
}

// PriceForSeat is basePrice x tier multiplier x screen multiplier, unrounded.
func PriceForSeat(seat string, basePrice decimal.Decimal, tiers RowTiers, screen entity.ScreenType) decimal.Decimal {
	return basePrice.
		Mul(TierMultiplier(tiers.TierOf(seat))).
		Mul(ScreenMultiplier(screen))
}

// TotalForSeats sums PriceForSeat over seats. An empty list costs zero.
func TotalForSeats(seats []string, basePrice decimal.Decimal, tiers RowTiers, screen entity.ScreenType) decimal.Decimal {
	total := decimal.Zero
	for _, seat := range seats {
		total = total.Add(PriceForSeat(seat, basePrice, tiers, screen))
	}
	return total
}

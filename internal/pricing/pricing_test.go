package pricing

import (
	"testing"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestPriceForSeat_Tiers(t *testing.T) {
	tiers := DefaultRowTiers()
	base := d("100")

	tests := []struct {
		seat string
		want string
	}{
		{"A5", "80"},
		{"B1", "80"},
		{"C2", "100"},
		{"D3", "100"},
		{"E9", "120"},
		{"F1", "120"},
		{"f1", "120"},
		{"Z4", "100"}, // unmapped row falls back to standard
		{"", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.seat, func(t *testing.T) {
			assertDecimal(t, tt.want, PriceForSeat(tt.seat, base, tiers, ""))
		})
	}
}

func TestPriceForSeat_ScreenMultiplier(t *testing.T) {
	tiers := DefaultRowTiers()
	base := d("100")

	assertDecimal(t, "100", PriceForSeat("C1", base, tiers, entity.ScreenStandard))
	assertDecimal(t, "130", PriceForSeat("C1", base, tiers, entity.ScreenPremium))
	assertDecimal(t, "180", PriceForSeat("C1", base, tiers, entity.ScreenIMAX))
	assertDecimal(t, "200", PriceForSeat("C1", base, tiers, entity.Screen4DX))
	assertDecimal(t, "216", PriceForSeat("E1", base, tiers, entity.ScreenIMAX))
	assertDecimal(t, "100", PriceForSeat("C1", base, tiers, "Drive-in"))
}

func TestPriceForSeat_Deterministic(t *testing.T) {
	tiers := DefaultRowTiers()
	first := PriceForSeat("A1", d("100"), tiers, entity.ScreenPremium)
	for i := 0; i < 50; i++ {
		assert.True(t, first.Equal(PriceForSeat("A1", d("100"), tiers, entity.ScreenPremium)))
	}
}

func TestPriceForSeat_ZeroAndNegativeBase(t *testing.T) {
	tiers := DefaultRowTiers()
	assertDecimal(t, "0", PriceForSeat("E1", decimal.Zero, tiers, ""))
	assertDecimal(t, "-12", PriceForSeat("E1", d("-10"), tiers, ""))
}

func TestTotalForSeats(t *testing.T) {
	tiers := DefaultRowTiers()

	assertDecimal(t, "0", TotalForSeats(nil, d("100"), tiers, ""))
	assertDecimal(t, "500", TotalForSeats([]string{"C1", "C2"}, d("250"), tiers, ""))

	seats := []string{"A1", "C4", "F2", "Q9"}
	want := TotalForSeats(seats, d("99.99"), tiers, entity.ScreenIMAX)
	permuted := []string{"Q9", "F2", "A1", "C4"}
	assert.True(t, want.Equal(TotalForSeats(permuted, d("99.99"), tiers, entity.ScreenIMAX)))
}

func TestRowTiersForScreen(t *testing.T) {
	screen := &entity.Screen{
		Rows:         []string{"A", "B", "C", "D", "E"},
		PremiumRows:  []string{"D", "E"},
		StandardRows: []string{"B", "C"},
		EconomyRows:  []string{"a"},
	}
	tiers := RowTiersForScreen(screen)

	assert.Equal(t, TierEconomy, tiers.TierOf("A3"))
	assert.Equal(t, TierStandard, tiers.TierOf("C3"))
	assert.Equal(t, TierPremium, tiers.TierOf("E3"))
	assert.Equal(t, TierStandard, tiers.TierOf("H3"))
}

func TestApplyDiscount(t *testing.T) {
	pct := d("10")
	flat := d("50")
	huge := d("1000")

	tests := []struct {
		name         string
		coupon       *entity.Coupon
		wantDiscount string
		wantTotal    string
	}{
		{"no coupon", nil, "0", "500"},
		{"percentage", &entity.Coupon{DiscountPercentage: &pct}, "50", "450"},
		{"flat", &entity.Coupon{DiscountAmount: &flat}, "50", "450"},
		{"flat capped at subtotal", &entity.Coupon{DiscountAmount: &huge}, "500", "0"},
		{"percentage wins", &entity.Coupon{DiscountPercentage: &pct, DiscountAmount: &huge}, "50", "450"},
		{"empty coupon", &entity.Coupon{}, "0", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, total := ApplyDiscount(d("500"), tt.coupon)
			assertDecimal(t, tt.wantDiscount, discount)
			assertDecimal(t, tt.wantTotal, total)
		})
	}
}

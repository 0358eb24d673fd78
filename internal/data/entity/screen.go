package entity

import "github.com/google/uuid"

type ScreenType string

const (
	ScreenStandard ScreenType = "Standard"
	ScreenPremium  ScreenType = "Premium"
	ScreenIMAX     ScreenType = "IMAX"
	Screen4DX      ScreenType = "4DX"
)

// Screen is one auditorium of a theatre with its declared seat layout.
type Screen struct {
	BaseNoDelete
	TheatreID    uuid.UUID  `db:"theatre_id"`
	Name         string     `db:"name"`
	Type         ScreenType `db:"type"`
	Rows         []string   `db:"rows"`
	SeatsPerRow  int        `db:"seats_per_row"`
	PremiumRows  []string   `db:"premium_rows"`
	StandardRows []string   `db:"standard_rows"`
	EconomyRows  []string   `db:"economy_rows"`
}

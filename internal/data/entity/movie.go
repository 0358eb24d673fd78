package entity

import (
	"github.com/shopspring/decimal"
)

type Movie struct {
	Base
	Title             string          `db:"title"`
	Description       *string         `db:"description"`
	Genre             string          `db:"genre"`
	PosterURL         *string         `db:"poster_url"`
	Rating            float64         `db:"rating"`
	DurationInMinutes int             `db:"duration_in_minutes"`
	Price             decimal.Decimal `db:"price"` // per-seat base price
	ShowTimings       []string        `db:"show_timings"`
}

package request

import "github.com/shopspring/decimal"

type MovieRequest struct {
	Title             string          `json:"title" validate:"required,min=1,max=200"`
	Description       *string         `json:"description,omitempty"`
	Genre             string          `json:"genre" validate:"max=50"`
	PosterURL         *string         `json:"poster_url,omitempty" validate:"omitempty,url"`
	Rating            float64         `json:"rating" validate:"gte=0,lte=10"`
	DurationInMinutes int             `json:"duration_in_minutes" validate:"required,min=1,max=999"`
	Price             decimal.Decimal `json:"price"`
	ShowTimings       []string        `json:"show_timings,omitempty" validate:"dive,required"`
}

type MovieUpdateRequest struct {
	Title             *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description,omitempty"`
	Genre             *string          `json:"genre,omitempty" validate:"omitempty,max=50"`
	PosterURL         *string          `json:"poster_url,omitempty" validate:"omitempty,url"`
	Rating            *float64         `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	DurationInMinutes *int             `json:"duration_in_minutes,omitempty" validate:"omitempty,min=1,max=999"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	ShowTimings       []string         `json:"show_timings,omitempty" validate:"omitempty,dive,required"`
}

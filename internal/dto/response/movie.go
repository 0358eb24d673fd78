package response

import (
	"time"

	"cinema-seat-ledger/internal/data/entity"

	"github.com/shopspring/decimal"
)

type MovieResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description,omitempty"`
	Genre             string          `json:"genre"`
	PosterURL         *string         `json:"poster_url,omitempty"`
	Rating            float64         `json:"rating"`
	DurationInMinutes int             `json:"duration_in_minutes"`
	Price             decimal.Decimal `json:"price"`
	ShowTimings       []string        `json:"show_timings"`
	CreatedAt         time.Time       `json:"created_at"`
}

func MovieToResponse(m *entity.Movie) MovieResponse {
	timings := m.ShowTimings
	if timings == nil {
		timings = []string{}
	}
	return MovieResponse{
		ID:                m.ID.String(),
		Title:             m.Title,
		Description:       m.Description,
		Genre:             m.Genre,
		PosterURL:         m.PosterURL,
		Rating:            m.Rating,
		DurationInMinutes: m.DurationInMinutes,
		Price:             m.Price,
		ShowTimings:       timings,
		CreatedAt:         m.CreatedAt,
	}
}

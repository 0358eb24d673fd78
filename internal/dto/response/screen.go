package response

import "cinema-seat-ledger/internal/data/entity"

type ScreenResponse struct {
	ID           string            `json:"id"`
	TheatreID    string            `json:"theatre_id"`
	Name         string            `json:"name"`
	Type         entity.ScreenType `json:"type"`
	Rows         []string          `json:"rows"`
	SeatsPerRow  int               `json:"seats_per_row"`
	PremiumRows  []string          `json:"premium_rows"`
	StandardRows []string          `json:"standard_rows"`
	EconomyRows  []string          `json:"economy_rows"`
}

func ScreenToResponse(s *entity.Screen) ScreenResponse {
	return ScreenResponse{
		ID:           s.ID.String(),
		TheatreID:    s.TheatreID.String(),
		Name:         s.Name,
		Type:         s.Type,
		Rows:         s.Rows,
		SeatsPerRow:  s.SeatsPerRow,
		PremiumRows:  s.PremiumRows,
		StandardRows: s.StandardRows,
		EconomyRows:  s.EconomyRows,
	}
}

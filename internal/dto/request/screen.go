package request

type CreateScreenRequest struct {
	TheatreID    string   `json:"theatre_id" validate:"required,uuid"`
	Name         string   `json:"name" validate:"required,max=100"`
	Type         string   `json:"type" validate:"required,oneof=Standard Premium IMAX 4DX"`
	Rows         []string `json:"rows" validate:"required,min=1,dive,len=1,alpha"`
	SeatsPerRow  int      `json:"seats_per_row" validate:"required,min=1,max=99"`
	PremiumRows  []string `json:"premium_rows,omitempty" validate:"dive,len=1,alpha"`
	StandardRows []string `json:"standard_rows,omitempty" validate:"dive,len=1,alpha"`
	EconomyRows  []string `json:"economy_rows,omitempty" validate:"dive,len=1,alpha"`
}

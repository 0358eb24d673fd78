package entity

import (
	"strings"

	"github.com/google/uuid"
)

// ShowKey identifies one screening. Seat claims are partitioned by it: the
// same seat label under two different keys never conflicts.
// uuid.Nil in TheatreID or ScreenID means the dimension is not used.
type ShowKey struct {
	MovieID   uuid.UUID
	ShowDate  string // 2006-01-02
	ShowTime  string
	TheatreID uuid.UUID
	ScreenID  uuid.UUID
}

// String renders the key in a stable form, used for lock and cache names.
func (k ShowKey) String() string {
	var sb strings.Builder
	sb.WriteString(k.MovieID.String())
	sb.WriteByte('|')
	sb.WriteString(k.ShowDate)
	sb.WriteByte('|')
	sb.WriteString(k.ShowTime)
	if k.TheatreID != uuid.Nil || k.ScreenID != uuid.Nil {
		sb.WriteByte('|')
		sb.WriteString(k.TheatreID.String())
		sb.WriteByte('|')
		sb.WriteString(k.ScreenID.String())
	}
	return sb.String()
}

// HasScreen reports whether the key is bound to a theatre screen.
func (k ShowKey) HasScreen() bool {
	return k.ScreenID != uuid.Nil
}

// Matches reports whether other falls under k when k is used as a read
// filter. An empty ShowDate in k matches any date.
func (k ShowKey) Matches(other ShowKey) bool {
	if k.ShowDate == "" {
		other.ShowDate = ""
	}
	return k == other
}

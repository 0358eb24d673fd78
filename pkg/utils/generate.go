package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== TOKEN ====================

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== ORDER ID ====================

// GenerateOrderID derives a human readable order reference from a booking id.
// Format: BOOK-YYYYMMDD-HHMMSS-XXXXXX, where the suffix is the tail of the id.
func GenerateOrderID(id uuid.UUID, at time.Time) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	suffix := strings.ToUpper(hex[len(hex)-6:])

	return fmt.Sprintf("BOOK-%s-%s-%s", at.Format("20060102"), at.Format("150405"), suffix)
}

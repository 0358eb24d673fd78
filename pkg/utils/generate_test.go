package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderID(t *testing.T) {
	id := uuid.MustParse("0190f5a2-7c1e-7abc-8def-0123456789ab")
	at := time.Date(2025, 6, 1, 18, 0, 5, 0, time.UTC)

	assert.Equal(t, "BOOK-20250601-180005-6789AB", GenerateOrderID(id, at))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

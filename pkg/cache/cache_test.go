package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_NilClientIsNop(t *testing.T) {
	c := New(nil, "x:", time.Minute)
	assert.IsType(t, Nop{}, c)

	var dst []string
	found, err := c.GetJSON(context.Background(), "k", &dst)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.SetJSON(context.Background(), "k", []string{"A1"}))
	assert.NoError(t, c.Delete(context.Background(), "k"))
}

package request

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationFromQuery(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantPer    int
		wantLimit  int
		wantOffset int
	}{
		{query: "", wantPage: 1, wantPer: 10, wantLimit: 10, wantOffset: 0},
		{query: "page=3&per_page=20", wantPage: 3, wantPer: 20, wantLimit: 20, wantOffset: 40},
		{query: "page=abc&per_page=-5", wantPage: 1, wantPer: 10, wantLimit: 10, wantOffset: 0},
		{query: "page=2&per_page=500", wantPage: 2, wantPer: 500, wantLimit: 100, wantOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)

			req := PaginationFromQuery(q)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantPer, req.PerPage)
			assert.Equal(t, tt.wantLimit, req.Limit())
			assert.Equal(t, tt.wantOffset, req.Offset())
		})
	}
}

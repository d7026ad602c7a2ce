package dto_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{dto.PageRequest{}, dto.PageRequest{Page: 1, Limit: 10}},
		{dto.PageRequest{Page: -3, Limit: 0}, dto.PageRequest{Page: 1, Limit: 10}},
		{dto.PageRequest{Page: 4, Limit: 25}, dto.PageRequest{Page: 4, Limit: 25}},
		{dto.PageRequest{Page: 1, Limit: 5000}, dto.PageRequest{Page: 1, Limit: dto.MaxLimit}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.Normalize(), "%+v", tc.in)
	}
}

func TestPageRequest_OffsetYTotalPages(t *testing.T) {
	p := dto.PageRequest{Page: 2, Limit: 10}
	assert.Equal(t, 10, p.Offset())
	assert.EqualValues(t, 3, p.TotalPages(25))
	assert.EqualValues(t, 2, p.TotalPages(20))
	assert.EqualValues(t, 0, p.TotalPages(0))
}

func TestPageRequest_OffsetSinDesborde(t *testing.T) {
	assert.Equal(t, 0, dto.PageRequest{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, dto.PageRequest{Page: 1e18, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, dto.PageRequest{Page: math.MaxInt, Limit: dto.MaxLimit}.Offset())
}

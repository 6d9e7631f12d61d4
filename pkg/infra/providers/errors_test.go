package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{401, ErrAuthFailure},
		{403, ErrAuthFailure},
		{429, ErrRateLimited},
		{500, ErrUnavailable},
		{502, ErrUnavailable},
		{529, ErrUnavailable},
		{400, ErrUnavailable},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, ClassifyStatus(tc.status), tc.want, "status %d", tc.status)
	}
}

package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrInvalidAmount, 400},
		{ErrInsufficientFunds, 400},
		{ErrNoTokensIssued, 400},
		{ErrExceedsAvailable, 409},
		{ErrPropertyUnavailable, 404},
		{ErrWalletNotFound, 404},
		{ErrNotFound, 404},
		{ErrUnauthorized, 403},
		{errors.New("driver: bad connection"), 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, StatusCode(tc.err), "error %q", tc.err)
	}
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(ErrInsufficientFunds))
	assert.True(t, IsDomain(ErrExceedsAvailable))
	assert.False(t, IsDomain(errors.New("driver: bad connection")))
}

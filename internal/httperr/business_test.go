package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOK   bool
		wantCode string
	}{
		{"invalid input", InvalidInput("invalid_party_size"), KindInvalidInput, true, "invalid_party_size"},
		{"not found", NotFoundErr("table_not_found"), KindNotFound, true, "table_not_found"},
		{"rejected", Rejected("time_conflict"), KindBookingRejected, true, "time_conflict"},
		{"plain business", ErrBusiness("invalid_state"), KindBusiness, true, "invalid_state"},
		{"wrapped", fmt.Errorf("book: %w", Rejected("table_blocked")), KindBookingRejected, true, "table_blocked"},
		{"foreign error", errors.New("boom"), 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantCode, CodeOf(tt.err))
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Rejected("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "table_blocked"))
	assert.False(t, IsBusiness(errors.New("time_conflict"), "time_conflict"))
}

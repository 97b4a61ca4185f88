package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsStorageFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "storage failure",
			err:  ErrStorage,
			want: true,
		},
		{
			name: "wrapped with cause",
			err:  fmt.Errorf("%w: customer: %w", ErrStorage, errors.New("no space left on device")),
			want: true,
		},
		{
			name: "not found",
			err:  fmt.Errorf("order 1000: %w", ErrNotFound),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStorageFailure(tt.err); got != tt.want {
				t.Errorf("IsStorageFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

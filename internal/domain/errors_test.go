package domain

import (
	"fmt"
	"testing"
)

func TestIsWarning(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("ledger: %w", ErrFileWrite), true},
		{fmt.Errorf("schedule: %w", ErrFileRead), true},
		{fmt.Errorf("ledger: %w", ErrNoActiveDelivery), false},
		{ErrProcessing, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsWarning(tt.err); got != tt.want {
			t.Errorf("IsWarning(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsDeclined(t *testing.T) {
	if !IsDeclined(fmt.Errorf("x: %w", ErrDuplicateActiveDelivery)) {
		t.Error("expected duplicate delivery to be declined")
	}
	if !IsDeclined(ErrNoActiveDelivery) {
		t.Error("expected no active delivery to be declined")
	}
	if !IsDeclined(fmt.Errorf("deliver: %w for LUNES", ErrNoMatchingClass)) {
		t.Error("expected no matching class to be declined")
	}
	if IsDeclined(ErrFileWrite) {
		t.Error("write failure is not a declined operation")
	}
}

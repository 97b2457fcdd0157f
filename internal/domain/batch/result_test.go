package batch

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/recdex/internal/domain/item"
)

func TestNewOK(t *testing.T) {
	k := item.New("Heat", 1995)
	r := NewOK(k)
	if r.Key() != k {
		t.Errorf("Key() = %v", r.Key())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestNewError(t *testing.T) {
	err := errors.New("something failed")
	k := item.New("Up", 2009)
	r := NewError(k, err)
	if r.Key() != k {
		t.Errorf("Key() = %v", r.Key())
	}
	if r.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusError)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
}

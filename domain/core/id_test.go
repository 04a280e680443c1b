package core

import (
	"errors"
	"testing"
)

// TestNewSnapshotIDUniqueness tests that NewSnapshotID generates unique identifiers
func TestNewSnapshotIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[SnapshotID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewSnapshotID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

// TestParseSnapshotID tests snapshot ID parsing
func TestParseSnapshotID(t *testing.T) {
	valid := NewSnapshotID()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid.String(), false},
		{"  " + valid.String() + " ", false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseSnapshotID(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for input %q: %v", tt.input, err)
			}
			if result != valid {
				t.Errorf("Expected %s, got %s", valid, result)
			}
		})
	}
}

func TestSnapshotIDShort(t *testing.T) {
	if got := SnapshotID("abc").Short(); got != "abc" {
		t.Errorf("Expected short ID 'abc', got '%s'", got)
	}
	if got := SnapshotID("0123456789").Short(); got != "01234567" {
		t.Errorf("Expected short ID '01234567', got '%s'", got)
	}
}

func TestComputeJSONHashDeterministic(t *testing.T) {
	a := map[string]float64{"b": 2, "a": 1}
	b := map[string]float64{"a": 1, "b": 2}

	ha, err := ComputeJSONHash(a)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	hb, err := ComputeJSONHash(b)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !ha.Equals(hb) {
		t.Errorf("Expected equal hashes, got %s and %s", ha, hb)
	}
	if len(ha.Short()) != 8 {
		t.Errorf("Expected 8 character short hash, got %q", ha.Short())
	}
}

func TestErrorHelpers(t *testing.T) {
	err := NewInconsistencyError("voice.total", "sub-counts sum to 49")
	if !errors.Is(err, ErrInconsistentCounters) {
		t.Error("Expected inconsistency error to wrap ErrInconsistentCounters")
	}
	if !IsValidationError(err) {
		t.Error("Expected inconsistency error to be a validation error")
	}
	if !IsNotFoundError(NewNotFoundError("snapshot", "x")) {
		t.Error("Expected not-found helper to match")
	}
	if !IsNotFoundError(ErrSnapshotNotFound) {
		t.Error("Expected ErrSnapshotNotFound to be a not-found error")
	}
}

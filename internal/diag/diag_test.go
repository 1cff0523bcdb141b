package diag

import "testing"

func TestNew(t *testing.T) {
	for _, debug := range []bool{false, true} {
		sink, err := New(debug)
		if err != nil {
			t.Fatalf("New(%v) error: %v", debug, err)
		}
		if sink == nil {
			t.Fatalf("New(%v) returned nil sink", debug)
		}
		// Must not panic.
		sink.Debugf("debug %d", 1)
		sink.Warnf("warn %s", "x")
	}
}

func TestNop(t *testing.T) {
	sink := Nop()
	sink.Debugf("discarded %v", 42)
	sink.Warnf("also discarded")
}

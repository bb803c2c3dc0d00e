package models

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestNewTransferID(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	id := NewTransferID(now)

	want := regexp.MustCompile(fmt.Sprintf(`^TRF-%d-[0-9A-F]{4}$`, now.UnixMilli()))
	if !want.MatchString(id) {
		t.Errorf("id = %q, want match for %s", id, want)
	}

	// The random suffix keeps ids distinct within the same millisecond.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[NewTransferID(now)] = true
	}
	if len(seen) < 2 {
		t.Error("ids generated in the same millisecond are not distinct")
	}
}

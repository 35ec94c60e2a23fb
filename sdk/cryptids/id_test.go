package cryptids_test

import (
	"strings"
	"testing"

	"github.com/jrazmi/tasktracker/sdk/cryptids"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		id, err := cryptids.GenerateID()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(id) != cryptids.IDLength {
			t.Fatalf("len(%q) = %d, want %d", id, len(id), cryptids.IDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(cryptids.IDAlphabet, r) {
				t.Fatalf("%q contains %q outside the alphabet", id, r)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateCustomIDRejectsBadInput(t *testing.T) {
	if _, err := cryptids.GenerateCustomID("a", 4); err == nil {
		t.Error("expected error for single character alphabet")
	}
	if _, err := cryptids.GenerateCustomID("ab", 0); err == nil {
		t.Error("expected error for zero size")
	}
}

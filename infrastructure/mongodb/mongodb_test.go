package mongodb_test

import (
	"errors"
	"testing"

	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
)

func TestParseObjectID(t *testing.T) {
	oid, err := mongodb.ParseObjectID("65a1b2c3d4e5f60718293a4b")
	if err != nil {
		t.Fatalf("ParseObjectID: %v", err)
	}
	if oid.Hex() != "65a1b2c3d4e5f60718293a4b" {
		t.Errorf("Hex() = %q", oid.Hex())
	}

	for _, id := range []string{"", "not-an-id", "65a1b2c3"} {
		if _, err := mongodb.ParseObjectID(id); !errors.Is(err, mongodb.ErrDBNotFound) {
			t.Errorf("ParseObjectID(%q) error = %v, want ErrDBNotFound", id, err)
		}
	}
}

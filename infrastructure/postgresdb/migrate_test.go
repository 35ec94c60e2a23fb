package postgresdb

import (
	"testing"
	"testing/fstest"

	"github.com/jrazmi/tasktracker/schema"
)

func TestMigrationFilesSorted(t *testing.T) {
	fsys := fstest.MapFS{
		"pg/010_later.sql": {Data: []byte("SELECT 1;")},
		"pg/001_tasks.sql": {Data: []byte("SELECT 1;")},
		"pg/002_index.sql": {Data: []byte("SELECT 1;")},
		"pg/README.md":     {Data: []byte("notes")},
		"pg/sub/003_x.sql": {Data: []byte("SELECT 1;")},
	}

	files, err := migrationFiles(fsys, "pg")
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}

	want := []string{"001_tasks.sql", "002_index.sql", "010_later.sql"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	files, err := migrationFiles(schema.MigrationsFS, "pgmigrations")
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
}

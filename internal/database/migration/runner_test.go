package migration

import (
	"strings"
	"testing"
	"testing/fstest"

	"studentshub/migrations"
)

func TestLoad_OrdersByVersionAndSkipsUnknownFiles(t *testing.T) {
	src := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("notes")},
	}

	migs, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %+v", migs)
	}
	if migs[0].Name != "first" || migs[0].Checksum == "" {
		t.Fatalf("unexpected migration: %+v", migs[0])
	}
}

func TestLoad_RejectsEmptyAndDuplicate(t *testing.T) {
	if _, err := Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("  ")}}); err == nil {
		t.Fatalf("expected empty file error")
	}

	dup := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := Load(dup); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestLoad_EmbeddedSchema(t *testing.T) {
	migs, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration, got %+v", migs)
	}
	if !strings.Contains(migs[0].SQL, "applications_student_job_active_uniq") {
		t.Fatalf("expected partial unique index in schema")
	}
}

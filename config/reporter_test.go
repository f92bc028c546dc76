package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestReportClose_FinalizesArchive(t *testing.T) {
	reportFile, err := os.CreateTemp("", "test-report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}
	defer os.Remove(reportFile.Name())

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	tmpFile, err := os.CreateTemp("", "test-stored-file-")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString("stored content"); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	r.Store("result-file", tmpFile.Name())
	r.StoreData("inline-data", []byte("inline content"))

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	// archive must contain the manifest and both entries
	arc, err := zip.OpenReader(reportFile.Name())
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer arc.Close()

	want := map[string]bool{"MANIFEST": false, "result-file": false, "inline-data": false}
	for _, f := range arc.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q in report archive", name)
		}
	}

	// stored file itself must survive archiving
	if _, err := os.Stat(tmpFile.Name()); err != nil {
		t.Errorf("stored file should not be removed, but got error: %v", err)
	}
}

func TestReportStoreCopy(t *testing.T) {
	reportFile, err := os.CreateTemp("", "test-report-*.zip")
	if err != nil {
		t.Fatalf("failed to create temp report file: %v", err)
	}
	defer os.Remove(reportFile.Name())

	r := &Report{
		entries: make(map[string]entry),
		file:    reportFile,
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "input.osu")
	if err := os.WriteFile(src, []byte("osu file format v14\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := r.StoreCopy("input.osu", src); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}

	// mutating the source after StoreCopy must not change what gets archived
	if err := os.WriteFile(src, []byte("changed"), 0644); err != nil {
		t.Fatalf("failed to overwrite test file: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	arc, err := zip.OpenReader(reportFile.Name())
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer arc.Close()

	for _, f := range arc.File {
		if f.Name == "input.osu" {
			if f.UncompressedSize64 != uint64(len("osu file format v14\n")) {
				t.Errorf("archived copy size = %d, want size at StoreCopy time", f.UncompressedSize64)
			}
			return
		}
	}
	t.Error("expected input.osu in report archive")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

package csvio

import (
	"path/filepath"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "things.csv")

	header := []string{"id", "name", "note"}
	records := [][]string{
		{"1", "alpha", "plain"},
		{"2", "beta", "has, comma"},
		{"3", "gamma", "has \"quotes\""},
	}

	if err := Write(path, header, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotHeader, gotRecords, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotHeader) != 3 || gotHeader[0] != "id" || gotHeader[2] != "note" {
		t.Errorf("unexpected header: %v", gotHeader)
	}
	if len(gotRecords) != 3 {
		t.Fatalf("expected 3 records, got %d", len(gotRecords))
	}
	if gotRecords[1][2] != "has, comma" {
		t.Errorf("comma field not preserved: %q", gotRecords[1][2])
	}
	if gotRecords[2][2] != "has \"quotes\"" {
		t.Errorf("quoted field not preserved: %q", gotRecords[2][2])
	}
}

func TestReadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := Write(path, []string{"a", "b"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	header, records, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(header) != 2 {
		t.Errorf("unexpected header: %v", header)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")

	if err := Write(path, []string{"a"}, [][]string{{"1"}, {"2"}}); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, []string{"a"}, [][]string{{"9"}}); err != nil {
		t.Fatal(err)
	}

	_, records, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0][0] != "9" {
		t.Errorf("expected overwrite to leave one record, got %v", records)
	}
}

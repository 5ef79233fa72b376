package extractor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTemp(t, "statement.csv", "Date,Narration,Amount\n01/04/2024,UPI PAYMENT,100\n")

	rows, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][1] != "UPI PAYMENT" {
		t.Errorf("rows[1][1] = %q, want UPI PAYMENT", rows[1][1])
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	// Bank exports often have metadata rows with fewer fields than the
	// transaction table; the reader must not reject them.
	path := writeTemp(t, "ragged.csv", "Some Bank\nDate,Narration,Amount\n01/04/2024,POS,100\n")

	rows, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
}

func TestReadTabularDispatch(t *testing.T) {
	path := writeTemp(t, "statement.csv", "Date,Amount\n01/04/2024,100\n")
	if _, err := ReadTabular(path); err != nil {
		t.Errorf("ReadTabular(.csv) failed: %v", err)
	}

	if _, err := ReadTabular(writeTemp(t, "notes.txt", "x")); err == nil {
		t.Error("ReadTabular(.txt) succeeded, want error")
	}
}

func TestReadXLSXMissingFile(t *testing.T) {
	if _, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("ReadXLSX on missing file succeeded, want error")
	}
}

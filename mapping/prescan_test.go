package mapping

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMappingFile(t *testing.T, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.paf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	for _, l := range lines {
		if _, err := f.WriteString(l + "\n"); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return path
}

func TestPrescanTotalAlignedBP(t *testing.T) {
	path := writeMappingFile(t, []string{
		"q1 8 0 8 + chr1 12 0 8 id:f:100.0",
		"q2 6 0 6 - chr1 6 0 6 id:f:99.0",
		"",
		"q1 8 0 4 + chr1 12 4 8 id:f:95.0",
	})
	total, err := PrescanTotalAlignedBP(path, ParseConfig{DefaultIdentity: 0.95}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 18 {
		t.Fatalf("expected total 18, got %d", total)
	}
}

func TestPrescanEmptyFile(t *testing.T) {
	path := writeMappingFile(t, nil)
	total, err := PrescanTotalAlignedBP(path, ParseConfig{DefaultIdentity: 0.95}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected total 0, got %d", total)
	}
}

func TestPrescanMalformedLine(t *testing.T) {
	path := writeMappingFile(t, []string{"too few fields"})
	if _, err := PrescanTotalAlignedBP(path, ParseConfig{DefaultIdentity: 0.95}, 2); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

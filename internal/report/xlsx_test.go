package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestConvertTSV(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "sample_1_20240101_120000.tsv")
	rows := []string{
		"probe1\tNR_074334.1\t98\t99.123\t1421\t2\t0\t1\t1421\t15\t1435\t0.0\t2562\t2562\t98\t1450\t1500000\t1773\tMycobacterium marinum\tBacteria",
		"probe1\tNR_025238.1\t97\t98.5\t1400\t5\t1\t1\t1400\t20\t1419\t0.0\t2489\t2489\t97\t1450\t1480000\t1781\tMycobacterium fortuitum\tBacteria",
	}
	if err := os.WriteFile(tsv, []byte(strings.Join(rows, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	xlsx, err := ConvertTSV(tsv)
	if err != nil {
		t.Fatalf("ConvertTSV: %v", err)
	}
	if xlsx != strings.TrimSuffix(tsv, ".tsv")+".xlsx" {
		t.Errorf("xlsx path = %q", xlsx)
	}

	f, err := excelize.OpenFile(xlsx)
	if err != nil {
		t.Fatalf("open generated xlsx: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2 data)", len(got))
	}
	if got[0][0] != "query_seq_id" || got[0][len(Columns)-1] != "sskingdoms" {
		t.Errorf("header row = %v", got[0])
	}
	if got[1][1] != "NR_074334.1" {
		t.Errorf("subject id = %q", got[1][1])
	}
	if got[2][18] != "Mycobacterium fortuitum" {
		t.Errorf("sciname = %q", got[2][18])
	}
}

func TestConvertTSV_SkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "x.tsv")
	if err := os.WriteFile(tsv, []byte("a\tb\n\nc\td\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	xlsx, err := ConvertTSV(tsv)
	if err != nil {
		t.Fatalf("ConvertTSV: %v", err)
	}
	f, err := excelize.OpenFile(xlsx)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3 (header + 2 data, blank skipped)", len(rows))
	}
}

func TestConvertTSV_MissingFile(t *testing.T) {
	if _, err := ConvertTSV(filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Error("expected error for missing TSV")
	}
}

func TestColumnsSchema(t *testing.T) {
	if len(Columns) != 20 {
		t.Errorf("schema has %d columns, want 20", len(Columns))
	}
}

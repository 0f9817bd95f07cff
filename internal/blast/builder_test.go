package blast

import (
	"strings"
	"testing"
	"time"

	"github.com/mingzapingin/BatchBlast/internal/config"
)

func TestBuildArgs(t *testing.T) {
	cfg := config.DefaultConfig()
	args := BuildArgs(&cfg, "/q/sample_1.fasta", "/out/sample_1_x.tsv")

	if args[0] != "blastn" {
		t.Errorf("program = %q, want blastn", args[0])
	}
	wantPairs := map[string]string{
		"-task":            "megablast",
		"-query":           "/q/sample_1.fasta",
		"-db":              "core_nt",
		"-max_target_seqs": "200",
		"-out":             "/out/sample_1_x.tsv",
	}
	for flag, val := range wantPairs {
		if got := argValue(args, flag); got != val {
			t.Errorf("%s = %q, want %q", flag, got, val)
		}
	}
	if !contains(args, "-remote") {
		t.Error("missing -remote")
	}
	if contains(args, "-entrez_query") {
		t.Error("-entrez_query present without a filter")
	}

	outfmt := argValue(args, "-outfmt")
	if !strings.HasPrefix(outfmt, "6 qseqid saccver") || !strings.HasSuffix(outfmt, "sskingdoms") {
		t.Errorf("unexpected outfmt: %q", outfmt)
	}
	if got := len(strings.Fields(outfmt)); got != 21 { // "6" + 20 fields
		t.Errorf("outfmt has %d tokens, want 21", got)
	}
}

func TestBuildArgs_WithFilter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Filter = "txid1762[Organism]"
	args := BuildArgs(&cfg, "q.fasta", "o.tsv")

	if got := argValue(args, "-entrez_query"); got != "txid1762[Organism]" {
		t.Errorf("-entrez_query = %q", got)
	}
}

func TestOutputName(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	got := OutputName("/in/sample_1.fasta", "/out", "", now)
	if got != "/out/sample_1_20240102_150405.tsv" {
		t.Errorf("got %q", got)
	}

	got = OutputName("/in/sample_1.fasta", "/out", "Myco", now)
	if got != "/out/sample_1_vs_Myco_20240102_150405.tsv" {
		t.Errorf("got %q", got)
	}
}

// argValue returns the token following flag, or "".
func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func contains(args []string, s string) bool {
	for _, a := range args {
		if a == s {
			return true
		}
	}
	return false
}

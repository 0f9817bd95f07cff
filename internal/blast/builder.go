// Package blast builds and executes remote blastn invocations, one query
// file per job, and converts successful results to spreadsheets.
package blast

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mingzapingin/BatchBlast/internal/config"
	"github.com/mingzapingin/BatchBlast/internal/fasta"
)

// outFmt is the fixed outfmt-6 column schema. The order must match
// [report.Columns]; the spreadsheet header is aligned positionally.
const outFmt = "6 qseqid saccver " +
	"qcovs " +
	"pident length mismatch gapopen " +
	"qstart qend sstart send " +
	"evalue " +
	"bitscore " +
	"score " +
	"qcovhsp " +
	"qlen slen " +
	"staxids sscinames sskingdoms"

// BuildArgs constructs the complete blastn argument vector (including the
// program name) for one query file writing to outPath.
func BuildArgs(cfg *config.Config, query, outPath string) []string {
	args := []string{
		"blastn",
		"-task", string(cfg.Task),
		"-query", query,
		"-db", string(cfg.Database),
		"-remote",
		"-max_target_seqs", strconv.Itoa(cfg.MaxTargetSeqs),
		"-outfmt", outFmt,
		"-out", outPath,
	}
	if cfg.Filter != "" {
		args = append(args, "-entrez_query", cfg.Filter)
	}
	return args
}

// OutputName builds the timestamped TSV path for a query:
// <stem>_vs_<filterName>_<ts>.tsv when a filter label is set, else
// <stem>_<ts>.tsv. The stem prefix is what the completion check keys on.
func OutputName(query, outDir, filterName string, now time.Time) string {
	ts := now.Format("20060102_150405")
	stem := fasta.Stem(query)
	if filterName != "" {
		return filepath.Join(outDir, fmt.Sprintf("%s_vs_%s_%s.tsv", stem, filterName, ts))
	}
	return filepath.Join(outDir, fmt.Sprintf("%s_%s.tsv", stem, ts))
}

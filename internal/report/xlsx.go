// Package report converts raw blastn outfmt-6 TSV output into spreadsheets.
// The generated .xlsx is the durable completion artifact the scheduler keys
// resumption on, so conversion is part of the job, not an afterthought.
package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Columns are the spreadsheet headers for the fixed outfmt-6 schema, aligned
// positionally with the fields blastn is asked to emit.
var Columns = []string{
	"query_seq_id", "subject_seq_id", "query_coverage", "percent_identity",
	"length", "mismatch", "gapopen",
	"query_start", "query_end", "subject_start", "send",
	"evalue", "bitscore", "score",
	"qcovhsp", "query_length", "subject_length(Acc. Len)",
	"staxids", "sscinames", "sskingdoms",
}

// ConvertTSV reads a tab-separated blastn result and writes a spreadsheet
// with the same stem and a .xlsx extension next to it. Returns the new path.
func ConvertTSV(tsvPath string) (string, error) {
	f, err := os.Open(tsvPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	x := excelize.NewFile()
	defer x.Close()
	const sheet = "Sheet1"

	header := toRow(Columns)
	if err := x.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}

	row := 2
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		cells := parseCells(strings.Split(line, "\t"))
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return "", err
		}
		if err := x.SetSheetRow(sheet, cell, &cells); err != nil {
			return "", err
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scan %s: %w", tsvPath, err)
	}

	xlsxPath := strings.TrimSuffix(tsvPath, ".tsv") + ".xlsx"
	if err := x.SaveAs(xlsxPath); err != nil {
		return "", err
	}
	return xlsxPath, nil
}

// parseCells converts numeric-looking fields so the spreadsheet gets real
// numbers; everything else stays a string.
func parseCells(fields []string) []interface{} {
	cells := make([]interface{}, len(fields))
	for i, s := range fields {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			cells[i] = n
			continue
		}
		if fv, err := strconv.ParseFloat(s, 64); err == nil {
			cells[i] = fv
			continue
		}
		cells[i] = s
	}
	return cells
}

func toRow(ss []string) []interface{} {
	row := make([]interface{}, len(ss))
	for i, s := range ss {
		row[i] = s
	}
	return row
}

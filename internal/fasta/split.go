// Package fasta reads and splits FASTA files. A record is one header line
// (prefix ">") plus the sequence lines that follow it until the next header
// or EOF.
package fasta

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SplitExt is the extension given to generated single-record files.
const SplitExt = ".fasta"

// Stem returns the file's base name without its extension. This is the unit
// identity used for split naming and completion matching.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CountRecords scans a FASTA file once and returns the number of header lines.
func CountRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), ">") {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("scan %s: %w", path, err)
	}
	return n, nil
}

// Split turns a possibly multi-record FASTA into independent single-record
// files under outDir, named <stem>_<1-based index>.fasta in record order.
// Sequence lines are concatenated and re-wrapped to lineWidth columns, so
// re-splitting the same input yields byte-identical files. A file with at
// most one header is returned unchanged and outDir is not touched.
func Split(path, outDir string, lineWidth int) ([]string, error) {
	n, err := CountRecords(path)
	if err != nil {
		return nil, err
	}
	if n <= 1 {
		return []string{path}, nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stem := Stem(path)
	var (
		units  []string
		header string
		seq    strings.Builder
		idx    int
	)

	flush := func() error {
		if header == "" {
			return nil
		}
		idx++
		out := filepath.Join(outDir, fmt.Sprintf("%s_%d%s", stem, idx, SplitExt))

		var buf strings.Builder
		buf.WriteString(header)
		buf.WriteByte('\n')
		for _, chunk := range wrap(seq.String(), lineWidth) {
			buf.WriteString(chunk)
			buf.WriteByte('\n')
		}
		if err := os.WriteFile(out, []byte(buf.String()), 0o644); err != nil {
			return err
		}
		units = append(units, out)
		header = ""
		seq.Reset()
		return nil
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return nil, err
			}
			header = line
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	// Trailing record has no terminating header; flush it at EOF.
	if err := flush(); err != nil {
		return nil, err
	}
	return units, nil
}

// FirstRecordLength returns the sequence length of the first record, stopping
// early once it exceeds limit (the exact tail length is irrelevant then).
func FirstRecordLength(path string, limit int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	length := 0
	inFirst := false
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, ">") {
			if inFirst {
				break
			}
			inFirst = true
			continue
		}
		if !inFirst {
			continue
		}
		length += len(strings.TrimSpace(line))
		if length > limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("scan %s: %w", path, err)
	}
	return length, nil
}

// wrap slices s into fixed-width chunks; the last chunk may be shorter.
// An empty string yields no chunks.
func wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	chunks := make([]string, 0, len(s)/width+1)
	for len(s) > width {
		chunks = append(chunks, s[:width])
		s = s[width:]
	}
	return append(chunks, s)
}

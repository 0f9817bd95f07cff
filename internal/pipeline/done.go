package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mingzapingin/BatchBlast/internal/fasta"
)

// finalArtifactExt marks a unit's job as complete. Completion is derived
// purely from the output directory's contents; there is no manifest.
const finalArtifactExt = ".xlsx"

// IsDone reports whether a completion artifact for the query already exists
// in outDir. An artifact matches when its extension is .xlsx and its name is
// the query's stem followed by "_" or the extension itself; requiring the
// boundary keeps sample_1 from matching sample_12's results. Pure and
// side-effect-free; an unreadable outDir counts as "not done".
func IsDone(query, outDir string) bool {
	stem := fasta.Stem(query)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), finalArtifactExt) {
			continue
		}
		if name == stem+finalArtifactExt || strings.HasPrefix(name, stem+"_") {
			return true
		}
	}
	return false
}

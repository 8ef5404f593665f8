package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Merge concatenates the profile document with an optional resume, profile
// first, and writes the result to outPath, replacing any prior artifact.
// An empty resumePath merges the profile page alone. The resume is validated
// up front and the output lands via temp file + rename, so a corrupt resume
// fails the whole operation without leaving a partial document behind.
func Merge(profilePath, resumePath, outPath string) error {
	inputs := []string{profilePath}
	if resumePath != "" {
		if err := api.ValidateFile(resumePath, nil); err != nil {
			return fmt.Errorf("validate resume %s: %w", resumePath, err)
		}
		inputs = append(inputs, resumePath)
	}

	tmp := filepath.Join(filepath.Dir(outPath), fmt.Sprintf(".merge-%s.pdf", uuid.NewString()))
	if err := api.MergeCreateFile(inputs, tmp, false, nil); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("merge documents: %w", err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize merged document: %w", err)
	}
	return nil
}

// PageCount reports the number of pages in the document at path.
func PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

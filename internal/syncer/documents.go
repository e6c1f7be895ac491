package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
)

// Document is one local Markdown file ready for upload.
type Document struct {
	// File is the base filename, e.g. "Brute_Force_Detection.md".
	File string

	// Stem is the filename without extension; it derives the remote path.
	Stem string

	// Title is the human-readable page title derived from the stem.
	Title string

	// Body is the file content.
	Body string
}

var titleSeparators = regexp.MustCompile(`[_\s]+`)

// TitleFromStem converts a filename stem into a readable title by
// collapsing underscores and whitespace runs into single spaces.
func TitleFromStem(stem string) string {
	return titleSeparators.ReplaceAllString(stem, " ")
}

// LoadDocuments reads every .md file in dir, sorted by filename.
// A missing directory is a fatal precondition for upload.
func LoadDocuments(fsys fs.FS, dir string) ([]Document, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithDetails(
				errors.EExportDirMissing,
				fmt.Sprintf("markdown directory not found: %s", dir),
				map[string]string{"export_dir": dir},
			)
		}
		return nil, errors.Wrap(errors.EInternal, "failed to read markdown directory", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		body, err := fsys.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.Wrap(errors.EInternal, "failed to read "+entry.Name(), err)
		}
		stem := strings.TrimSuffix(entry.Name(), ".md")
		docs = append(docs, Document{
			File:  entry.Name(),
			Stem:  stem,
			Title: TitleFromStem(stem),
			Body:  string(body),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].File < docs[j].File })
	return docs, nil
}

// RemotePath joins the configured base path with the document stem.
// Leading slashes are stripped to match Wiki.js path format.
func RemotePath(basePath, stem string) string {
	return strings.TrimLeft(basePath+"/"+stem, "/")
}

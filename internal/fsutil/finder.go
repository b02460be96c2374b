// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches root for all files ending with
// extension. It returns their full paths in lexical order.
func FindFilesByExtension(root string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// SourceDocuments lists the documents of a source directory: the paths of
// all files with the given extension, relative to dir, slash-separated and
// without the extension. A missing directory holds no documents.
func SourceDocuments(dir, extension string) ([]string, error) {
	ext := "." + strings.TrimPrefix(extension, ".")
	files, err := FindFilesByExtension(dir, ext)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	docs := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, filepath.ToSlash(strings.TrimSuffix(rel, ext)))
	}
	sort.Strings(docs)
	return docs, nil
}

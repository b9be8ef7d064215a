package site

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"coverhub/pkg/cover"
)

type RewriteResult struct {
	Pages   int // HTML files seen
	Applied int // files that had a cover element and were rewritten
}

// RewriteDir applies a cover to every HTML file under root, in place.
// Each page gets its own pick. Files without a cover element are not
// written.
func RewriteDir(root string, sel *cover.Selector) (RewriteResult, error) {
	var res RewriteResult
	err := filepath.WalkDir(root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isHTML(name) {
			return nil
		}
		res.Pages++

		applied, err := rewriteFile(name, sel)
		if err != nil {
			return err
		}
		if applied {
			res.Applied++
			log.Printf("[site] cover applied: %s", name)
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("rewrite %s: %w", root, err)
	}
	return res, nil
}

func rewriteFile(name string, sel *cover.Selector) (bool, error) {
	info, err := os.Stat(name)
	if err != nil {
		return false, err
	}
	src, err := os.ReadFile(name)
	if err != nil {
		return false, err
	}

	var buf bytes.Buffer
	applied, err := cover.ApplyToHTML(sel, bytes.NewReader(src), &buf)
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	if !applied {
		return false, nil
	}
	if err := os.WriteFile(name, buf.Bytes(), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

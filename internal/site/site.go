// Package site serves a built static site and applies a random cover to
// every HTML page as it is served.
package site

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"coverhub/pkg/cover"
)

// ListSource supplies the current cover list. *covers.Repo implements it.
type ListSource interface {
	URLs(ctx context.Context) (cover.List, error)
}

// StaticList is a fixed cover list.
type StaticList cover.List

func (l StaticList) URLs(context.Context) (cover.List, error) {
	return cover.List(l), nil
}

type Handler struct {
	Root      string
	Covers    ListSource
	ElementID string
}

func NewHandler(root string, covers ListSource, elementID string) *Handler {
	return &Handler{Root: root, Covers: covers, ElementID: elementID}
}

// Serve is meant for router.NoRoute.
func (h *Handler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	name, ok := h.resolve(c.Request.URL.Path)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	if !isHTML(name) {
		c.File(name)
		return
	}

	src, err := os.ReadFile(name)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	out, err := h.render(c.Request.Context(), src)
	if err != nil {
		log.Printf("[site] %s: %v", c.Request.URL.Path, err)
		out = src
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", out)
}

// render applies a cover to src. An empty list leaves the page as is.
func (h *Handler) render(ctx context.Context, src []byte) ([]byte, error) {
	urls, err := h.Covers.URLs(ctx)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return src, nil
	}

	var buf bytes.Buffer
	sel := cover.NewSelector(urls, cover.WithElementID(h.ElementID))
	applied, err := cover.ApplyToHTML(sel, bytes.NewReader(src), &buf)
	if err != nil {
		return nil, err
	}
	if !applied {
		return src, nil
	}
	return buf.Bytes(), nil
}

// resolve maps a request path to a regular file under Root. Directories
// resolve to their index.html.
func (h *Handler) resolve(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if strings.Contains(clean, "\x00") {
		return "", false
	}
	name := filepath.Join(h.Root, filepath.FromSlash(clean))

	rel, err := filepath.Rel(h.Root, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	info, err := os.Stat(name)
	if errors.Is(err, fs.ErrNotExist) && filepath.Ext(name) == "" {
		// pretty URLs: /about -> /about.html
		name += ".html"
		info, err = os.Stat(name)
	}
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		name = filepath.Join(name, "index.html")
		info, err = os.Stat(name)
		if err != nil || info.IsDir() {
			return "", false
		}
	}
	return name, true
}

func isHTML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

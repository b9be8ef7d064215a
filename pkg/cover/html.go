package cover

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLDocument is a Document backed by a parsed HTML tree.
type HTMLDocument struct {
	root *html.Node
}

func ParseHTML(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &HTMLDocument{root: root}, nil
}

// ElementByID returns the first element in document order with the given id.
func (d *HTMLDocument) ElementByID(id string) (Element, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return &htmlElement{node: n}, true
}

func (d *HTMLDocument) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// ApplyToHTML parses r, applies a random cover and writes the document to w.
// The document is written even when no cover element was found.
func ApplyToHTML(s *Selector, r io.Reader, w io.Writer) (bool, error) {
	doc, err := ParseHTML(r)
	if err != nil {
		return false, err
	}
	applied := s.ApplyRandomCover(doc)
	if err := doc.Render(w); err != nil {
		return applied, err
	}
	return applied, nil
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

type htmlElement struct {
	node *html.Node
}

func (e *htmlElement) SetBackgroundImage(value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == "style" {
			e.node.Attr[i].Val = setStyleProperty(a.Val, "background-image", value)
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{
		Key: "style",
		Val: "background-image: " + value,
	})
}

// setStyleProperty replaces prop in an inline style, or appends it.
// Other declarations keep their order.
func setStyleProperty(style, prop, value string) string {
	var decls []string
	replaced := false
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.EqualFold(strings.TrimSpace(name), prop) {
			if !replaced {
				decls = append(decls, prop+": "+value)
				replaced = true
			}
			continue
		}
		decls = append(decls, d)
	}
	if !replaced {
		decls = append(decls, prop+": "+value)
	}
	return strings.Join(decls, "; ")
}

// Package cover picks a random cover image reference and applies it as the
// background of a page element.
package cover

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultElementID is the id of the element that receives the cover.
const DefaultElementID = "cover"

// List is the ordered set of candidate cover references.
type List []string

// Element is a page element whose background image can be set.
type Element interface {
	SetBackgroundImage(value string)
}

// Document resolves page elements by id.
type Document interface {
	ElementByID(id string) (Element, bool)
}

type Selector struct {
	covers    List
	elementID string

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Selector)

// WithRand sets the random source. Used by tests to get stable picks.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		if r != nil {
			s.rnd = r
		}
	}
}

func WithElementID(id string) Option {
	return func(s *Selector) {
		if id != "" {
			s.elementID = id
		}
	}
}

// NewSelector copies covers, so later changes to the caller's slice are not seen.
func NewSelector(covers List, opts ...Option) *Selector {
	s := &Selector{
		covers:    append(List(nil), covers...),
		elementID: DefaultElementID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		s.rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return s
}

func (s *Selector) Covers() List {
	return append(List(nil), s.covers...)
}

func (s *Selector) ElementID() string {
	return s.elementID
}

// Pick returns a uniformly chosen entry. ok is false when the list is empty.
func (s *Selector) Pick() (ref string, ok bool) {
	if len(s.covers) == 0 {
		return "", false
	}
	s.mu.Lock()
	i := s.rnd.IntN(len(s.covers))
	s.mu.Unlock()
	return s.covers[i], true
}

// Apply sets a random cover on el. A nil element or an empty list is a no-op.
func (s *Selector) Apply(el Element) bool {
	if el == nil {
		return false
	}
	ref, ok := s.Pick()
	if !ok {
		return false
	}
	el.SetBackgroundImage(CSSURL(ref))
	return true
}

// ApplyRandomCover looks up the cover element in doc and applies a random
// cover to it. It reports whether the element was changed.
func (s *Selector) ApplyRandomCover(doc Document) bool {
	if doc == nil || len(s.covers) == 0 {
		return false
	}
	el, ok := doc.ElementByID(s.elementID)
	if !ok {
		return false
	}
	return s.Apply(el)
}

// CSSURL wraps ref in a CSS url() reference. ref is used as is.
func CSSURL(ref string) string {
	return "url(" + ref + ")"
}

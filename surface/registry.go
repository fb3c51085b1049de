// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/vpcomp/internal/errs"
)

// Provider resolves surface tags to surfaces.
// Implementations must be safe for concurrent use.
type Provider interface {
	Lookup(tag Tag) (*Surface, bool)
}

// Set is a Provider backed by a map of tags to surfaces.
//
// Set is safe for concurrent use.
// Set must not be copied after first use (has mutex).
type Set struct {
	mu      sync.RWMutex
	entries map[Tag]*Surface
}

// NewSet creates an empty surface set.
func NewSet() *Set {
	return &Set{
		entries: make(map[Tag]*Surface),
	}
}

// Register binds a surface to a tag.
// Registering an existing tag replaces the previous surface.
func (s *Set) Register(tag Tag, surf *Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[Tag]*Surface)
	}
	s.entries[tag] = surf
}

// Remove unbinds a tag.
func (s *Set) Remove(tag Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, tag)
}

// Lookup returns the surface bound to tag.
func (s *Set) Lookup(tag Tag) (*Surface, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	surf, ok := s.entries[tag]
	if !ok || surf == nil {
		return nil, false
	}
	return surf, true
}

// Require returns the surface bound to tag or an error matching the
// missing-surface sentinel.
func (s *Set) Require(tag Tag) (*Surface, error) {
	return Require(s, tag)
}

// Len returns the number of bound tags.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Tags returns every bound tag ordered by kind, then index.
func (s *Set) Tags() []Tag {
	s.mu.RLock()
	tags := make([]Tag, 0, len(s.entries))
	for tag := range s.entries {
		tags = append(tags, tag)
	}
	s.mu.RUnlock()

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Kind != tags[j].Kind {
			return tags[i].Kind < tags[j].Kind
		}
		return tags[i].Index < tags[j].Index
	})
	return tags
}

// Require resolves tag through p, failing with an error matching the
// missing-surface sentinel when the tag is unbound.
func Require(p Provider, tag Tag) (*Surface, error) {
	if p == nil {
		return nil, fmt.Errorf("surface %s: no provider: %w", tag, errs.MissingRequiredSurface)
	}
	surf, ok := p.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("surface %s: %w", tag, errs.MissingRequiredSurface)
	}
	return surf, nil
}

// seehuhn.de/go/spectra - colour and spectral numerics for rendering
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package space

import (
	"errors"
	"sync"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
)

// Registry is a table of colour spaces, indexed by name.
// Spaces can be added but never removed.  Name lookups are
// case-insensitive.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	spaces []*Space
	keys   []string
}

// NewRegistry returns a registry which contains the built-in colour spaces.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, s := range Builtin() {
		if err := r.Register(s); err != nil {
			panic(err) // unreachable: built-in names are distinct
		}
	}
	return r
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

// Register adds a colour space to the registry.  A copy of s is stored.
// If a space with the same name (ignoring case) exists already, an error
// wrapping [ErrDuplicateSpace] is returned.
func (r *Registry) Register(s *Space) error {
	if s == nil || s.Name == "" {
		return &ConfigError{Err: errors.New("missing name")}
	}
	key := foldName(s.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.keys, key) {
		return &ConfigError{Space: s.Name, Err: ErrDuplicateSpace}
	}
	c := *s
	r.spaces = append(r.spaces, &c)
	r.keys = append(r.keys, key)
	return nil
}

// Lookup returns the colour space with the given name.
func (r *Registry) Lookup(name string) (*Space, error) {
	key := foldName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := slices.Index(r.keys, key)
	if idx < 0 {
		return nil, &ConfigError{Space: name, Err: ErrUnknownSpace}
	}
	return r.spaces[idx], nil
}

// Must is like [Registry.Lookup] but panics if the space is not found.
func (r *Registry) Must(name string) *Space {
	s, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of registered spaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.spaces)
}

// Names returns the names of all registered spaces, in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, len(r.spaces))
	for i, s := range r.spaces {
		names[i] = s.Name
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// All returns the registered spaces in registration order.
func (r *Registry) All() []*Space {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.spaces)
}

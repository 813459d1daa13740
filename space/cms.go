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

	"golang.org/x/image/math/f64"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/spectra/internal/mat3"
	"seehuhn.de/go/spectra/value"
)

// ErrNoProfile is returned by [NewCMS] for spaces without an ICC profile.
var ErrNoProfile = errors.New("colour space has no ICC profile")

// CMS converts XYZ values to device RGB by executing the ICC profile of a
// colour space, instead of using the built-in matrix and transfer
// function.  For matrix/TRC profiles both paths give the same result.
//
// A CMS is safe for concurrent use.
type CMS struct {
	space *Space
	adapt f64.Mat3

	mu sync.Mutex
	t  *icc.Transform
}

// NewCMS returns a colour management transform for s.
func NewCMS(s *Space) (*CMS, error) {
	if !s.IsRGB() {
		return nil, &ConfigError{Space: s.Name, Err: ErrUnsupportedColourSpace}
	}
	if s.Profile == nil {
		return nil, &ConfigError{Space: s.Name, Err: ErrNoProfile}
	}
	p, err := icc.Decode(s.Profile)
	if err != nil {
		return nil, &ConfigError{Space: s.Name, Err: err}
	}
	A, err := pcsAdaptation(p)
	if err != nil {
		return nil, &ConfigError{Space: s.Name, Err: err}
	}
	t, err := icc.NewTransform(p, icc.PCSToDevice, icc.RelativeColorimetric)
	if err != nil {
		return nil, &ConfigError{Space: s.Name, Err: err}
	}
	return &CMS{space: s, adapt: A, t: t}, nil
}

// Space returns the colour space whose profile is used.
func (c *CMS) Space() *Space {
	return c.space
}

// FromXYZ converts an XYZ value, relative to the white point of the space,
// to encoded device RGB.  The result is clamped to [0, 1].
func (c *CMS) FromXYZ(xyz value.XYZ) value.RGB {
	pcs := mat3.Apply(c.adapt, f64.Vec3(xyz))

	c.mu.Lock()
	rgb := c.t.FromXYZ(pcs[0], pcs[1], pcs[2])
	c.mu.Unlock()

	var res value.RGB
	copy(res[:], rgb)
	return res
}

// FromRGB converts linear RGB in the space to encoded device RGB.
// This replaces [Space.Encode] when delegating to the profile.
func (c *CMS) FromRGB(rgb value.RGB) value.RGB {
	return c.FromXYZ(c.space.RGBToXYZ(rgb))
}

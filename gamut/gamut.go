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

// Package gamut maps colours which cannot be displayed in an RGB colour
// space back into the space's gamut.
//
// Out-of-gamut colours are moved towards a focus point inside the gamut,
// by bisection along a straight line in Lab or XYZ space.  The search
// depth is bounded, so that mapping always terminates and always returns
// a colour inside the unit RGB cube.
package gamut

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/space"
	"seehuhn.de/go/spectra/value"
)

// Method selects how out-of-gamut colours are treated.
type Method int

// These are the supported gamut mapping methods.
const (
	// Clip clamps the RGB channels to [0, 1].
	Clip Method = iota

	// Linear moves the colour towards the grey with the same lightness.
	Linear

	// Node moves the colour towards the grey with L* = 50.
	Node

	// Cusp moves the colour towards a grey whose lightness depends on the
	// hue, approximating the lightness of maximum chroma in the gamut.
	Cusp

	// MoveXYZ moves the colour towards the neutral axis in XYZ space,
	// keeping the luminance.
	MoveXYZ

	// LinearLuv moves the colour towards the grey with the same lightness,
	// along a straight line in L*u*v* space.
	LinearLuv
)

var methodNames = []string{"clip", "linear", "node", "cusp", "xyz", "luv"}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod converts a method name, as returned by [Method.String], to a
// Method.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range methodNames {
		if s == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("unknown gamut mapping method %q", s)
}

// DefaultDepth is the default number of bisection steps.
const DefaultDepth = 20

// maxDepth bounds the bisection depth.  After this many steps the
// interval is below the resolution of float64.
const maxDepth = 64

// Config holds the settings of a [Mapper].
type Config struct {
	Method Method

	// Depth is the number of bisection steps.
	Depth int

	// FlagNegative and FlagAboveOne replace out-of-gamut colours by
	// signal colours, to make them visible in the output.  Flagging is not
	// used with the Clip method.
	FlagNegative bool
	FlagAboveOne bool

	// The signal colours, as linear RGB.  BothColour is used if a colour
	// has negative channels and channels above one, and both flags are
	// set.
	NegativeColour value.RGB
	AboveOneColour value.RGB
	BothColour     value.RGB
}

// DefaultConfig returns the default gamut mapping settings.
func DefaultConfig() Config {
	return Config{
		Method:         Linear,
		Depth:          DefaultDepth,
		NegativeColour: value.RGB{0, 0, 1},
		AboveOneColour: value.RGB{1, 0, 0},
		BothColour:     value.RGB{1, 0, 1},
	}
}

// Check verifies that the configuration is usable.
func (c *Config) Check() error {
	if c.Method < Clip || c.Method > LinearLuv {
		return fmt.Errorf("invalid gamut mapping method %d", int(c.Method))
	}
	if c.Depth < 0 || c.Depth > maxDepth {
		return fmt.Errorf("gamut mapping depth %d not in [0, %d]", c.Depth, maxDepth)
	}
	for _, col := range []value.RGB{c.NegativeColour, c.AboveOneColour, c.BothColour} {
		if !value.Valid(col) {
			return errors.New("invalid flag colour")
		}
	}
	return nil
}

// Mapper converts XYZ values to displayable RGB values.
//
// The configuration can be changed at any time, but is normally set once
// before rendering starts.  A Mapper is safe for concurrent use.
type Mapper struct {
	mu  sync.Mutex
	cfg Config
}

// NewMapper returns a new Mapper.
// If cfg is nil, [DefaultConfig] is used.
func NewMapper(cfg *Config) (*Mapper, error) {
	m := &Mapper{cfg: DefaultConfig()}
	if cfg != nil {
		if err := m.SetConfig(*cfg); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Config returns the current configuration.
func (m *Mapper) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// SetConfig replaces the configuration.
func (m *Mapper) SetConfig(cfg Config) error {
	if err := cfg.Check(); err != nil {
		return err
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return nil
}

// SetMethod changes the gamut mapping method.
func (m *Mapper) SetMethod(method Method) error {
	cfg := m.Config()
	cfg.Method = method
	return m.SetConfig(cfg)
}

// ToUnitRGB converts an XYZ value to linear RGB in the space s, with all
// channels in the range [0, 1].
//
// Colours outside the gamut are first mapped using the configured method,
// then optionally replaced by a flag colour, and finally clamped.  The
// flags are decided based on the colour before mapping.
func (m *Mapper) ToUnitRGB(xyz value.XYZ, s *space.Space) value.RGB {
	cfg := m.Config()

	raw := s.XYZToRGB(xyz)
	rgb := raw
	if cfg.Method != Clip && !inUnitCube(raw) {
		rgb = mapToUnit(cfg.Method, xyz, s, cfg.Depth)
	}
	if cfg.Method != Clip {
		rgb = flag(&cfg, raw, rgb)
	}
	return value.Clamp(rgb, 0, 1)
}

// ToUnitRGBWithGamma is like [Mapper.ToUnitRGB], but also applies the
// transfer function of s.
func (m *Mapper) ToUnitRGBWithGamma(xyz value.XYZ, s *space.Space) value.RGB {
	return s.Encode(m.ToUnitRGB(xyz, s))
}

// ToUnitRGBWithCMS is like [Mapper.ToUnitRGBWithGamma], but the encoding
// is done by the ICC profile behind cms instead of the transfer function
// of the space.
func (m *Mapper) ToUnitRGBWithCMS(xyz value.XYZ, cms *space.CMS) value.RGB {
	return cms.FromRGB(m.ToUnitRGB(xyz, cms.Space()))
}

// ToRGB converts an XYZ value to linear RGB for high dynamic range output.
// Only negative channels are treated as out of gamut; values above one are
// kept.
func (m *Mapper) ToRGB(xyz value.XYZ, s *space.Space) value.RGB {
	cfg := m.Config()

	rgb := s.XYZToRGB(xyz)
	if cfg.Method != Clip && !nonNegative(rgb) {
		rgb = XYZMoveToGamut(xyz, s, cfg.Depth)
	}
	for i := range rgb {
		if !(rgb[i] >= 0) {
			rgb[i] = 0
		}
	}
	return rgb
}

func mapToUnit(method Method, xyz value.XYZ, s *space.Space, depth int) value.RGB {
	white := s.WhiteXYZ()
	switch method {
	case MoveXYZ:
		Y := min(max(xyz[1], 0), 1)
		return XYZMoveToUnitGamut(xyz, value.MulScalar(white, Y), s, depth)
	case LinearLuv:
		luv := cie.XYZToLuv(xyz, white)
		return LuvMoveToUnitGamut(luv, min(max(luv.L, 0), 100), s, white, depth)
	}
	lab := cie.XYZToLab(xyz, white)
	return LabMoveToUnitGamut(lab, Focus(method, lab), s, white, depth)
}

func flag(cfg *Config, raw, rgb value.RGB) value.RGB {
	neg := value.Min(raw) < 0
	above := value.Max(raw) > 1
	switch {
	case neg && above && cfg.FlagNegative && cfg.FlagAboveOne:
		return cfg.BothColour
	case neg && cfg.FlagNegative:
		return cfg.NegativeColour
	case above && cfg.FlagAboveOne:
		return cfg.AboveOneColour
	}
	return rgb
}

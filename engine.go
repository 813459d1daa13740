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


package spectra

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/gamut"
	"seehuhn.de/go/spectra/isr"
	"seehuhn.de/go/spectra/space"
	"seehuhn.de/go/spectra/value"
)

// Options configures a new [Engine].
// Zero fields are replaced by the corresponding default value.
type Options struct {
	// Representation is the internal spectral representation.
	// The default is isr.Spectrum46.
	Representation isr.Kind

	// Whitepoint is the name of the system white point, see
	// [cie.LookupWhitepoint].  The default is "D50".
	Whitepoint string

	// DefaultRGB is the name of the RGB space used for display.
	// The default is sRGB.
	DefaultRGB string

	// Gamut configures gamut mapping.  If this is nil,
	// [gamut.DefaultConfig] is used.
	Gamut *gamut.Config

	// ColourManagement delegates the final encoding of display colours
	// to the ICC profile of the display space, when the space has one.
	// Spaces without a profile use the built-in transfer function.
	ColourManagement bool

	// Logger receives warnings about questionable data.
	// The default is slog.Default().
	Logger *slog.Logger
}

var defaultOptions = &Options{
	Representation: isr.Spectrum46,
	Whitepoint:     "D50",
	DefaultRGB:     space.NameSRGB,
}

// mergeOptions returns a copy of opt where all zero fields are replaced
// by the values from defaultOptions.
func mergeOptions(opt *Options) *Options {
	res := *defaultOptions
	if opt == nil {
		res.Logger = slog.Default()
		return &res
	}
	if opt.Representation != 0 {
		res.Representation = opt.Representation
	}
	if opt.Whitepoint != "" {
		res.Whitepoint = opt.Whitepoint
	}
	if opt.DefaultRGB != "" {
		res.DefaultRGB = opt.DefaultRGB
	}
	res.Gamut = opt.Gamut
	res.ColourManagement = opt.ColourManagement
	res.Logger = opt.Logger
	if res.Logger == nil {
		res.Logger = slog.Default()
	}
	return &res
}

// Engine holds the shared configuration for colour computations.
type Engine struct {
	log    *slog.Logger
	spaces *space.Registry
	mapper *gamut.Mapper
	useCMS bool

	rep    atomic.Pointer[representation]
	closed atomic.Bool

	mu           sync.Mutex
	white        cie.Whitepoint
	whiteChanges int
	defaultRGB   *space.Space
	cms          *space.CMS
}

// representation wraps isr.Representation for use with atomic.Pointer.
type representation struct {
	isr.Representation
}

// New returns a new colour engine.
// If opt is nil, default values are used for all settings.
func New(opt *Options) (*Engine, error) {
	opt = mergeOptions(opt)

	e := &Engine{
		log:    opt.Logger,
		spaces: space.NewRegistry(),
		useCMS: opt.ColourManagement,
	}

	mapper, err := gamut.NewMapper(opt.Gamut)
	if err != nil {
		return nil, err
	}
	e.mapper = mapper

	white, err := cie.LookupWhitepoint(opt.Whitepoint)
	if err != nil {
		return nil, err
	}
	e.white = white

	rgb, err := e.lookupRGB(opt.DefaultRGB)
	if err != nil {
		return nil, err
	}
	if err := e.setDisplay(rgb); err != nil {
		return nil, err
	}

	rep, err := isr.For(opt.Representation)
	if err != nil {
		return nil, err
	}
	e.rep.Store(&representation{rep})

	e.log.Debug("colour engine ready",
		"representation", rep.Kind(),
		"whitepoint", white,
		"rgb", rgb.Name,
		"gamut", mapper.Config().Method)
	return e, nil
}

// Close releases the resources held by the engine.
// After Close has been called, methods which can fail return [ErrClosed].
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return ErrClosed
	}
	e.log.Debug("colour engine closed")
	return nil
}

func (e *Engine) check() error {
	if e.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Representation returns the internal spectral representation.
func (e *Engine) Representation() isr.Representation {
	return e.rep.Load().Representation
}

// SetRepresentation changes the internal spectral representation.
//
// Spectra allocated before the change keep their old representation and
// cannot be combined with spectra allocated afterwards.  For this reason
// the representation must only be changed while no other goroutine uses
// spectra of the engine; callers need to provide this synchronisation.
func (e *Engine) SetRepresentation(k isr.Kind) error {
	if err := e.check(); err != nil {
		return err
	}
	rep, err := isr.For(k)
	if err != nil {
		return err
	}
	old := e.rep.Swap(&representation{rep})
	if old.Kind() != k {
		e.log.Info("spectral representation changed", "from", old.Kind(), "to", k)
	}
	return nil
}

// NewSpectrum allocates a zero spectrum in the current representation.
func (e *Engine) NewSpectrum() (*isr.Spectrum, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	return e.Representation().New(), nil
}

// Zero returns the read-only zero spectrum of the current representation.
func (e *Engine) Zero() *isr.Spectrum {
	return e.Representation().Zero()
}

// Unit returns the read-only unit spectrum of the current representation.
func (e *Engine) Unit() *isr.Spectrum {
	return e.Representation().Unit()
}

// Channels returns the number of channels of the current representation.
func (e *Engine) Channels() int {
	return e.Representation().Channels()
}

// Whitepoint returns the system white point.
func (e *Engine) Whitepoint() cie.Whitepoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.white
}

// WhitepointChanges returns how often the system white point has been
// changed since the engine was created.
func (e *Engine) WhitepointChanges() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.whiteChanges
}

// SetWhitepoint sets the system white point to the named illuminant or
// colour temperature.  See [cie.LookupWhitepoint] for the accepted names.
func (e *Engine) SetWhitepoint(name string) error {
	if err := e.check(); err != nil {
		return err
	}
	w, err := cie.LookupWhitepoint(name)
	if err != nil {
		return err
	}
	e.setWhite(w)
	return nil
}

// SetWhitepointXY sets the system white point to the given chromaticity.
func (e *Engine) SetWhitepointXY(xy vec.Vec2) error {
	if err := e.check(); err != nil {
		return err
	}
	if !(xy.X > 0 && xy.Y > 0 && xy.X+xy.Y <= 1) {
		return fmt.Errorf("white point %v: %w", xy, cie.ErrDegenerateChromaticity)
	}
	e.setWhite(cie.Whitepoint{Name: fmt.Sprintf("xy(%.4f, %.4f)", xy.X, xy.Y), XY: xy})
	return nil
}

// SetWhitepointCCT sets the system white point to the chromaticity of a
// black body at temperature T (in Kelvin).
func (e *Engine) SetWhitepointCCT(T float64) error {
	if err := e.check(); err != nil {
		return err
	}
	xy, err := cie.Blackbody(T)
	if err != nil {
		return err
	}
	e.setWhite(cie.Whitepoint{Name: fmt.Sprintf("%gK", T), XY: xy})
	return nil
}

func (e *Engine) setWhite(w cie.Whitepoint) {
	e.mu.Lock()
	old := e.white
	e.white = w
	e.whiteChanges++
	e.mu.Unlock()
	e.log.Info("system white point changed", "from", old, "to", w)
}

// DefaultRGB returns the RGB space used for display.
func (e *Engine) DefaultRGB() *space.Space {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.defaultRGB
}

// SetDefaultRGB selects the RGB space used for display.
// The space must be registered and must be an RGB space.
func (e *Engine) SetDefaultRGB(name string) error {
	if err := e.check(); err != nil {
		return err
	}
	s, err := e.lookupRGB(name)
	if err != nil {
		return err
	}
	return e.setDisplay(s)
}

func (e *Engine) setDisplay(s *space.Space) error {
	var cms *space.CMS
	if e.useCMS && s.Profile != nil {
		var err error
		cms, err = space.NewCMS(s)
		if err != nil {
			return err
		}
	}
	e.mu.Lock()
	e.defaultRGB = s
	e.cms = cms
	e.mu.Unlock()
	e.log.Debug("display space", "name", s.Name, "cms", cms != nil)
	return nil
}

// CMS returns the colour management transform used for display, or nil
// if display colours are encoded with the transfer function of the
// default RGB space.
func (e *Engine) CMS() *space.CMS {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cms
}

func (e *Engine) display() (*space.Space, *space.CMS) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.defaultRGB, e.cms
}

// toDisplay maps c into s and encodes the result.
func (e *Engine) toDisplay(c value.XYZ, s *space.Space, cms *space.CMS) value.RGB {
	if cms != nil {
		return e.mapper.ToUnitRGBWithCMS(c, cms)
	}
	return e.mapper.ToUnitRGBWithGamma(c, s)
}

func (e *Engine) lookupRGB(name string) (*space.Space, error) {
	s, err := e.spaces.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !s.IsRGB() {
		return nil, &space.ConfigError{Space: s.Name, Err: space.ErrUnsupportedColourSpace}
	}
	return s, nil
}

// Spaces returns the colour space registry of the engine.
func (e *Engine) Spaces() *space.Registry {
	return e.spaces
}

// Gamut returns the gamut mapper of the engine.
func (e *Engine) Gamut() *gamut.Mapper {
	return e.mapper
}

// ImportICC registers the RGB space described by an ICC profile.
// See [space.FromICC] for the supported profiles.
func (e *Engine) ImportICC(name string, data []byte) (*space.Space, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	s, err := space.FromICC(name, data)
	if err != nil {
		return nil, err
	}
	err = e.spaces.Register(s)
	if err != nil {
		return nil, err
	}
	e.log.Info("colour space imported", "name", s.Name, "transfer", s.Transfer)
	return e.spaces.Lookup(s.Name)
}

// XYZToLab converts c to CIELAB, relative to the system white point.
func (e *Engine) XYZToLab(c value.XYZ) cie.Lab {
	return cie.XYZToLab(c, e.Whitepoint().XYZ())
}

// LabToXYZ converts c from CIELAB, relative to the system white point.
func (e *Engine) LabToXYZ(c cie.Lab) value.XYZ {
	return cie.LabToXYZ(c, e.Whitepoint().XYZ())
}

// DeltaE2000 returns the CIEDE2000 colour difference between a and b,
// with both colours converted to CIELAB using the system white point.
func (e *Engine) DeltaE2000(a, b value.XYZ) float64 {
	w := e.Whitepoint().XYZ()
	return cie.DeltaE2000(cie.XYZToLab(a, w), cie.XYZToLab(b, w))
}

// XYZToUnitRGBWithGamma converts c to gamma encoded RGB in the default RGB
// space, applying the configured gamut mapping.
func (e *Engine) XYZToUnitRGBWithGamma(c value.XYZ) (value.RGB, error) {
	if err := e.check(); err != nil {
		return value.RGB{}, err
	}
	s, cms := e.display()
	return e.toDisplay(c, s, cms), nil
}

// SpectrumToDisplay converts x to gamma encoded RGB in the default RGB
// space, applying the configured gamut mapping.
//
// If x contains NaN or infinite values, a warning is logged and an error
// is returned.
func (e *Engine) SpectrumToDisplay(x *isr.Spectrum) (value.RGB, error) {
	if err := e.check(); err != nil {
		return value.RGB{}, err
	}
	if err := x.Check(); err != nil {
		e.log.Warn("invalid spectrum", "err", err)
		return value.RGB{}, err
	}
	s, cms := e.display()
	return e.toDisplay(x.XYZ(s), s, cms), nil
}

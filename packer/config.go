// Package packer is the top-level driver: it accepts an input JAR (via classfile.JarIterator), a
// class-file parser dependency, applies options, and emits one or more segments to an output sink.
package packer

import (
	"fmt"

	"github.com/pack200/packer/bandio"
	"github.com/pack200/packer/classfile"
	"github.com/pack200/packer/errs"
	"github.com/pack200/packer/format"
	"github.com/pack200/packer/internal/options"
	"github.com/pack200/packer/segmenter"
	"github.com/pack200/packer/shredder"
)

// DeflateHintMode is the deflate_hint option's recognized values.
type DeflateHintMode string

const (
	DeflateHintKeep  DeflateHintMode = "keep"
	DeflateHintTrue  DeflateHintMode = "true"
	DeflateHintFalse DeflateHintMode = "false"
)

// ModificationTimeMode is the modification_time option's recognized values.
type ModificationTimeMode string

const (
	ModTimeKeep   ModificationTimeMode = "keep"
	ModTimeLatest ModificationTimeMode = "latest"
)

// AttributeOverride is a per-context-per-name custom disposition for one attribute, as either a
// fixed action (pass/error/strip) or a replacement layout string.
type AttributeOverride struct {
	Context classfile.AttributeContext
	Name    string
	Action  shredder.UnknownAttributeAction
	Layout  string // when non-empty, overrides Action: this attribute gets a known layout
}

// Config holds every recognized packer option (§6). It is built up by functional Options and
// never mutated once a Packer has been constructed from it.
type Config struct {
	SegmentLimit int64
	Effort       int
	StripDebug   bool
	KeepFileOrder bool
	DeflateHint  DeflateHintMode
	ModTime      ModificationTimeMode
	PassFiles    []string
	UnknownAttributeAction shredder.UnknownAttributeAction
	Overrides    []AttributeOverride
	BandCompression format.CompressionType
}

// defaultConfig returns the documented defaults for every recognized option.
func defaultConfig() *Config {
	return &Config{
		SegmentLimit:  1_000_000,
		Effort:        5,
		StripDebug:    false,
		KeepFileOrder: true,
		DeflateHint:   DeflateHintKeep,
		ModTime:       ModTimeKeep,
		UnknownAttributeAction: shredder.ActionPass,
		BandCompression: format.CompressionNone,
	}
}

// Option configures a Config.
type Option = options.Option[*Config]

func WithSegmentLimit(limit int64) Option {
	return options.New(func(c *Config) error {
		if limit < segmenter.NoLimit {
			return fmt.Errorf("%w: segment_limit must be >= -1, got %d", errs.ErrInvalidOption, limit)
		}
		c.SegmentLimit = limit

		return nil
	})
}

func WithEffort(effort int) Option {
	return options.New(func(c *Config) error {
		if effort < 1 || effort > 9 {
			return fmt.Errorf("%w: effort must be in [1,9], got %d", errs.ErrInvalidOption, effort)
		}
		c.Effort = effort

		return nil
	})
}

func WithStripDebug(strip bool) Option {
	return options.NoError(func(c *Config) { c.StripDebug = strip })
}

func WithKeepFileOrder(keep bool) Option {
	return options.NoError(func(c *Config) { c.KeepFileOrder = keep })
}

func WithDeflateHint(mode DeflateHintMode) Option {
	return options.New(func(c *Config) error {
		switch mode {
		case DeflateHintKeep, DeflateHintTrue, DeflateHintFalse:
			c.DeflateHint = mode

			return nil
		default:
			return fmt.Errorf("%w: invalid deflate_hint %q", errs.ErrInvalidOption, mode)
		}
	})
}

func WithModificationTime(mode ModificationTimeMode) Option {
	return options.New(func(c *Config) error {
		switch mode {
		case ModTimeKeep, ModTimeLatest:
			c.ModTime = mode

			return nil
		default:
			return fmt.Errorf("%w: invalid modification_time %q", errs.ErrInvalidOption, mode)
		}
	})
}

func WithPassFiles(names ...string) Option {
	return options.NoError(func(c *Config) { c.PassFiles = append(c.PassFiles, names...) })
}

func WithUnknownAttributeAction(action shredder.UnknownAttributeAction) Option {
	return options.NoError(func(c *Config) { c.UnknownAttributeAction = action })
}

func WithAttributeOverride(override AttributeOverride) Option {
	return options.NoError(func(c *Config) { c.Overrides = append(c.Overrides, override) })
}

// WithBandCompression sets the supplemented band_compression option (see SPEC_FULL.md): an
// optional post-encoding compressor applied to any finished band that clears
// bandio.CompressionThreshold. format.CompressionNone (the default) skips compression entirely.
func WithBandCompression(kind format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := bandio.Get(kind); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalidOption, err)
		}
		c.BandCompression = kind

		return nil
	})
}

// shouldPassFile reports whether name matches one of the configured pass_files entries, either
// exactly or as a directory-prefix match.
func (c *Config) shouldPassFile(name string) bool {
	for _, p := range c.PassFiles {
		if name == p || (len(name) > len(p) && name[:len(p)] == p && p != "") {
			return true
		}
	}

	return false
}

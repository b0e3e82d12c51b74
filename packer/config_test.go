package packer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pack200/packer/classfile"
	"github.com/pack200/packer/format"
	"github.com/pack200/packer/internal/options"
	"github.com/pack200/packer/shredder"
)

func apply(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	err := options.Apply(cfg, opts...)

	return cfg, err
}

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := defaultConfig()

	require.EqualValues(t, 1_000_000, cfg.SegmentLimit)
	require.Equal(t, 5, cfg.Effort)
	require.False(t, cfg.StripDebug)
	require.True(t, cfg.KeepFileOrder)
	require.Equal(t, DeflateHintKeep, cfg.DeflateHint)
	require.Equal(t, ModTimeKeep, cfg.ModTime)
	require.Equal(t, shredder.ActionPass, cfg.UnknownAttributeAction)
	require.Equal(t, format.CompressionNone, cfg.BandCompression)
}

func TestWithEffortRejectsOutOfRange(t *testing.T) {
	_, err := apply(WithEffort(0))
	require.Error(t, err)

	_, err = apply(WithEffort(10))
	require.Error(t, err)
}

func TestWithSegmentLimitRejectsBelowNoLimit(t *testing.T) {
	_, err := apply(WithSegmentLimit(-2))
	require.Error(t, err)
}

func TestWithDeflateHintRejectsUnknownMode(t *testing.T) {
	_, err := apply(WithDeflateHint("sometimes"))
	require.Error(t, err)
}

func TestWithModificationTimeRejectsUnknownMode(t *testing.T) {
	_, err := apply(WithModificationTime("whenever"))
	require.Error(t, err)
}

func TestWithBandCompressionAcceptsKnownBackends(t *testing.T) {
	cfg, err := apply(WithBandCompression(format.CompressionLZ4))
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, cfg.BandCompression)
}

func TestShouldPassFileMatchesExactAndPrefix(t *testing.T) {
	cfg, err := apply(WithPassFiles("META-INF/MANIFEST.MF", "com/example/"))
	require.NoError(t, err)

	require.True(t, cfg.shouldPassFile("META-INF/MANIFEST.MF"))
	require.True(t, cfg.shouldPassFile("com/example/Widget.class"))
	require.False(t, cfg.shouldPassFile("com/other/Widget.class"))
}

func TestWithAttributeOverrideAccumulates(t *testing.T) {
	cfg, err := apply(
		WithAttributeOverride(AttributeOverride{Context: classfile.ContextMethod, Name: "Foo", Layout: "H"}),
		WithAttributeOverride(AttributeOverride{Context: classfile.ContextClass, Name: "Bar", Action: shredder.ActionStrip}),
	)
	require.NoError(t, err)
	require.Len(t, cfg.Overrides, 2)
}

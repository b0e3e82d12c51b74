package packer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pack200/packer/classfile"
)

// replayParser adapts classfile.Replay over a fixed classfile.Class into the ClassParser shape,
// ignoring the raw bytes entirely — tests drive the visitor directly rather than parsing real
// class-file bytes, since a real bytecode parser is out of scope (see classfile package doc).
func replayParser(classes map[string]classfile.Class) ClassParser {
	return func(data []byte, visitor classfile.ClassVisitor) error {
		c := classes[string(data)]

		return classfile.Replay(visitor, c)
	}
}

func minimalClassBytes(major uint16) []byte {
	b := make([]byte, 8)
	copy(b[0:4], []byte{0xCA, 0xFE, 0xBA, 0xBE})
	b[6] = byte(major >> 8)
	b[7] = byte(major)

	return b
}

func TestPackProducesOneSegmentPerHeader(t *testing.T) {
	aBytes := minimalClassBytes(52)
	classes := map[string]classfile.Class{
		string(aBytes): {Version: 52, Access: 0x21, Name: "a/A", SuperName: "java/lang/Object"},
	}

	jar := classfile.NewMemoryJar([]classfile.Entry{
		{Name: "a/A.class", Data: aBytes, ModTime: 100},
		{Name: "README.txt", Data: []byte("hello"), ModTime: 100},
	})

	p := NewDefault(replayParser(classes))

	var out bytes.Buffer
	stats, err := p.Pack(jar, &out)

	require.NoError(t, err)
	require.Equal(t, 1, stats.Segments)
	require.Equal(t, 1, stats.Classes)
	require.Equal(t, 1, stats.PassedFiles)
	require.True(t, bytes.HasPrefix(out.Bytes(), []byte{0xCA, 0xFE, 0xD0, 0x0D}))
}

func TestPackRoutesMalformedClassThroughPassThrough(t *testing.T) {
	aBytes := minimalClassBytes(52)

	jar := classfile.NewMemoryJar([]classfile.Entry{
		{Name: "a/A.class", Data: aBytes, ModTime: 0},
	})

	// The parser reports nothing to the visitor and returns nil: VisitEnd never runs, but the
	// configured action is "pass", so the class should still flow out via pass-through.
	parser := func(data []byte, visitor classfile.ClassVisitor) error {
		return nil
	}

	p := NewDefault(parser)

	var out bytes.Buffer
	stats, err := p.Pack(jar, &out)

	require.NoError(t, err)
	require.Equal(t, 1, stats.PassedFiles)
	require.Equal(t, 0, stats.Classes)
}

func TestPackHonoursSegmentLimitSplitting(t *testing.T) {
	jar := classfile.NewMemoryJar([]classfile.Entry{
		{Name: "f1.txt", Data: bytes.Repeat([]byte{1}, 100)},
		{Name: "f2.txt", Data: bytes.Repeat([]byte{2}, 100)},
		{Name: "f3.txt", Data: bytes.Repeat([]byte{3}, 100)},
	})

	p, err := New(replayParser(nil), WithSegmentLimit(80))
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := p.Pack(jar, &out)

	require.NoError(t, err)
	require.Equal(t, 3, stats.Segments)
	require.Equal(t, 3, stats.PassedFiles)
}

func TestPackAppliesDeflateHintOverride(t *testing.T) {
	jar := classfile.NewMemoryJar([]classfile.Entry{
		{Name: "f1.txt", Data: []byte("hi"), Deflated: false},
	})

	p, err := New(replayParser(nil), WithDeflateHint(DeflateHintTrue))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = p.Pack(jar, &out)
	require.NoError(t, err)
	require.True(t, p.resolvedDeflateHint(false))
}

func TestValidateRejectsBadOption(t *testing.T) {
	err := Validate(WithEffort(99))
	require.Error(t, err)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, Validate())
}

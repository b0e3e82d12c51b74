package packer

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/pack200/packer/classfile"
	"github.com/pack200/packer/codec"
	"github.com/pack200/packer/endian"
	"github.com/pack200/packer/errs"
	"github.com/pack200/packer/filebands"
	"github.com/pack200/packer/innerclass"
	"github.com/pack200/packer/internal/options"
	"github.com/pack200/packer/internal/pool"
	"github.com/pack200/packer/layout"
	"github.com/pack200/packer/segment"
	"github.com/pack200/packer/segmenter"
	"github.com/pack200/packer/shredder"
)

// ClassParser drives visitor through data's structure. It is the out-of-scope external
// collaborator named in §6: a real implementation wraps an ASM-style bytecode reader. A Packer
// is constructed with one; classfile.Replay over a classfile.Class is enough to exercise the
// whole pipeline without a real parser dependency.
type ClassParser func(data []byte, visitor classfile.ClassVisitor) error

// Stats summarizes one Pack call's output.
type Stats struct {
	Segments    int
	Classes     int
	PassedFiles int
	OutputBytes int
}

// Packer is the top-level driver: it reads a JAR's entries through a classfile.JarIterator,
// shreds class files with a Shredder (falling back to pass-through on malformed or
// policy-rejected classes), accumulates non-class files into filebands.Bands, and emits one
// segment per segmenter.Split group.
type Packer struct {
	cfg    *Config
	parser ClassParser
}

// New builds a Packer from parser and opts, validating every option against the recognized set.
func New(parser ClassParser, opts ...Option) (*Packer, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Packer{cfg: cfg, parser: parser}, nil
}

// NewDefault builds a Packer with every option at its documented default.
func NewDefault(parser ClassParser) *Packer {
	p, _ := New(parser)

	return p
}

// Validate is a dry run: it applies opts to a fresh Config and reports the first invalid option,
// without reading any input. Callers that only want to check a recognized-option string (§6) can
// use this instead of constructing a Packer.
func Validate(opts ...Option) error {
	return options.Apply(defaultConfig(), opts...)
}

// Pack reads every entry out of jar, splits them into segments per the configured segment_limit,
// and writes each segment's byte stream to dst in order.
func (p *Packer) Pack(jar classfile.JarIterator, dst io.Writer) (Stats, error) {
	entries, err := drain(jar)
	if err != nil {
		return Stats{}, err
	}

	if !p.cfg.KeepFileOrder {
		entries = stableSortByName(entries)
	}

	files := make([]segmenter.File, 0, len(entries))
	byName := make(map[string]classfile.Entry, len(entries))
	for _, e := range entries {
		files = append(files, segmenter.File{Name: e.Name, Size: int64(len(e.Data))})
		byName[e.Name] = e
	}

	groups := segmenter.Split(files, p.cfg.SegmentLimit)

	var stats Stats
	for _, group := range groups {
		segEntries := make([]classfile.Entry, 0, len(group))
		for _, f := range group {
			segEntries = append(segEntries, byName[f.Name])
		}

		n, err := p.packSegment(segEntries, dst)
		if err != nil {
			return stats, err
		}

		stats.Segments++
		stats.Classes += n.Classes
		stats.PassedFiles += n.PassedFiles
		stats.OutputBytes += n.OutputBytes
	}

	return stats, nil
}

// packSegment shreds and serializes one segment's worth of entries, writing its byte stream to
// dst.
func (p *Packer) packSegment(entries []classfile.Entry, dst io.Writer) (Stats, error) {
	reg := segment.NewRegistry()
	tracker := innerclass.NewTracker()
	customBands := shredder.NewCustomAttrBands()

	for _, ov := range p.cfg.Overrides {
		reg.AttrDefs.Define(classfile.AttributePrototype{Name: ov.Name, Context: ov.Context, Layout: ov.Layout})
	}

	majorVotes := make(map[uint32]int)
	classMajor := func(data []byte) (uint32, bool) {
		if len(data) < 8 {
			return 0, false
		}

		return uint32(endian.GetBigEndianEngine().Uint16(data[6:8])), true
	}

	latest := int64(0)
	for _, e := range entries {
		if e.ModTime > latest {
			latest = e.ModTime
		}
	}
	resolvedModTime := func(orig int64) int64 {
		if p.cfg.ModTime == ModTimeLatest {
			return latest
		}

		return orig
	}

	var stats Stats

	for _, e := range entries {
		if e.Directory {
			reg.Files.Add(filebands.File{Name: e.Name, ModTime: resolvedModTime(e.ModTime), Directory: true})

			continue
		}

		if !isClassEntry(e.Name) || p.cfg.shouldPassFile(e.Name) {
			reg.Files.Add(filebands.File{Name: e.Name, Contents: e.Data, ModTime: resolvedModTime(e.ModTime), Deflated: p.resolvedDeflateHint(e.Deflated)})
			stats.PassedFiles++

			continue
		}

		shr := shredder.NewShredder(reg.Pool, tracker, reg.ClassBands, p.cfg.UnknownAttributeAction, reg.AttrDefs, customBands)

		visitErr := p.parser(e.Data, shr)

		switch {
		case visitErr != nil && errors.Is(visitErr, errs.ErrUnknownAttribute):
			shr.PassThrough(e.Data)
			reg.Files.AddPassedClass(strings.TrimSuffix(e.Name, ".class"), e.Data, resolvedModTime(e.ModTime))
			stats.PassedFiles++
		case visitErr != nil:
			return stats, errs.NewClassError(visitErr, e.Name, "")
		case shr.MalformedClass():
			shr.PassThrough(e.Data)
			reg.Files.AddPassedClass(strings.TrimSuffix(e.Name, ".class"), e.Data, resolvedModTime(e.ModTime))
			stats.PassedFiles++
		default:
			shr.Finish()
			if major, ok := classMajor(e.Data); ok {
				majorVotes[major]++
			}
			reg.ClassCount++
			stats.Classes++
		}
	}

	header := reg.BuildHeader(defaultMajorVersion(majorVotes))
	header.ICCount = len(tracker.AllTuples())

	if err := header.ValidateFlags(); err != nil {
		return stats, err
	}

	headerBytes, err := header.Bytes()
	if err != nil {
		return stats, err
	}

	var body bytes.Buffer
	sel := codec.NewSelector(p.cfg.Effort)

	cc, err := newBandCompressor(p.cfg.BandCompression)
	if err != nil {
		return stats, err
	}

	if err := p.writeBands(&body, sel, reg, tracker, customBands, cc); err != nil {
		return stats, err
	}

	out := pool.GetSegmentBuffer()
	defer pool.PutSegmentBuffer(out)

	out.MustWrite(headerBytes)
	out.MustWrite(body.Bytes())

	if _, err := out.WriteTo(dst); err != nil {
		return stats, errs.ErrIOError
	}

	stats.OutputBytes = len(headerBytes) + body.Len()

	return stats, nil
}

// writeBands serializes every accumulated band in a fixed, documented order: class bookkeeping
// bands, then file bands (sizes, modification times and options, then every file name, then the
// raw file/passed-class content), then attribute-definition bands, then every custom attribute's
// own per-element layout bands, then the inner-class tuples that need an explicit outer/name
// pair. The custom bands
// are what a registered attribute's grammar (§4.5) actually produced from its instances' payload
// bytes in this segment, each coded with that element's default codec (layout.CodecFor) rather
// than a single blanket codec for every band.
func (p *Packer) writeBands(body *bytes.Buffer, sel *codec.Selector, reg *segment.Registry, tracker *innerclass.Tracker, customBands *shredder.CustomAttrBands, cc *bandCompressor) error {
	cb := reg.ClassBands

	bands := []struct {
		values  []int64
		codec   *codec.BHSD
	}{
		{cb.ClassFlagsLo, codec.Unsigned5},
		{cb.ClassFlagsHi, codec.Unsigned5},
		{cb.FieldFlagsLo, codec.Unsigned5},
		{cb.FieldFlagsHi, codec.Unsigned5},
		{cb.MethodFlagsLo, codec.Unsigned5},
		{cb.MethodFlagsHi, codec.Unsigned5},
		{cb.CodeFlagsLo, codec.Unsigned5},
		{cb.CodeFlagsHi, codec.Unsigned5},
		{cb.CodeHeaders, codec.ByteCodec},
		{cb.CodeMaxStack, codec.Unsigned5},
		{cb.CodeMaxLocals, codec.Unsigned5},
		{cb.ClassInnerClassesN, codec.Unsigned5},
	}

	for _, b := range bands {
		if err := writeBand(body, sel, b.values, b.codec, cc); err != nil {
			return err
		}
	}

	fb := reg.Files
	fileBands := []struct {
		values []int64
		codec  *codec.BHSD
	}{
		{fb.Sizes, codec.Unsigned5},
		{fb.ModTimes, codec.Delta5},
		{fb.Options, codec.ByteCodec},
	}
	for _, b := range fileBands {
		if err := writeBand(body, sel, b.values, b.codec, cc); err != nil {
			return err
		}
	}
	for _, name := range fb.Names {
		if err := codec.Unsigned5.EncodeValue(body, int64(len(name)), 0); err != nil {
			return err
		}
		body.WriteString(name)
	}
	body.Write(fb.Contents)

	for _, def := range reg.AttrDefs.All() {
		if err := codec.ByteCodec.EncodeValue(body, segment.HeaderByte(def), 0); err != nil {
			return err
		}
		if err := codec.Unsigned5.EncodeValue(body, int64(len(def.Name)), 0); err != nil {
			return err
		}
		body.WriteString(def.Name)
		if err := codec.Unsigned5.EncodeValue(body, int64(len(def.Layout)), 0); err != nil {
			return err
		}
		body.WriteString(def.Layout)
	}

	for _, custom := range customBands.Bands() {
		if err := writeBand(body, sel, custom.Values, layout.CodecFor(custom.Element), cc); err != nil {
			return err
		}
	}

	for _, tup := range tracker.AllTuples() {
		if !innerclass.NeedsExplicitEntry(tup) {
			continue
		}
		if err := codec.Unsigned5.EncodeValue(body, int64(len(tup.Outer)), 0); err != nil {
			return err
		}
		body.WriteString(tup.Outer)
		if err := codec.Unsigned5.EncodeValue(body, int64(len(tup.Name)), 0); err != nil {
			return err
		}
		body.WriteString(tup.Name)
	}

	return nil
}

// resolvedDeflateHint applies the configured deflate_hint override, or keeps the observed hint.
func (p *Packer) resolvedDeflateHint(original bool) bool {
	switch p.cfg.DeflateHint {
	case DeflateHintTrue:
		return true
	case DeflateHintFalse:
		return false
	default: // DeflateHintKeep
		return original
	}
}

func isClassEntry(name string) bool {
	return strings.HasSuffix(name, ".class")
}

func drain(jar classfile.JarIterator) ([]classfile.Entry, error) {
	var entries []classfile.Entry
	for {
		e, ok, err := jar.Next()
		if err != nil {
			return nil, errs.NewEntryError(err, e.Name)
		}
		if !ok {
			return entries, nil
		}
		entries = append(entries, e)
	}
}

func stableSortByName(entries []classfile.Entry) []classfile.Entry {
	out := make([]classfile.Entry, len(entries))
	copy(out, entries)

	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Name > out[j].Name; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}

	return out
}

func defaultMajorVersion(votes map[uint32]int) int {
	best, bestCount := 52, -1
	for v, c := range votes {
		if c > bestCount {
			best, bestCount = int(v), c
		}
	}

	return best
}

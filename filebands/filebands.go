// Package filebands accumulates the bands for every packing file that is not shredded as a class:
// ordinary resources, directory entries, and classes routed through pass-through (§3, §4.6
// "Pass-through"). Names, sizes, modification times and per-file option bits are each their own
// band; raw contents are concatenated into one byte stream addressed by the size band.
package filebands

// File is one packing file: name, contents (empty for a directory or an already-shredded class),
// modification time in seconds since the pack200 epoch, a deflate hint, and whether it is a
// directory entry.
type File struct {
	Name      string
	Contents  []byte
	ModTime   int64
	Deflated  bool
	Directory bool
}

// fileOption bits packed into the per-file Options band.
const (
	optDeflated  int64 = 1 << 0
	optDirectory int64 = 1 << 1
)

// Bands holds the accumulated per-file bands for one segment's non-class packing files.
type Bands struct {
	Names     []string
	Sizes     []int64
	ModTimes  []int64
	Options   []int64
	Contents  []byte

	// lastModTime tracks the previous file's modtime so ModTimes can be delta-encoded the way a
	// BHSD band with Delta()==true expects; Pack200 modtimes are monotonic-ish across a JAR's
	// natural ordering, which keeps these deltas small.
	lastModTime int64
	haveModTimes bool
	haveOptions  bool
	haveDeflateHint bool
}

// New returns an empty Bands.
func New() *Bands {
	return &Bands{}
}

// Add appends f to the band set, recording its name, size, modtime delta, and option bits.
func (b *Bands) Add(f File) {
	b.Names = append(b.Names, f.Name)
	b.Sizes = append(b.Sizes, int64(len(f.Contents)))
	b.Contents = append(b.Contents, f.Contents...)

	delta := f.ModTime - b.lastModTime
	b.ModTimes = append(b.ModTimes, delta)
	b.lastModTime = f.ModTime
	if delta != 0 {
		b.haveModTimes = true
	}

	var opts int64
	if f.Deflated {
		opts |= optDeflated
		b.haveDeflateHint = true
	}
	if f.Directory {
		opts |= optDirectory
	}
	b.Options = append(b.Options, opts)
	if opts != 0 {
		b.haveOptions = true
	}
}

// AddPassedClass records class bytes that the shredder rolled back and is routing through
// pass-through (§4.6 "Pass-through"): the exact original bytes under the class's conventional
// "<name>.class" JAR entry name.
func (b *Bands) AddPassedClass(className string, rawBytes []byte, modTime int64) {
	b.Add(File{Name: className + ".class", Contents: rawBytes, ModTime: modTime})
}

// Count returns how many files have been added.
func (b *Bands) Count() int { return len(b.Names) }

// HaveModTimes reports whether any file had a non-zero modtime delta — the segment header's
// "file modtimes" option bit (bit 6) is set exactly when this is true.
func (b *Bands) HaveModTimes() bool { return b.haveModTimes }

// HaveOptions reports whether any file had a non-zero option word — the segment header's
// "file options" bit (bit 7) is set exactly when this is true.
func (b *Bands) HaveOptions() bool { return b.haveOptions }

// HaveDeflateHint reports whether any file carried a deflate hint — the segment header's
// deflate_hint bit (bit 5) is set exactly when this is true.
func (b *Bands) HaveDeflateHint() bool { return b.haveDeflateHint }

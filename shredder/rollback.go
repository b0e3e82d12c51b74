package shredder

// Snapshot records the current length of every backing band list the Shredder contributes to,
// taken before a class starts shredding (§4.6.1). On pass-through, every list the class touched is
// truncated back to its recorded length, undoing exactly that class's band contributions; constant
// pool entries the class added via cpool.Builder are NOT rolled back — CP additions are kept even
// for a class that is ultimately passed through, since they are deduplicated and cheap to leave in
// place, and the format spec explicitly scopes rollback to "band contributions" only.
type Snapshot struct {
	lengths map[*[]int64]int
}

// BandSet is anything the Shredder appends int64-valued band entries to, keyed by a stable
// pointer identity (normally the address of a []int64 slice header owned by a band registry).
type BandSet interface {
	// Lists returns every band slice this BandSet currently owns, for Snapshot/Restore to track.
	Lists() []*[]int64
}

// TakeSnapshot captures the current length of every list bs owns.
func TakeSnapshot(bs BandSet) Snapshot {
	lengths := make(map[*[]int64]int)
	for _, l := range bs.Lists() {
		lengths[l] = len(*l)
	}

	return Snapshot{lengths: lengths}
}

// Restore truncates every list bs owns back to the length recorded in snap, discarding anything
// appended since.
func Restore(bs BandSet, snap Snapshot) {
	for _, l := range bs.Lists() {
		if n, ok := snap.lengths[l]; ok && n <= len(*l) {
			*l = (*l)[:n]
		}
	}
}

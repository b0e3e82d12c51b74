// Package hash provides the 64-bit hashing used to bucket constant-pool entries for dedup
// lookups — the same "hash first, compare exact second" pattern the teacher uses to identify
// metrics by name.
package hash

import "github.com/cespare/xxhash/v2"

// String computes the xxHash64 of s, used as a dedup bucket key for Utf8 constant-pool entries
// (§4.4); Class and NameAndType entries are deduplicated by the identity of the entries they
// reference. Collisions within a bucket are resolved by an exact string
// comparison, so a hash collision never causes an incorrect dedup decision — it only costs an
// extra comparison.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

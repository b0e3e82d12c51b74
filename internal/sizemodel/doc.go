// Package sizemodel fits lightweight curves relating a band's length (the number of integers it
// carries) to its encoded bytes-per-value under a given codec, and uses the fitted curve as a
// fast-path heuristic inside the codec selector.
//
// The selector's canonical algorithm evaluates every codec family in priority order against the
// actual BandData statistics (§4.3). That is cheap for one band but the selector runs once per
// band per segment, and a packer processing a large archive re-derives essentially the same
// curve for many structurally similar bands (e.g. every class file's method_flags band). At
// effort 3 and below, a fitted model lets the selector skip the family search for a band outright
// when it predicts the default codec's encoded size is already within slack of what the band can
// achieve. The model never picks a codec itself: the selector either keeps the default encoding it
// has already produced, or runs the real search and keeps an actually encoded candidate.
//
// Models are fit from (length, bytesPerValue) observations accumulated across bands one Selector
// has already searched; the packer creates one Selector per segment. There is no persistence
// across segments or runs and no claim of general predictive accuracy outside that data.
package sizemodel

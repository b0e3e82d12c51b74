// Package codec implements the Pack200 band value codecs: the BHSD variable-length integer
// family and the Run and Population composites built on top of it.
//
// Every integer that ends up in a band — constant pool indices, bytecode operands, class flags,
// attribute layout elements — is encoded by one of these codecs. A codec is chosen per band by
// the Selector (selector.go), which inspects the band's value statistics (banddata.go) and picks
// the cheapest codec from the canonical table (canonical.go) or, for bands whose value
// distribution doesn't fit a single BHSD codec well, a Run or Population composite.
package codec

// Package format holds the small closed enumerations shared across the packer: compression
// backends for the supplemented band-compression option, and the policy actions that drive
// unknown-attribute and file-ordering behaviour (§6).
package format

// CompressionType selects the optional post-encoding compressor applied to a finished band
// (the supplemented `band_compression` option; see SPEC_FULL.md). It never touches BHSD
// semantics — it is a transport-layer wrapper applied after a band's bytes are final.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// UnknownAttributeAction is one of the three dispositions for attributes without a known
// layout (§4.6 "Unknown-attribute policy").
type UnknownAttributeAction uint8

const (
	ActionPass UnknownAttributeAction = iota
	ActionError
	ActionStrip
)

func (a UnknownAttributeAction) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionError:
		return "error"
	case ActionStrip:
		return "strip"
	default:
		return "unknown"
	}
}

// ParseUnknownAttributeAction parses the option strings recognized by §6
// ("pass"|"error"|"strip"). Per-attribute overrides may also supply a layout string instead;
// that case is handled by the caller (packer/config.go), not here.
func ParseUnknownAttributeAction(s string) (UnknownAttributeAction, bool) {
	switch s {
	case "pass":
		return ActionPass, true
	case "error":
		return ActionError, true
	case "strip":
		return ActionStrip, true
	default:
		return 0, false
	}
}

// DeflateHintMode controls the `deflate_hint` option (§6).
type DeflateHintMode uint8

const (
	DeflateHintKeep DeflateHintMode = iota
	DeflateHintTrue
	DeflateHintFalse
)

// ParseDeflateHintMode parses "keep"|"true"|"false".
func ParseDeflateHintMode(s string) (DeflateHintMode, bool) {
	switch s {
	case "keep":
		return DeflateHintKeep, true
	case "true":
		return DeflateHintTrue, true
	case "false":
		return DeflateHintFalse, true
	default:
		return 0, false
	}
}

// ModTimeMode controls the `modification_time` option (§6).
type ModTimeMode uint8

const (
	ModTimeKeep ModTimeMode = iota
	ModTimeLatest
)

// ParseModTimeMode parses "keep"|"latest".
func ParseModTimeMode(s string) (ModTimeMode, bool) {
	switch s {
	case "keep":
		return ModTimeKeep, true
	case "latest":
		return ModTimeLatest, true
	default:
		return 0, false
	}
}

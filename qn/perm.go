package qn

import "strings"

// AccessMask encodes which access flags a grant carries. Bit positions
// follow the order of AccessFlags. Zero is an explicit deny, which is
// different from having no grant row at all.
type AccessMask int32

const (
	AccessNone   AccessMask = 0
	AccessRead   AccessMask = 1
	AccessEdit   AccessMask = 1 << 1
	AccessDelete AccessMask = 1 << 2
	AccessCreate AccessMask = 1 << 3

	// AccessFull is the OR of every flag.
	AccessFull AccessMask = 1<<4 - 1
)

// AccessFlags lists the flag names in declared bit order. The order only
// matters for Level, everything else treats the mask as a plain bit set.
var AccessFlags = []string{"read", "edit", "delete", "create"}

// FlagMask returns the single-bit mask for a flag name.
func FlagMask(flag string) (AccessMask, bool) {
	for i, v := range AccessFlags {
		if v == flag {
			return 1 << i, true
		}
	}
	return AccessNone, false
}

// Check reports whether the mask satisfies the requested access:
// "full" requires every flag, "any" requires at least one, "deny" requires
// none, and a flag name requires that single bit. Unknown access names are
// never satisfied.
func (m AccessMask) Check(access string) bool {
	switch access {
	case "full":
		return m == AccessFull
	case "any":
		return m != AccessNone
	case "deny":
		return m == AccessNone
	default:
		flag, ok := FlagMask(access)
		if !ok {
			return false
		}
		return m&flag == flag
	}
}

// Level reports the mask as a single access name: "full" when every flag is
// set, otherwise the first flag in AccessFlags order whose bit is set.
// ok is false for a zero mask.
//
// The report is unreliable for composite masks (read|edit reports "read").
// Callers relying on exact levels should use Check instead; the behavior is
// kept for compatibility with stored access labels.
func (m AccessMask) Level() (level string, ok bool) {
	if m == AccessFull {
		return "full", true
	}
	for i, v := range AccessFlags {
		if m&(1<<i) != 0 {
			return v, true
		}
	}
	return "", false
}

// Apply merges the requested access into the mask: "full" sets every flag,
// "deny" clears the mask, a flag name sets only that bit without clearing
// bits already set, so repeated grants of different flags accumulate.
// Unknown access names leave the mask unchanged.
func (m AccessMask) Apply(access string) AccessMask {
	switch access {
	case "full":
		return AccessFull
	case "deny":
		return AccessNone
	default:
		flag, ok := FlagMask(access)
		if !ok {
			return m
		}
		return m | flag
	}
}

// NormalizeToken canonicalizes a token name: surrounding whitespace is
// trimmed, internal whitespace runs collapse to single underscores and the
// result is lower-cased. Every name-based token lookup and creation
// applies this first.
func NormalizeToken(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

// TokenSuperUser is the reserved bypass token: any access on it makes
// UserCan succeed regardless of per-token grants.
const TokenSuperUser = "super_user"

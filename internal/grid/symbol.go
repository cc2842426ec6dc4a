package grid

import (
	"fmt"
	"strings"
	"unicode"
)

// Symbol is a single key label used to address grid cells.
type Symbol rune

// SymbolEscape is the symbol reported for the Escape key.
const SymbolEscape Symbol = 0x1b

// String renders the symbol the way it is painted on the overlay.
func (s Symbol) String() string {
	if s == SymbolEscape {
		return "esc"
	}
	return string(rune(s))
}

// Alphabet is an ordered set of symbols.
type Alphabet []Symbol

// Letters is the A-Z alphabet used for both address positions by default.
var Letters = mustAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// MicroSymbols labels the 4x4 micro grid in row-major order.
var MicroSymbols = mustAlphabet("QWERASDFUOIPJKL;")

// ParseAlphabet turns a string into an alphabet. Letters are upper-cased;
// whitespace is ignored. Empty or repeating alphabets are rejected.
func ParseAlphabet(s string) (Alphabet, error) {
	out := make(Alphabet, 0, len(s))
	seen := make(map[Symbol]struct{}, len(s))
	for _, r := range strings.ToUpper(s) {
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.IsControl(r) {
			return nil, fmt.Errorf("alphabet %q contains control character %U", s, r)
		}
		sym := Symbol(r)
		if _, dup := seen[sym]; dup {
			return nil, fmt.Errorf("alphabet %q repeats symbol %q", s, r)
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("alphabet must not be empty")
	}
	return out, nil
}

func mustAlphabet(s string) Alphabet {
	a, err := ParseAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Contains reports whether sym is part of the alphabet.
func (a Alphabet) Contains(sym Symbol) bool {
	for _, s := range a {
		if s == sym {
			return true
		}
	}
	return false
}

// String joins the alphabet back into its textual form.
func (a Alphabet) String() string {
	var b strings.Builder
	for _, s := range a {
		b.WriteRune(rune(s))
	}
	return b.String()
}

// Union returns the symbols of a followed by those of b not already in a.
func Union(a, b Alphabet) Alphabet {
	out := make(Alphabet, 0, len(a)+len(b))
	out = append(out, a...)
	for _, s := range b {
		if !a.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

package grid

// Address identifies one first-level cell by its two symbols.
type Address struct {
	First Symbol
	Last  Symbol
}

// Label is the two-symbol combo painted inside the cell.
func (a Address) Label() string {
	return string([]rune{rune(a.First), rune(a.Last)})
}

// Generate returns every (first, last) pair, outer loop over primary and
// inner loop over secondary. The result has len(primary)*len(secondary)
// entries and is identical for identical inputs.
func Generate(primary, secondary Alphabet) []Address {
	out := make([]Address, 0, len(primary)*len(secondary))
	for _, first := range primary {
		for _, last := range secondary {
			out = append(out, Address{First: first, Last: last})
		}
	}
	return out
}

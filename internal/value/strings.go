package value

// Str is an immutable sequence of Unicode scalar values. Length and
// indexing are by code point, never by byte, so Runes is the primary
// storage form and String() materializes UTF-8 lazily on demand.
type Str struct {
	Runes []rune
}

func (s *Str) Kind() Kind       { return KindStr }
func (s *Str) TypeName() string { return "str" }

// NewStr builds a Str from a Go string, decoding it to code points once.
func NewStr(s string) *Str { return &Str{Runes: []rune(s)} }

// NewStrFromRunes builds a Str directly from a rune slice (copied).
func NewStrFromRunes(r []rune) *Str {
	cp := make([]rune, len(r))
	copy(cp, r)
	return &Str{Runes: cp}
}

// String renders the UTF-8 text.
func (s *Str) String() string { return string(s.Runes) }

// Len returns the code point length.
func (s *Str) Len() int { return len(s.Runes) }

// Bytes is an immutable sequence of 8-bit integers.
type Bytes struct {
	Value []byte
}

func (b *Bytes) Kind() Kind       { return KindBytes }
func (b *Bytes) TypeName() string { return "bytes" }

// NewBytes copies b into a Bytes value.
func NewBytes(b []byte) *Bytes {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Bytes{Value: cp}
}

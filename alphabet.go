package suffixkit

import (
	"errors"
	"fmt"
)

var (
	// ErrAlphabet is matched by every *AlphabetError.
	ErrAlphabet = errors.New("suffixkit: symbol outside alphabet")
)

// Alphabet is the contiguous symbol window [Base, Base+Size).
type Alphabet struct {
	Size int
	Base byte
}

var (
	// Lowercase is the default alphabet, 'a' through 'z'.
	Lowercase = Alphabet{Size: 26, Base: 'a'}
	// Bytes accepts every byte value.
	Bytes = Alphabet{Size: 256, Base: 0}
)

func (a Alphabet) valid() bool {
	return a.Size >= 1 && int(a.Base)+a.Size <= 256
}

// Contains reports whether c lies inside the window.
func (a Alphabet) Contains(c byte) bool {
	return int(c) >= int(a.Base) && int(c) < int(a.Base)+a.Size
}

// Check returns an *AlphabetError for the first symbol of text outside the window,
// or for the window itself when it is malformed.
func (a Alphabet) Check(text string) error {
	if !a.valid() {
		return &AlphabetError{Alphabet: a, Offset: -1, kind: badWindow}
	}
	for i := 0; i < len(text); i++ {
		if !a.Contains(text[i]) {
			return &AlphabetError{Alphabet: a, Symbol: text[i], Offset: i, kind: outOfRange}
		}
	}
	return nil
}

func (a Alphabet) String() string {
	if !a.valid() {
		return fmt.Sprintf("[invalid base=%d size=%d]", a.Base, a.Size)
	}
	return fmt.Sprintf("[%q, %q]", a.Base, byte(int(a.Base)+a.Size-1))
}

// Config carries the runtime alphabet parameters used by the generalized
// (two-text) operations. Separator must not occur in either input text; it may
// lie inside the alphabet window as long as the texts never use it.
type Config struct {
	Alphabet  Alphabet
	Separator byte
}

func DefaultConfig() Config {
	return Config{Alphabet: Lowercase, Separator: '|'}
}

// checkPair validates both texts against the alphabet and makes sure the
// separator is unused by either of them.
func (c Config) checkPair(a, b string) error {
	if err := c.Alphabet.Check(a); err != nil {
		return err
	}
	if err := c.Alphabet.Check(b); err != nil {
		return err
	}
	return checkSeparator(c.Alphabet, c.Separator, a, b)
}

func checkSeparator(alpha Alphabet, sep byte, texts ...string) error {
	for _, t := range texts {
		for i := 0; i < len(t); i++ {
			if t[i] == sep {
				return &AlphabetError{Alphabet: alpha, Symbol: sep, Offset: -1, kind: separatorInUse}
			}
		}
	}
	return nil
}

type alphabetErrorKind uint8

const (
	outOfRange alphabetErrorKind = iota
	separatorInUse
	badWindow
)

// AlphabetError is the only failure kind of the package. It reports a text
// symbol outside the configured window, a separator that collides with a symbol
// of the input, or a malformed window.
type AlphabetError struct {
	Alphabet Alphabet
	Symbol   byte
	// Offset is the position of Symbol in the offending text, -1 when the
	// error is not tied to a text position.
	Offset int
	kind   alphabetErrorKind
}

func (e *AlphabetError) Error() string {
	switch e.kind {
	case separatorInUse:
		return fmt.Sprintf("suffixkit: separator %q occurs in input text", e.Symbol)
	case badWindow:
		return fmt.Sprintf("suffixkit: invalid alphabet window base=%d size=%d", e.Alphabet.Base, e.Alphabet.Size)
	default:
		return fmt.Sprintf("suffixkit: symbol %q at offset %d outside alphabet %s", e.Symbol, e.Offset, e.Alphabet)
	}
}

// IsSeparatorCollision reports whether the error was raised for a separator.
func (e *AlphabetError) IsSeparatorCollision() bool {
	return e.kind == separatorInUse
}

func (e *AlphabetError) Unwrap() error {
	return ErrAlphabet
}

package cargotoml

import (
	"fmt"
	"unicode/utf8"
)

// SyntaxError indicates the manifest could not be parsed: either the TOML
// document itself is malformed, or it does not have the shape the data model
// expects. The wrapped error carries position or key-path context from the
// underlying decoder.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("manifest parse error: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// EncodingError indicates the manifest bytes are not valid UTF-8.
type EncodingError struct {
	Offset int // byte offset of the first invalid sequence
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("manifest is not valid UTF-8 (invalid byte at offset %d)", e.Offset)
}

// syntaxErrorf builds a *SyntaxError from a format string.
func syntaxErrorf(format string, args ...any) error {
	return &SyntaxError{Err: fmt.Errorf(format, args...)}
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence in data. It must only be called when utf8.Valid(data) is false.
func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}

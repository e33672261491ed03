package core

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// safeString makes a NUL terminated copy of s for the native side
func safeString(op, what, s string) ([]byte, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, encodingError(op, fmt.Sprintf("%s %q has a NUL byte at offset %d", what, s, i))
	}
	if !utf8.ValidString(s) {
		return nil, encodingError(op, fmt.Sprintf("%s %q is not valid UTF-8", what, s))
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b, nil
}

func safeStrings(op, what string, sgs []string) ([][]byte, error) {
	safe := make([][]byte, 0, len(sgs))
	for _, s := range sgs {
		b, err := safeString(op, what, s)
		if err != nil {
			return nil, err
		}
		safe = append(safe, b)
	}
	return safe, nil
}

// terminated cuts a fixed size native buffer at its first NUL
func terminated(raw []byte) []byte {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		return raw[:i]
	}
	return raw
}

// goString decodes a name the driver reported. Invalid text is an error.
func goString(op, what string, raw []byte) (string, error) {
	b := terminated(raw)
	if !utf8.Valid(b) {
		return "", encodingError(op, what+" is not valid UTF-8")
	}
	return string(b), nil
}

// goStringLossy decodes diagnostic text, replacing invalid sequences
func goStringLossy(raw []byte) string {
	return strings.ToValidUTF8(string(terminated(raw)), "�")
}

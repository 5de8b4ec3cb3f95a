package yrc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/drewfead/yrc/internal/core"
)

const snippetLength = 500

// ParseError is returned when repaired text still is not valid JSON.
type ParseError struct {
	Err     error
	Offset  int64
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse movie data at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse strictly decodes a date-keyed object of shows, keeping the dates in
// the order they appear.
func Parse(text string) ([]core.Listing, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	fail := func(err error) ([]core.Listing, error) {
		return nil, newParseError(text, dec.InputOffset(), err)
	}

	tok, err := dec.Token()
	if err != nil {
		return fail(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fail(fmt.Errorf("expected an object, got %v", tok))
	}

	var listings []core.Listing
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fail(err)
		}
		date, _ := tok.(string)
		var shows []core.Show
		if err := dec.Decode(&shows); err != nil {
			return fail(err)
		}
		listings = append(listings, core.Listing{Date: date, Shows: shows})
	}

	if _, err := dec.Token(); err != nil {
		return fail(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level object")
		}
		return fail(err)
	}
	return listings, nil
}

func newParseError(text string, offset int64, err error) *ParseError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	return &ParseError{Err: err, Offset: offset, Snippet: snippet(text)}
}

func snippet(text string) string {
	r := []rune(text)
	if len(r) <= snippetLength {
		return text
	}
	return string(r[:snippetLength])
}

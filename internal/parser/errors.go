package parser

import "fmt"

// UnknownLanguageError is returned by Registry.Parse when no parser is
// registered for the requested language. It is the one hard error this
// package surfaces: with no parser instance there is no Result envelope
// to embed a SyntaxError in.
type UnknownLanguageError struct {
	Language string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("no parser registered for language: %s", e.Language)
}

package parser

import "fmt"

// Документ не является корректным XML или в нем нет <channel>
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse feed: %s: %v", e.Reason, e.Err)
	}
	return "parse feed: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

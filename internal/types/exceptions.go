package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type ErrorTag string

const (
	EvalErrorTag         ErrorTag = "EvalError"
	LexErrorTag          ErrorTag = "LexError"
	ParseErrorTag        ErrorTag = "ParseError"
	RecursionErrorTag    ErrorTag = "RecursionError"
	ZeroDivisionErrorTag ErrorTag = "ZeroDivisionError"
)

type Exception interface {
	error
	Exception() any
}

type Error struct {
	Tag   ErrorTag
	Err   error
	Extra map[string]any
}

var _ Exception = (*Error)(nil)

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Tag)
	}

	var b strings.Builder
	b.WriteString(string(e.Tag))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Exception() any {
	tags := []any{e.Tag}
	for err := error(e); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok && e.Tag != tags[len(tags)-1] {
			tags = append(tags, e.Tag)
		}
	}

	o := map[string]any{
		"tags": tags,
	}
	if len(e.Extra) != 0 {
		o = lo.Assign(o, e.Extra)
	}
	return o
}

// HasTag reports whether any error in err's chain carries the tag.
func HasTag(err error, tag ErrorTag) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok && e.Tag == tag {
			return true
		}
	}
	return false
}

func NewLexError(format string, args ...any) *Error {
	return &Error{Tag: LexErrorTag, Err: fmt.Errorf(format, args...)}
}

func NewParseError(format string, args ...any) *Error {
	return &Error{Tag: ParseErrorTag, Err: fmt.Errorf(format, args...)}
}

func NewEvalError(err error) *Error {
	return &Error{Tag: EvalErrorTag, Err: err}
}

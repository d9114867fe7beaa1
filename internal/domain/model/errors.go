package model

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
)

// FetchError is the single failure kind a source fetcher returns. Kind is
// either ErrNetwork or ErrParse.
type FetchError struct {
	Source SourceID
	Kind   error
	Err    error
}

func NewNetworkError(source SourceID, err error) *FetchError {
	return &FetchError{Source: source, Kind: ErrNetwork, Err: err}
}

func NewParseError(source SourceID, err error) *FetchError {
	return &FetchError{Source: source, Kind: ErrParse, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

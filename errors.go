package rfd2pdf

import (
	"errors"
	"fmt"
)

// Content preparation failure kinds. A *ContentError carries exactly one of
// these as its Kind.
var (
	ErrDecode         = errors.New("failed to decode content file")
	ErrSourceControl  = errors.New("failed communication with source control")
	ErrInvalidContent = errors.New("failed to convert content string")
	ErrIO             = errors.New("general io failure")
	ErrFileIO         = errors.New("file io failure")
	ErrParserFailed   = errors.New("failed to parse content")
	ErrTaskFailure    = errors.New("failed to run output generator to completion")
)

// Output production failure kinds. An *OutputError carries exactly one of
// these as its Kind.
var (
	ErrCommand            = errors.New("output command failed")
	ErrFormatNotSupported = errors.New("output format is not supported")
	ErrContentFailure     = errors.New("failed to prepare content for output")
	ErrOutputFile         = errors.New("output file failure")
	ErrOutputIO           = errors.New("output io failure")
)

// Input validation errors.
var (
	ErrUnknownFormat  = errors.New("unknown content format")
	ErrInvalidNumber  = errors.New("invalid RFD number")
	ErrUnknownBackend = errors.New("unknown PDF backend")
)

// Chrome backend errors.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// ContentError reports a failure while preparing an RFD for output: fetching
// images, decoding them, staging them in the workspace, or parsing content.
type ContentError struct {
	Kind error // one of the content failure kinds
	Err  error // underlying cause, may be nil
}

func newContentError(kind, err error) *ContentError {
	return &ContentError{Kind: kind, Err: err}
}

func (e *ContentError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ContentError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// OutputError reports a failure while producing a rendered artifact. Content
// failures surface as an OutputError of kind ErrContentFailure wrapping the
// *ContentError.
type OutputError struct {
	Kind error // one of the output failure kinds
	Err  error // underlying cause, may be nil
}

func (e *OutputError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *OutputError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// OutputFromContent lifts a content failure into the output layer.
func OutputFromContent(err *ContentError) *OutputError {
	return &OutputError{Kind: ErrContentFailure, Err: err}
}

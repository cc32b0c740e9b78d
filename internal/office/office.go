// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office drives a desktop office application through its
// automation bridge. A Session is an exclusive handle on a running
// application process; it must be released with Quit on every path, which
// WithSession guarantees.
package office

import (
	"errors"
	"fmt"
)

// FormatPDF is the Word save-as format code for PDF (wdFormatPDF).
const FormatPDF = 17

// ErrUnsupportedPlatform is returned where no automation bridge exists.
var ErrUnsupportedPlatform = errors.New("office automation is not supported on this platform")

// Document is a document open in a Session.
type Document interface {
	// SaveAs writes the document to path in the given format code.
	SaveAs(path string, format int) error

	// Close closes the document without saving changes.
	Close() error
}

// Session is an exclusive automation session with the office application.
type Session interface {
	// Open opens the document at path read-only.
	Open(path string) (Document, error)

	// Quit closes the application and releases the session.
	Quit() error
}

// Opener starts a new Session.
type Opener func() (Session, error)

// WithSession starts a session with open, runs fn and always quits the
// session afterwards, including when fn fails or panics. A Quit error is
// returned only when fn succeeded.
func WithSession(open Opener, fn func(Session) error) (err error) {
	s, err := open()
	if err != nil {
		return fmt.Errorf("starting office session: %w", err)
	}
	defer func() {
		if qerr := s.Quit(); qerr != nil && err == nil {
			err = fmt.Errorf("quitting office session: %w", qerr)
		}
	}()
	return fn(s)
}

// ExportPDF opens input in a fresh session and saves it as PDF at output.
// The document is closed and the session released whatever happens.
func ExportPDF(open Opener, input, output string) error {
	return WithSession(open, func(s Session) (err error) {
		doc, err := s.Open(input)
		if err != nil {
			return fmt.Errorf("opening %s: %w", input, err)
		}
		defer func() {
			if cerr := doc.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", input, cerr)
			}
		}()

		if err := doc.SaveAs(output, FormatPDF); err != nil {
			return fmt.Errorf("saving %s as PDF: %w", output, err)
		}
		return nil
	})
}

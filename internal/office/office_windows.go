// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package office

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

const (
	wordProgID = "Word.Application"
	sFalse     = 0x00000001 // COM already initialised on this thread
)

// Available reports whether Word is registered as a COM server.
func Available() bool {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := coInitialize(); err != nil {
		return false
	}
	defer ole.CoUninitialize()

	_, err := ole.CLSIDFromProgID(wordProgID)
	return err == nil
}

// NewSession starts Word through COM. The calling goroutine is locked to
// its OS thread until Quit, since COM apartments are per thread.
func NewSession() (Session, error) {
	runtime.LockOSThread()
	if err := coInitialize(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("initialising COM: %w", err)
	}

	unknown, err := oleutil.CreateObject(wordProgID)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("creating %s: %w", wordProgID, err)
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("querying IDispatch on %s: %w", wordProgID, err)
	}

	s := &comSession{unknown: unknown, app: app}
	if _, err := oleutil.PutProperty(app, "Visible", false); err != nil {
		s.Quit()
		return nil, fmt.Errorf("hiding %s: %w", wordProgID, err)
	}
	// wdAlertsNone
	oleutil.PutProperty(app, "DisplayAlerts", 0)
	return s, nil
}

func coInitialize() error {
	err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) && oleErr.Code() == sFalse {
		return nil
	}
	return err
}

type comSession struct {
	unknown *ole.IUnknown
	app     *ole.IDispatch
}

func (s *comSession) Open(path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	docs, err := oleutil.GetProperty(s.app, "Documents")
	if err != nil {
		return nil, fmt.Errorf("getting Documents: %w", err)
	}
	defer docs.Clear()

	// Open(FileName, ConfirmConversions, ReadOnly)
	v, err := oleutil.CallMethod(docs.ToIDispatch(), "Open", abs, false, true)
	if err != nil {
		return nil, err
	}
	return &comDocument{doc: v.ToIDispatch()}, nil
}

func (s *comSession) Quit() error {
	defer runtime.UnlockOSThread()
	defer ole.CoUninitialize()
	defer s.unknown.Release()
	defer s.app.Release()

	// Quit(SaveChanges = wdDoNotSaveChanges)
	_, err := oleutil.CallMethod(s.app, "Quit", 0)
	return err
}

type comDocument struct {
	doc *ole.IDispatch
}

func (d *comDocument) SaveAs(path string, format int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, err = oleutil.CallMethod(d.doc, "SaveAs", abs, format)
	return err
}

func (d *comDocument) Close() error {
	defer d.doc.Release()
	_, err := oleutil.CallMethod(d.doc, "Close", false)
	return err
}

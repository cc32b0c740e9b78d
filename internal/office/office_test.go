// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records the automation calls made against it.
type fakeSession struct {
	calls    []string
	openErr  error
	saveErr  error
	closeErr error
	quitErr  error
}

type fakeDocument struct {
	s *fakeSession
}

func (s *fakeSession) Open(path string) (Document, error) {
	s.calls = append(s.calls, "open "+path)
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &fakeDocument{s: s}, nil
}

func (s *fakeSession) Quit() error {
	s.calls = append(s.calls, "quit")
	return s.quitErr
}

func (d *fakeDocument) SaveAs(path string, format int) error {
	d.s.calls = append(d.s.calls, "save "+path)
	if format != FormatPDF {
		return errors.New("unexpected format")
	}
	return d.s.saveErr
}

func (d *fakeDocument) Close() error {
	d.s.calls = append(d.s.calls, "close")
	return d.s.closeErr
}

func opener(s *fakeSession) Opener {
	return func() (Session, error) { return s, nil }
}

func TestExportPDF(t *testing.T) {
	tests := []struct {
		name      string
		session   *fakeSession
		wantCalls []string
		wantErr   string
	}{
		{
			name:      "success",
			session:   &fakeSession{},
			wantCalls: []string{"open in.docx", "save out.pdf", "close", "quit"},
		},
		{
			name:      "open fails still quits",
			session:   &fakeSession{openErr: errors.New("corrupt")},
			wantCalls: []string{"open in.docx", "quit"},
			wantErr:   "corrupt",
		},
		{
			name:      "save fails still closes and quits",
			session:   &fakeSession{saveErr: errors.New("disk full")},
			wantCalls: []string{"open in.docx", "save out.pdf", "close", "quit"},
			wantErr:   "disk full",
		},
		{
			name:      "close error surfaces",
			session:   &fakeSession{closeErr: errors.New("busy")},
			wantCalls: []string{"open in.docx", "save out.pdf", "close", "quit"},
			wantErr:   "closing in.docx",
		},
		{
			name:      "quit error surfaces after success",
			session:   &fakeSession{quitErr: errors.New("rpc gone")},
			wantCalls: []string{"open in.docx", "save out.pdf", "close", "quit"},
			wantErr:   "quitting office session",
		},
		{
			name:      "save error wins over quit error",
			session:   &fakeSession{saveErr: errors.New("disk full"), quitErr: errors.New("rpc gone")},
			wantCalls: []string{"open in.docx", "save out.pdf", "close", "quit"},
			wantErr:   "disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExportPDF(opener(tt.session), "in.docx", "out.pdf")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, tt.session.calls)
		})
	}
}

func TestWithSession_OpenerFails(t *testing.T) {
	called := false
	err := WithSession(func() (Session, error) { return nil, ErrUnsupportedPlatform }, func(Session) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.False(t, called)
}

func TestWithSession_QuitsOnPanic(t *testing.T) {
	s := &fakeSession{}
	assert.Panics(t, func() {
		_ = WithSession(opener(s), func(Session) error { panic("boom") })
	})
	assert.Equal(t, []string{"quit"}, s.calls)
}

func TestNewSession_UnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("COM bridge present on windows")
	}
	assert.False(t, Available())
	_, err := NewSession()
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

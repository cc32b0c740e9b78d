// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package office

// Available always reports false: there is no COM bridge here.
func Available() bool { return false }

// NewSession always fails with ErrUnsupportedPlatform.
func NewSession() (Session, error) {
	return nil, ErrUnsupportedPlatform
}

//go:build darwin || linux

package ffi

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibraryPathFromEnvironment(t *testing.T) {
	t.Setenv("FORMKIT_LIB_PATH", "/opt/formkit/libformkit_host.so")
	require.Equal(t, "/opt/formkit/libformkit_host.so", getLibraryPath())

	SetLibraryPath("/custom/host.so")
	t.Cleanup(func() { SetLibraryPath("") })
	require.Equal(t, "/custom/host.so", getLibraryPath())
}

func TestLoadMissingLibrary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "libformkit_host.so")
	SetLibraryPath(missing)
	t.Cleanup(func() { SetLibraryPath("") })

	err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), missing)

	require.NotPanics(t, func() {
		Wake()
		RequestExit()
	})
	_, ok := MeasureText("abc", 12)
	require.False(t, ok)
}

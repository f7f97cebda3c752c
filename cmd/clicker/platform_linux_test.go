//go:build linux

package main

import (
	"testing"

	"clicker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLinuxBackend(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		session    string
		wayland    string
		display    string
		want       string
	}{
		{name: "explicit x11", configured: "x11", session: "wayland", want: config.BackendX11},
		{name: "wayland alias", configured: "Wayland", want: config.BackendEvdev},
		{name: "session type x11", configured: "auto", session: "x11", want: config.BackendX11},
		{name: "session type wayland", configured: "", session: "wayland", display: ":0", want: config.BackendEvdev},
		{name: "wayland display", configured: "auto", wayland: "wayland-0", display: ":0", want: config.BackendEvdev},
		{name: "display only", configured: "auto", display: ":0", want: config.BackendX11},
		{name: "console", configured: "auto", want: config.BackendEvdev},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_SESSION_TYPE", tt.session)
			t.Setenv("WAYLAND_DISPLAY", tt.wayland)
			t.Setenv("DISPLAY", tt.display)

			got, err := resolveLinuxBackend(tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveLinuxBackendRejectsForeignBackends(t *testing.T) {
	_, err := resolveLinuxBackend(config.BackendWindows)
	assert.Error(t, err)
	_, err = resolveLinuxBackend(config.BackendGohook)
	assert.Error(t, err)
}

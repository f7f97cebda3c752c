//go:build windows

package wininput

import (
	"clicker/internal/core/autoclicker"

	"golang.org/x/sys/windows"
)

const maxTitleLength = 512

type Windows struct{}

func (Windows) ActiveWindow() (autoclicker.Window, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return autoclicker.Window{}, nil
	}

	buf := make([]uint16, maxTitleLength)
	n, err := windows.GetWindowText(hwnd, &buf[0], int32(len(buf)))
	if err != nil && n == 0 {
		// Untitled windows report an error with length 0.
		return autoclicker.Window{Handle: uint64(hwnd)}, nil
	}
	return autoclicker.Window{
		Handle: uint64(hwnd),
		Title:  windows.UTF16ToString(buf[:n]),
	}, nil
}

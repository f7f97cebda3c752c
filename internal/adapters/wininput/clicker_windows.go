//go:build windows

package wininput

import (
	"fmt"
	"unsafe"

	"clicker/internal/core/autoclicker"

	"golang.org/x/sys/windows"
)

const (
	inputMouse           = 0
	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
)

var procSendInput = user32.NewProc("SendInput")

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type input struct {
	Type uint32
	Mi   mouseInput
}

// Clicker synthesizes button transitions with SendInput. They go to the
// window under the cursor, which is the foreground window the engine checked.
type Clicker struct{}

func (Clicker) Press(_ autoclicker.Window, button autoclicker.Button) error {
	if button == autoclicker.ButtonRight {
		return sendMouse(mouseeventfRightDown)
	}
	return sendMouse(mouseeventfLeftDown)
}

func (Clicker) Release(_ autoclicker.Window, button autoclicker.Button) error {
	if button == autoclicker.ButtonRight {
		return sendMouse(mouseeventfRightUp)
	}
	return sendMouse(mouseeventfLeftUp)
}

func sendMouse(flags uint32) error {
	in := input{Type: inputMouse, Mi: mouseInput{DwFlags: flags}}
	sent, _, callErr := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&in)),
		unsafe.Sizeof(in),
	)
	if sent != 1 {
		if callErr != nil && callErr != windows.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of 1 inputs", sent)
	}
	return nil
}

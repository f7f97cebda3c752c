//go:build windows

package wininput

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"clicker/internal/core/autoclicker"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmQuit          = 0x0012
	wmKeyDown       = 0x0100
	wmKeyUp         = 0x0101
	wmSysKeyDown    = 0x0104
	wmSysKeyUp      = 0x0105
	wmLButtonDown   = 0x0201
	wmLButtonUp     = 0x0202
	wmRButtonDown   = 0x0204
	wmRButtonUp     = 0x0205
	wmNCLButtonDown = 0x00A1
	wmNCLButtonUp   = 0x00A2
	wmNCRButtonDown = 0x00A4
	wmNCRButtonUp   = 0x00A5

	llmhfInjected        = 0x00000001
	llkhfInjected        = 0x00000010
	llkhfLowerILInjected = 0x00000002
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")

	mouseHookCallback    = windows.NewCallback(mouseLLCallback)
	keyboardHookCallback = windows.NewCallback(keyboardLLCallback)

	// activeRuntime is the only route from the OS hook callbacks back to Go
	// state. It is set while a Runtime's hook loop runs.
	activeRuntime atomic.Pointer[Runtime]
)

type point struct {
	X int32
	Y int32
}

type mouseLLHookStruct struct {
	Pt          point
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type keyboardLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type message struct {
	Hwnd     uintptr
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

// Runtime installs low-level mouse and keyboard hooks. Injected events are
// flagged by the OS and never reach the observer.
type Runtime struct {
	hotkeyVK uint32
	observer atomic.Pointer[autoclicker.Observer]
	threadID atomic.Uint32
}

func NewRuntime(hotkeyVK uint32) *Runtime {
	return &Runtime{hotkeyVK: hotkeyVK}
}

func (r *Runtime) Run(ctx context.Context, obs *autoclicker.Observer) error {
	if !activeRuntime.CompareAndSwap(nil, r) {
		return fmt.Errorf("windows runtime is already active")
	}
	defer activeRuntime.CompareAndSwap(r, nil)
	r.observer.Store(obs)

	ready := make(chan error, 1)
	done := make(chan error, 1)
	go func() {
		done <- r.hookLoop(ready)
	}()
	if err := <-ready; err != nil {
		<-done
		return err
	}
	obs.Ready()

	select {
	case <-ctx.Done():
		if threadID := r.threadID.Load(); threadID != 0 {
			_, _, _ = procPostThreadMessageW.Call(uintptr(threadID), uintptr(wmQuit), 0, 0)
		}
		<-done
		return nil
	case err := <-done:
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
}

func (r *Runtime) hookLoop(ready chan<- error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	r.threadID.Store(windows.GetCurrentThreadId())

	mouseHook, _, mouseErr := procSetWindowsHookExW.Call(uintptr(whMouseLL), mouseHookCallback, 0, 0)
	if mouseHook == 0 {
		err := fmt.Errorf("failed to install mouse hook: %w", mouseErr)
		ready <- err
		return err
	}
	defer func() {
		_, _, _ = procUnhookWindowsHookEx.Call(mouseHook)
	}()

	keyboardHook, _, keyboardErr := procSetWindowsHookExW.Call(uintptr(whKeyboardLL), keyboardHookCallback, 0, 0)
	if keyboardHook == 0 {
		err := fmt.Errorf("failed to install keyboard hook: %w", keyboardErr)
		ready <- err
		return err
	}
	defer func() {
		_, _, _ = procUnhookWindowsHookEx.Call(keyboardHook)
	}()

	ready <- nil

	var msg message
	for {
		ret, _, callErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			return fmt.Errorf("windows message loop failed: %w", callErr)
		case 0:
			return nil
		default:
			_, _, _ = procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			_, _, _ = procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
		}
	}
}

func mouseLLCallback(code int, wParam uintptr, lParam uintptr) uintptr {
	if code >= 0 && lParam != 0 {
		if r := activeRuntime.Load(); r != nil {
			event := (*mouseLLHookStruct)(unsafe.Pointer(lParam))
			r.handleMouse(uint32(wParam), event.Flags)
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return ret
}

func keyboardLLCallback(code int, wParam uintptr, lParam uintptr) uintptr {
	if code >= 0 && lParam != 0 {
		if r := activeRuntime.Load(); r != nil {
			event := (*keyboardLLHookStruct)(unsafe.Pointer(lParam))
			r.handleKeyboard(uint32(wParam), event.VkCode, event.Flags)
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
	return ret
}

func (r *Runtime) handleMouse(msg, flags uint32) {
	obs := r.observer.Load()
	if obs == nil || flags&llmhfInjected != 0 {
		return
	}
	switch msg {
	case wmLButtonDown, wmNCLButtonDown:
		obs.ButtonDown(autoclicker.ButtonLeft)
	case wmLButtonUp, wmNCLButtonUp:
		obs.ButtonUp(autoclicker.ButtonLeft)
	case wmRButtonDown, wmNCRButtonDown:
		obs.ButtonDown(autoclicker.ButtonRight)
	case wmRButtonUp, wmNCRButtonUp:
		obs.ButtonUp(autoclicker.ButtonRight)
	}
}

func (r *Runtime) handleKeyboard(msg, vk, flags uint32) {
	obs := r.observer.Load()
	if obs == nil || vk != r.hotkeyVK {
		return
	}
	if flags&llkhfInjected != 0 || flags&llkhfLowerILInjected != 0 {
		return
	}
	switch msg {
	case wmKeyDown, wmSysKeyDown:
		obs.HotkeyDown()
	case wmKeyUp, wmSysKeyUp:
		obs.HotkeyUp()
	}
}

func isVKDown(vk uint32) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(state)&0x8000 != 0
}

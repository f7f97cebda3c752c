//go:build linux

package linuxinput

import (
	"fmt"
	"os"
	"sort"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

type DeviceInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	IsPointer bool
}

// ListInputDevices describes every readable event device, virtual ones
// included.
func ListInputDevices() ([]DeviceInfo, error) {
	return scanDevices(nil)
}

// scanDevices probes /dev/input event nodes in path order and keeps the ones
// keep accepts. Nodes that cannot be opened are skipped.
func scanDevices(keep func(dev *evdev.InputDevice, info DeviceInfo) bool) ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]DeviceInfo, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}
		info := describeDevice(dev, path)
		if keep == nil || keep(dev, info) {
			devices = append(devices, info)
		}
		_ = dev.Close()
	}
	return devices, nil
}

func describeDevice(dev *evdev.InputDevice, path evdev.InputPath) DeviceInfo {
	name := path.Name
	if actual, err := dev.Name(); err == nil && actual != "" {
		name = actual
	}
	return DeviceInfo{
		Path:      path.Path,
		Name:      name,
		IsVirtual: deviceIsVirtual(dev, name),
		IsPointer: deviceIsPointer(dev),
	}
}

// OpenObservedDevices opens every physical device exposing one of codes. When
// devicePath is set only that device is used.
func OpenObservedDevices(devicePath string, codes ...uint16) ([]*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := openInputDevice(devicePath)
		if err != nil {
			return nil, err
		}
		if !deviceSupportsAny(dev, codes) {
			_ = dev.Close()
			return nil, fmt.Errorf("%s exposes none of %s", devicePath, formatCodes(codes))
		}
		return []*evdev.InputDevice{dev}, nil
	}

	matches, err := findDevicesByCodes(codes)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no physical input device exposes %s; use --list-devices and check permissions on /dev/input", formatCodes(codes))
	}

	devices := make([]*evdev.InputDevice, 0, len(matches))
	for _, match := range matches {
		dev, err := openInputDevice(match.Path)
		if err != nil {
			continue
		}
		devices = append(devices, dev)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("found matching input devices, but failed to open any of them")
	}
	return devices, nil
}

func openInputDevice(path string) (*evdev.InputDevice, error) {
	return evdev.OpenWithFlags(path, os.O_RDONLY)
}

func deviceSupportsAny(device *evdev.InputDevice, codes []uint16) bool {
	for _, c := range device.CapableEvents(evdev.EV_KEY) {
		for _, code := range codes {
			if c == evdev.EvCode(code) {
				return true
			}
		}
	}
	return false
}

func formatCodes(codes []uint16) string {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		names = append(names, FormatCodeName(code))
	}
	return strings.Join(names, "/")
}

func deviceIsVirtual(device *evdev.InputDevice, name string) bool {
	id, err := device.InputID()
	if err == nil && id.BusType == uint16(evdev.BUS_VIRTUAL) {
		return true
	}
	lower := strings.ToLower(name)
	for _, token := range []string{"virtual", "uinput", "ydotool", virtualDeviceName, "autoclicker"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func deviceIsPointer(device *evdev.InputDevice) bool {
	var hasRelX, hasRelY bool
	for _, code := range device.CapableEvents(evdev.EV_REL) {
		if code == evdev.REL_X {
			hasRelX = true
		}
		if code == evdev.REL_Y {
			hasRelY = true
		}
	}
	if hasRelX && hasRelY {
		return true
	}
	return len(device.CapableEvents(evdev.EV_ABS)) > 0
}

// findDevicesByCodes lists physical devices exposing any of codes. Virtual
// devices are never observed so our own uinput mouse cannot feed back.
func findDevicesByCodes(codes []uint16) ([]DeviceInfo, error) {
	return scanDevices(func(dev *evdev.InputDevice, info DeviceInfo) bool {
		return !info.IsVirtual && deviceSupportsAny(dev, codes)
	})
}

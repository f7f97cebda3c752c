package wininput

// Options selects the hotkey by name ("F6", "PAUSE", "KEY_F8").
type Options struct {
	Hotkey string
}

type DeviceInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	IsPointer bool
}

// ListInputDevices reports the two global hooks the backend installs; Windows
// does not expose per-device streams to them.
func ListInputDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{
		{Path: "hook:mouse-ll", Name: "Low-level mouse hook (all pointers)", IsPointer: true},
		{Path: "hook:keyboard-ll", Name: "Low-level keyboard hook (all keyboards)"},
	}, nil
}

package wininput

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	vkPAUSE    uint32 = 0x13
	vkCAPITAL  uint32 = 0x14
	vkESCAPE   uint32 = 0x1B
	vkSPACE    uint32 = 0x20
	vkPRIOR    uint32 = 0x21
	vkNEXT     uint32 = 0x22
	vkEND      uint32 = 0x23
	vkHOME     uint32 = 0x24
	vkLEFT     uint32 = 0x25
	vkUP       uint32 = 0x26
	vkRIGHT    uint32 = 0x27
	vkDOWN     uint32 = 0x28
	vkSNAPSHOT uint32 = 0x2C
	vkINSERT   uint32 = 0x2D
	vkDELETE   uint32 = 0x2E
	vk0        uint32 = 0x30
	vkA        uint32 = 0x41
	vkNUMPAD0  uint32 = 0x60
	vkF1       uint32 = 0x70
	vkNUMLOCK  uint32 = 0x90
	vkSCROLL   uint32 = 0x91
	vkBACK     uint32 = 0x08
	vkTAB      uint32 = 0x09
	vkRETURN   uint32 = 0x0D
	vkOEM3     uint32 = 0xC0
)

var keyNameToVK = map[string]uint32{
	"PAUSE":      vkPAUSE,
	"CAPSLOCK":   vkCAPITAL,
	"ESC":        vkESCAPE,
	"ESCAPE":     vkESCAPE,
	"SPACE":      vkSPACE,
	"PAGEUP":     vkPRIOR,
	"PAGEDOWN":   vkNEXT,
	"END":        vkEND,
	"HOME":       vkHOME,
	"LEFT":       vkLEFT,
	"UP":         vkUP,
	"RIGHT":      vkRIGHT,
	"DOWN":       vkDOWN,
	"SYSRQ":      vkSNAPSHOT,
	"PRINT":      vkSNAPSHOT,
	"INSERT":     vkINSERT,
	"DELETE":     vkDELETE,
	"NUMLOCK":    vkNUMLOCK,
	"SCROLLLOCK": vkSCROLL,
	"BACKSPACE":  vkBACK,
	"TAB":        vkTAB,
	"ENTER":      vkRETURN,
	"GRAVE":      vkOEM3,
}

var vkToKeyName map[uint32]string

func init() {
	for i := uint32(0); i < 26; i++ {
		keyNameToVK[string(rune('A'+i))] = vkA + i
	}
	for i := uint32(0); i < 10; i++ {
		keyNameToVK[strconv.Itoa(int(i))] = vk0 + i
		keyNameToVK["KP"+strconv.Itoa(int(i))] = vkNUMPAD0 + i
	}
	for i := uint32(0); i < 24; i++ {
		keyNameToVK["F"+strconv.Itoa(int(i+1))] = vkF1 + i
	}

	names := make([]string, 0, len(keyNameToVK))
	for name := range keyNameToVK {
		names = append(names, name)
	}
	sort.Strings(names)
	vkToKeyName = make(map[uint32]string, len(names))
	for _, name := range names {
		vk := keyNameToVK[name]
		if _, exists := vkToKeyName[vk]; !exists {
			vkToKeyName[vk] = name
		}
	}
}

// VirtualKey resolves a hotkey name ("F6", "KEY_PAUSE", "q") to a Windows
// virtual-key code.
func VirtualKey(name string) (uint32, error) {
	raw := strings.ToUpper(strings.TrimSpace(name))
	raw = strings.TrimPrefix(raw, "KEY_")
	if raw == "" {
		return 0, fmt.Errorf("hotkey is empty")
	}
	if vk, ok := keyNameToVK[raw]; ok {
		return vk, nil
	}
	return 0, fmt.Errorf("unsupported Windows hotkey %q", name)
}

// KeyName is the inverse of VirtualKey; unknown codes format as hex.
func KeyName(vk uint32) string {
	if name, ok := vkToKeyName[vk]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", vk)
}

// captureCandidates lists every nameable virtual key in ascending order.
func captureCandidates() []uint32 {
	out := make([]uint32, 0, len(vkToKeyName))
	for vk := range vkToKeyName {
		out = append(out, vk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

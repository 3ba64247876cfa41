//go:build linux

package hotkey

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mnemo/dispatch"
)

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

var modifierCodes = map[uint16]struct {
	name string
	mod  dispatch.Modifiers
}{
	29:  {dispatch.KeyCtrl, dispatch.ModCtrl},   // KEY_LEFTCTRL
	97:  {dispatch.KeyCtrl, dispatch.ModCtrl},   // KEY_RIGHTCTRL
	42:  {dispatch.KeyShift, dispatch.ModShift}, // KEY_LEFTSHIFT
	54:  {dispatch.KeyShift, dispatch.ModShift}, // KEY_RIGHTSHIFT
	56:  {dispatch.KeyAlt, dispatch.ModAlt},     // KEY_LEFTALT
	100: {dispatch.KeyAlt, dispatch.ModAlt},     // KEY_RIGHTALT
	125: {dispatch.KeyMeta, dispatch.ModMeta},   // KEY_LEFTMETA
	126: {dispatch.KeyMeta, dispatch.ModMeta},   // KEY_RIGHTMETA
}

// US layout; evdev reports positions, not characters.
var keyNames = map[uint16]string{
	1: "esc", 14: "backspace", 15: "tab", 28: "enter", 57: "space",
	2: "1", 3: "2", 4: "3", 5: "4", 6: "5", 7: "6", 8: "7", 9: "8", 10: "9", 11: "0",
	12: "-", 13: "=", 26: "[", 27: "]", 39: ";", 40: "'", 41: "`", 43: "\\",
	51: ",", 52: ".", 53: "/",
	16: "q", 17: "w", 18: "e", 19: "r", 20: "t", 21: "y", 22: "u", 23: "i", 24: "o", 25: "p",
	30: "a", 31: "s", 32: "d", 33: "f", 34: "g", 35: "h", 36: "j", 37: "k", 38: "l",
	44: "z", 45: "x", 46: "c", 47: "v", 48: "b", 49: "n", 50: "m",
	59: "f1", 60: "f2", 61: "f3", 62: "f4", 63: "f5", 64: "f6", 65: "f7", 66: "f8",
	67: "f9", 68: "f10", 87: "f11", 88: "f12",
}

type evdevSource struct {
	events chan dispatch.Event
	files  []*os.File
	stop   chan struct{}
	once   sync.Once

	// held is shared by every keyboard's reader, so a modifier on one
	// device applies to keys typed on another.
	heldMu sync.Mutex
	held   dispatch.Modifiers
}

// New reads keyboards through evdev (/dev/input). The user must be in the
// 'input' group.
func New() Source {
	return &evdevSource{
		events: make(chan dispatch.Event, eventBuffer),
	}
}

// NewWithActivator is New: evdev reports every key as it is, so the
// activator needs no mapping.
func NewWithActivator(string) Source {
	return New()
}

func (h *evdevSource) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	h.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		h.files = append(h.files, f)
		go h.readEvents(f)
	}

	if len(h.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	return nil
}

func (h *evdevSource) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)

	for {
		select {
		case <-h.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}
			ev, ok := h.translate(evCode, evValue)
			if !ok {
				continue
			}
			select {
			case h.events <- ev:
			case <-h.stop:
				return
			}
		}
	}
}

func (h *evdevSource) translate(code uint16, value int32) (dispatch.Event, bool) {
	h.heldMu.Lock()
	defer h.heldMu.Unlock()
	return translate(code, value, &h.held)
}

// translate converts one evdev key record, updating held modifiers.
func translate(code uint16, value int32, held *dispatch.Modifiers) (dispatch.Event, bool) {
	down := value == keyPress || value == keyRepeat
	if value != keyPress && value != keyRepeat && value != keyRelease {
		return dispatch.Event{}, false
	}
	if m, ok := modifierCodes[code]; ok {
		if down {
			*held |= m.mod
		} else {
			*held &^= m.mod
		}
		return dispatch.Event{Key: m.name, Down: down, Mods: *held}, true
	}
	name, ok := keyNames[code]
	if !ok {
		return dispatch.Event{}, false
	}
	ev := dispatch.Event{Key: name, Down: down, Mods: *held}
	if held.Has(dispatch.ModShift) && len(name) == 1 {
		ev.Label = strings.ToUpper(name)
	}
	return ev, true
}

func (h *evdevSource) Unregister() {
	h.once.Do(func() {
		if h.stop != nil {
			close(h.stop)
		}
		for _, f := range h.files {
			f.Close()
		}
	})
}

func (h *evdevSource) Events() <-chan dispatch.Event {
	return h.events
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	// Real keyboards have long key capability bitmaps
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose checks evdev access and returns a status message.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}

package control

import (
	"errors"
	"fmt"
)

// ErrUnknownColor is returned for a color outside the palette.
var ErrUnknownColor = errors.New("unknown color")

// Mode selects what the primary hand drives.
type Mode string

const (
	ModeMouse Mode = "mouse"
	ModePaint Mode = "paint"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeMouse, ModePaint:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

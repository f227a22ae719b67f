package observer

import "github.com/pkg/errors"

// Mode selects what a trace pass produces
type Mode string

const (
	// ModeLight shows ray paths
	ModeLight Mode = "light"
	// ModeExtendedLight also shows backward extensions of processed rays
	ModeExtendedLight Mode = "extended_light"
	// ModeImages locates real and virtual images where neighbouring rays meet
	ModeImages Mode = "images"
	// ModeObserver shows what an observer aperture sees
	ModeObserver Mode = "observer"
)

// ParseMode validates a mode name; the empty string means ModeLight
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case "", ModeLight:
		return ModeLight, nil
	case ModeExtendedLight, ModeImages, ModeObserver:
		return Mode(name), nil
	}
	return ModeLight, errors.Errorf("unknown mode %q", name)
}

// UsesImageDensity reports whether the mode traces at the image ray density
func (m Mode) UsesImageDensity() bool {
	return m == ModeImages || m == ModeObserver
}

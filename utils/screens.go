package utils

import (
	"fmt"

	"github.com/pkg/errors"
)

// CellSize is the edge of one cell in window pixels
const CellSize = 10

// ScreenSize is a window resolution offered by the size menu
type ScreenSize struct {
	Width  int
	Height int
}

// ScreenSizes are the selectable window resolutions, in menu order
var ScreenSizes = []ScreenSize{
	{640, 480},
	{800, 600},
	{1024, 768},
	{1920, 1080},
}

// DefaultScreen is the index preselected in the size menu
const DefaultScreen = 1

func (s ScreenSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Grid returns the number of cells that fit the screen
func (s ScreenSize) Grid() (width, height int) {
	return s.Width / CellSize, s.Height / CellSize
}

// GridForScreen maps a menu index to grid dimensions
func GridForScreen(index int) (width, height int, err error) {
	if index < 0 || index >= len(ScreenSizes) {
		return 0, 0, errors.Wrapf(ErrInvalidConfig, "[GridForScreen] screen index %d out of range", index)
	}
	width, height = ScreenSizes[index].Grid()
	return width, height, nil
}

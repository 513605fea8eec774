package capture

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/clipvault/clipvault/internal/clip"
)

// System reads and writes the OS pasteboard. Init must succeed before any
// other call; on headless hosts it typically fails with a display error.
type System struct{}

func NewSystem() (*System, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("initialize clipboard: %w", err)
	}
	return &System{}, nil
}

func (s *System) ReadText() []byte {
	return clipboard.Read(clipboard.FmtText)
}

func (s *System) ReadImage() []byte {
	return clipboard.Read(clipboard.FmtImage)
}

// WriteEntry places an entry's payload on the pasteboard. Binary kinds need
// the side-file bytes; text kinds use the stored content.
func (s *System) WriteEntry(kind clip.Kind, content string, data []byte) error {
	switch kind {
	case clip.KindText, clip.KindURL:
		clipboard.Write(clipboard.FmtText, []byte(content))
	case clip.KindImage:
		if len(data) == 0 {
			return fmt.Errorf("missing image payload")
		}
		clipboard.Write(clipboard.FmtImage, data)
	case clip.KindFile:
		// x/clipboard has no generic binary format; fall back to text so
		// at least the name round-trips.
		clipboard.Write(clipboard.FmtText, []byte(content))
	default:
		return fmt.Errorf("unsupported kind %q", kind)
	}
	return nil
}

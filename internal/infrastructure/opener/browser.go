// Package opener shows files in the platform's default viewer.
package opener

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/browser"

	"github.com/doeshing/pingbot/internal/ports"
)

// ErrNotCreated is returned when the file to open does not exist yet.
var ErrNotCreated = errors.New("file has not been created yet")

// BrowserOpener opens files through xdg-open, open or rundll32.
type BrowserOpener struct {
	open func(string) error
}

// NewBrowserOpener silences the helper's own output so it cannot scribble
// over a full-screen terminal.
func NewBrowserOpener() *BrowserOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &BrowserOpener{open: browser.OpenFile}
}

// Open implements ports.FileOpener.
func (o *BrowserOpener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrNotCreated)
		}
		return err
	}
	if err := o.open(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

var _ ports.FileOpener = (*BrowserOpener)(nil)

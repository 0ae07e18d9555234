package pipeline

import (
	"io"

	"github.com/pkg/browser"
)

// openFile opens a rendered file in the platform's default viewer.
// Replaced in tests.
var openFile = func(path string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenFile(path)
}

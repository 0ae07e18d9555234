package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner writes the ASCII art banner and version line to w. Colors
// follow the current fatih/color state.
func PrintBanner(w io.Writer, version string) {
	bannerColor.Fprint(w, `    _       _   _
   / \   ___| |_| |__   ___ _ __
  / _ \ / _ \ __| '_ \ / _ \ '__|
 / ___ \  __/ |_| | | |  __/ |
/_/   \_\___|\__|_| |_|\___|_|
`)
	fmt.Fprintf(w, "Aether Renderer v%s starting...\n", version)
}

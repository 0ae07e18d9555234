package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/aether-renderer/internal/config"
)

// PreviewPath returns output with its extension replaced by ".png", or with
// ".png" appended when output has none.
//
//	out.webm  -> out.png
//	renders/a -> renders/a.png
func PreviewPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".png"
}

// ExtensionMismatch returns a report note when the output extension does not
// match format (case-insensitive). ok is false when they agree.
func ExtensionMismatch(output string, format config.Format) (note string, ok bool) {
	ext := strings.ToLower(filepath.Ext(output))
	switch ext {
	case format.Extension():
		return "", false
	case "":
		return fmt.Sprintf("Warning: output has no extension (format '%s')", format), true
	}
	return fmt.Sprintf("Warning: output extension '%s' does not match format '%s'", ext, format), true
}

// Package images manages the uploaded files living under the images
// directory and served statically.
package images

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Filename builds a timestamp-prefixed name for an uploaded file, mirroring
// the names embedded in stored imageUrl fields.
func Filename(original string) string {
	return time.Now().UTC().Format(time.RFC3339) + "-" + filepath.Base(original)
}

// Remove deletes a previously uploaded file. Best-effort: failures are
// logged, never propagated.
func Remove(dir, imagePath string) {
	name := filepath.Base(filepath.Clean(imagePath))
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, "..") {
		return
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		log.Println("clearImage:", err)
	}
}

package snapshots

import (
	"path/filepath"
	"regexp"

	"github.com/preston-bernstein/pyramid-service/internal/document"
	"github.com/preston-bernstein/pyramid-service/internal/domain"
)

const (
	pyramidsDir  = "pyramids"
	manifestFile = "manifest.json"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether id is safe to use as a file name.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// PyramidPath builds the path to a stored pyramid document.
func PyramidPath(basePath, id string) string {
	return filepath.Join(basePath, pyramidsDir, id+document.Extension)
}

func checkID(op, id string) error {
	if !ValidID(id) {
		return domain.Errorf(op, domain.KindInvalidInput, "invalid pyramid id %q", id)
	}
	return nil
}

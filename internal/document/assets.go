package document

import (
	"os"
	"strings"
)

// AssetState classifies an optional asset referenced by a record.
type AssetState int

const (
	// AssetPresent means the stored file exists on disk and should be used.
	AssetPresent AssetState = iota
	// AssetPlaceholder means the stored file is missing but the bundled
	// placeholder exists and substitutes for it.
	AssetPlaceholder
	// AssetAbsent means there is nothing to draw; the layout renders its
	// warning text instead.
	AssetAbsent
)

// ResolveAsset classifies path against the filesystem, falling back to
// placeholder when the stored file is missing. Windows-style separators in
// stored paths are normalized before the check. Resolution never fails: a
// missing asset is a state, not an error.
func ResolveAsset(path, placeholder string) (string, AssetState) {
	path = strings.ReplaceAll(path, `\`, "/")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, AssetPresent
		}
	}
	if placeholder != "" {
		if _, err := os.Stat(placeholder); err == nil {
			return placeholder, AssetPlaceholder
		}
	}
	return "", AssetAbsent
}

package utils

import (
	"fmt"
	"path/filepath"

	"github.com/viant/afs/url"
)

// NormalizeLocation turns local paths into absolute file URLs and leaves
// scheme URLs such as gs:// or s3:// untouched.
func NormalizeLocation(location string) (string, error) {
	if url.Scheme(location, "") != "" {
		return location, nil
	}

	if url.IsRelative(location) {
		abs, err := filepath.Abs(location)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", location, err)
		}
		location = abs
	}

	return url.ToFileURL(location), nil
}

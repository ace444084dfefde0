package utils

import "github.com/gosimple/slug"

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	return slug.Make(name)
}

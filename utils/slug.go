package utils

import "github.com/gosimple/slug"

// Slugify lowercases s, transliterates it to ASCII and joins word runs with "-".
func Slugify(s string) string {
	return slug.Make(s)
}

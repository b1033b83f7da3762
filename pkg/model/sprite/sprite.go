package sprite

import (
	"strings"
)

type Sprite string

// mediaPrefix is where the database dump roots sprite paths; the sprite
// repository has no such directory.
const mediaPrefix = "/media"

// URL resolves the sprite against base unless it is already absolute.
func (s Sprite) URL(base string) string {
	str := string(s)
	if strings.HasPrefix(str, "http://") || strings.HasPrefix(str, "https://") {
		return str
	}

	str = strings.TrimPrefix(str, mediaPrefix)
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(str, "/")
}

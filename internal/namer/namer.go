// Package namer generates collision-resistant file names for downloaded images.
package namer

import (
	"encoding/hex"
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// DefaultExtension is used when the source URL has no usable extension
const DefaultExtension = "bin"

// Namer builds file names from a source URL and a random identifier.
type Namer struct {
	newID func() string
}

// New returns a Namer using random 128-bit hex identifiers
func New() *Namer {
	return &Namer{newID: randomID}
}

// NewWithIDSource returns a Namer drawing identifiers from newID
func NewWithIDSource(newID func() string) *Namer {
	return &Namer{newID: newID}
}

// randomID returns a version 4 UUID as 32 hex characters
func randomID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// NameFor returns "{prefix}_{id}.{ext}", or "{id}.{ext}" when prefix is empty.
func (n *Namer) NameFor(sourceURL, prefix string) string {
	id := n.newID()
	ext := Extension(sourceURL)

	prefix = sanitizePrefix(prefix)
	if prefix == "" {
		return id + "." + ext
	}
	return prefix + "_" + id + "." + ext
}

// Extension returns the lower-cased text after the last "." of the URL's final path
// segment, or DefaultExtension when there is none.
func Extension(sourceURL string) string {
	p := sourceURL
	if u, err := url.Parse(sourceURL); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	base := path.Base(p)
	i := strings.LastIndex(base, ".")
	if i < 0 || i == len(base)-1 {
		return DefaultExtension
	}

	ext := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return -1
	}, base[i+1:])

	if ext == "" {
		return DefaultExtension
	}
	return ext
}

// sanitizePrefix replaces characters that are unsafe in file names
func sanitizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return '_'
		}
		return r
	}, prefix)
}

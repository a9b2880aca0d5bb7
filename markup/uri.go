package markup

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// ResolveURI turns the address written in a [uri] or [img] tag into a URL.
// An absolute URL is used as is. Anything else is treated as a file path
// relative to base and returned as a file:// URL. ResolveURI returns nil
// when neither interpretation works.
func ResolveURI(s, base string) *url.URL {
	if s == "" || strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return nil
	}

	// A one letter scheme is a Windows drive letter, not a URL.
	if u, err := url.Parse(s); err == nil && u.IsAbs() && len(u.Scheme) > 1 {
		return u
	}

	p := s
	if !filepath.IsAbs(p) {
		if base == "" {
			return nil
		}
		p = filepath.Join(base, p)
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
}

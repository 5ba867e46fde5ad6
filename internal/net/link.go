package net

import (
	"fmt"
	"net/url"
	"strings"

	"LessonBoard/internal/state"
)

// Scheme prefixes share links: lessonboard://host:port/<lesson>.
const Scheme = "lessonboard://"

// ShareLink builds the link a board opens to join lesson on the storage
// server at addr.
func ShareLink(addr, lesson string) string {
	return Scheme + addr + "/" + url.PathEscape(lesson)
}

// IsLink reports whether arg looks like a share link.
func IsLink(arg string) bool {
	return strings.HasPrefix(arg, Scheme)
}

// ParseLink splits a share link into the storage address and lesson. A link
// without a lesson yields an empty lesson.
func ParseLink(link string) (addr, lesson string, err error) {
	if !IsLink(link) {
		return "", "", fmt.Errorf("not a %s link: %q", Scheme, link)
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", "", fmt.Errorf("parse link: %w", err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("link %q has no host", link)
	}
	lesson = strings.Trim(u.Path, "/")
	if lesson != "" && !state.ValidLessonID(lesson) {
		return "", "", fmt.Errorf("link %q: invalid lesson %q", link, lesson)
	}
	return u.Host, lesson, nil
}

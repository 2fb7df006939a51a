package engine

import (
	"strconv"
	"unicode/utf16"
)

// hashURL computes a fast 32-bit rolling hash of a URL:
// h = (h << 5) - h + c for each UTF-16 code unit, wrapping in signed
// 32-bit range. Empty string yields 0. Characters outside the basic
// plane hash as their surrogate pair, one unit at a time.
func hashURL(u string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(u)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// Fingerprint is the stable per-exchange identity: the session id joined
// textually with the URL hash. The textual join keeps two sessions apart
// even when their URL hashes collide.
func Fingerprint(sessionID, url string) string {
	return sessionID + "-" + strconv.FormatInt(int64(hashURL(url)), 10)
}

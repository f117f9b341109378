package htj2k

import "bytes"

// WriteMessage stores msg in dst as a NUL-terminated string, truncated to
// len(dst)-1 bytes. It does nothing when dst has no room at all. Each call
// overwrites the previous message.
func WriteMessage(dst []byte, msg string) {
	if len(dst) == 0 {
		return
	}
	n := copy(dst[:len(dst)-1], msg)
	dst[n] = 0
}

// MessageString returns the NUL-terminated message held in buf.
func MessageString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

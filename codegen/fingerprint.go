package codegen

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const fingerprintPrefix = "// precalc fingerprint: "

// Fingerprint hashes generated source. The fingerprint line itself is excluded,
// so a stamped file hashes to the value it carries.
func Fingerprint(src []byte) uint64 {
	_, rest, _ := split(src)
	return xxhash.Sum64(rest)
}

// Stamp inserts the fingerprint line after the first line of src, replacing any
// existing one.
func Stamp(src []byte) []byte {
	_, rest, _ := split(src)
	sum := xxhash.Sum64(rest)

	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 {
		nl = len(rest) - 1
	}
	out := make([]byte, 0, len(rest)+len(fingerprintPrefix)+17)
	out = append(out, rest[:nl+1]...)
	out = fmt.Appendf(out, "%s%016x\n", fingerprintPrefix, sum)
	return append(out, rest[nl+1:]...)
}

// Stamped returns the fingerprint src carries in its header.
func Stamped(src []byte) (uint64, bool) {
	line, _, ok := split(src)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(string(line), 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Verify reports whether src still carries the fingerprint of its own content,
// that is whether it was not edited after generation.
func Verify(src []byte) bool {
	want, ok := Stamped(src)
	return ok && want == Fingerprint(src)
}

// Stale reports whether the file on disk differs from a fresh generation.
func Stale(onDisk, fresh []byte) bool {
	have, ok := Stamped(onDisk)
	if !ok || !Verify(onDisk) {
		return true
	}
	return have != Fingerprint(fresh)
}

// split separates the fingerprint value from the rest of src. Only the header,
// the lines before the package clause, is searched.
func split(src []byte) (value, rest []byte, ok bool) {
	for off := 0; off < len(src); {
		end := bytes.IndexByte(src[off:], '\n')
		if end < 0 {
			end = len(src) - off
		} else {
			end++
		}
		line := src[off : off+end]
		if bytes.HasPrefix(line, []byte("package ")) {
			break
		}
		if bytes.HasPrefix(line, []byte(fingerprintPrefix)) {
			value = bytes.TrimSpace(line[len(fingerprintPrefix):])
			rest = make([]byte, 0, len(src)-len(line))
			rest = append(rest, src[:off]...)
			rest = append(rest, src[off+end:]...)
			return value, rest, true
		}
		off += end
	}
	return nil, src, false
}

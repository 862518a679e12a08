// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwwdecode

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const (
	// metaPrefix marks a CDataMoji content string as a metadata key/value
	// assignment.
	metaPrefix = "^@"
	// bitmapPrefix marks a CDataMoji content string as an external bitmap
	// reference.
	bitmapPrefix = "^@BM"
)

// readSJIS decodes n bytes of Shift-JIS to UTF-8. Trailing NUL padding is
// stripped before decoding. Invalid byte sequences are replaced with
// U+FFFD; this function never fails on malformed text.
func (r *Reader) readSJIS(n int) (string, error) {
	raw, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	trimmed := bytes.TrimRight(raw, "\x00")
	if len(trimmed) == 0 {
		return "", nil
	}
	decoder := japanese.ShiftJIS.NewDecoder()
	out, _, err := transform.Bytes(decoder, trimmed)
	if err != nil {
		// transform.Bytes stops at the first invalid sequence; fall back to
		// a byte-at-a-time decode so a single bad byte does not blank the
		// whole string.
		return decodeSJISLossy(trimmed), nil
	}
	return string(out), nil
}

// decodeSJISLossy decodes Shift-JIS byte by byte, substituting U+FFFD for
// any lead byte that does not form a valid sequence, so that structural
// parsing of the surrounding record is never aborted by bad text.
func decodeSJISLossy(raw []byte) string {
	var sb strings.Builder
	decoder := japanese.ShiftJIS.NewDecoder()
	i := 0
	for i < len(raw) {
		// Try progressively longer chunks starting at i (1 then 2 bytes,
		// the maximum lead/trail width for Shift-JIS) until one decodes.
		decoded := false
		for width := 1; width <= 2 && i+width <= len(raw); width++ {
			decoder.Reset()
			out, _, err := transform.Bytes(decoder, raw[i:i+width])
			if err == nil && len(out) > 0 {
				sb.Write(out)
				i += width
				decoded = true
				break
			}
		}
		if !decoded {
			sb.WriteRune('�')
			i++
		}
	}
	return sb.String()
}

// readSJISLen8 reads a one-byte length prefix followed by that many
// Shift-JIS bytes.
func (r *Reader) readSJISLen8() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	return r.readSJIS(int(n))
}

// readSJISLen16 reads a two-byte little-endian length prefix followed by
// that many Shift-JIS bytes.
func (r *Reader) readSJISLen16() (string, error) {
	n, err := r.U16()
	if err != nil {
		return "", err
	}
	return r.readSJIS(int(n))
}

// isBitmapReference reports whether a decoded CDataMoji content string is
// the "^@BM" external bitmap side-channel.
func isBitmapReference(content string) bool {
	return strings.HasPrefix(content, bitmapPrefix)
}

// isMetadataAssignment reports whether a decoded CDataMoji content string
// is a "^@key=value" metadata side-channel, and if so returns the key
// and value.
func isMetadataAssignment(content string) (key, value string, ok bool) {
	if !strings.HasPrefix(content, metaPrefix) || isBitmapReference(content) {
		return "", "", false
	}
	rest := content[len(metaPrefix):]
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return "", "", false
	}
	key = rest[:eq]
	value = rest[eq+1:]
	if !recognizedMetadataKeys[key] {
		return "", "", false
	}
	return key, value, true
}

// recognizedMetadataKeys is the closed set of "^@" settings keys the
// decoder understands.
var recognizedMetadataKeys = map[string]bool{
	"printer_paper_size":  true,
	"draw_bmp_touka":      true,
	"view_direct2d":       true,
	"printer_bmp_zentai":  true,
	"printer_orientation": true,
	"printer_d2d_bmp":     true,
}

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

import "math"

// Reader is a bounds-checked cursor over a borrowed byte slice. It never
// reads past the end of data and the cursor position never exceeds
// len(data). Every read advances the cursor by the number of bytes
// consumed; peek variants do not.
type Reader struct {
	data   []byte
	offset int
}

// NewReader wraps data in a Reader starting at offset 0. data is borrowed,
// never mutated, and never copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.offset
}

// Len returns the total length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.offset >= len(r.data) {
		return 0
	}
	return len(r.data) - r.offset
}

// AtEnd reports whether the cursor has reached the end of data.
func (r *Reader) AtEnd() bool {
	return r.offset >= len(r.data)
}

func (r *Reader) require(n int) error {
	if n < 0 || r.offset+n > len(r.data) {
		return errUnexpectedEnd(r.offset)
	}
	return nil
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if err := r.require(n); err != nil {
		return err
	}
	r.offset += n
	return nil
}

// SeekTo moves the cursor to an absolute offset. It fails if offset is out
// of bounds.
func (r *Reader) SeekTo(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return errUnexpectedEnd(offset)
	}
	r.offset = offset
	return nil
}

// Bytes reads and returns a raw sub-slice of length n, advancing the
// cursor. The returned slice aliases the underlying data and must not be
// mutated by the caller.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

// PeekBytes is Bytes without advancing the cursor.
func (r *Reader) PeekBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	return r.data[r.offset : r.offset+n], nil
}

// U8 reads one unsigned byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.data[r.offset]
	r.offset++
	return v, nil
}

// PeekU8 is U8 without advancing the cursor.
func (r *Reader) PeekU8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	return r.data[r.offset], nil
}

// U16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) U16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := uint16(r.data[r.offset]) | uint16(r.data[r.offset+1])<<8
	r.offset += 2
	return v, nil
}

// I32 reads a little-endian two's-complement signed 32-bit integer.
func (r *Reader) I32() (int32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	u := uint32(r.data[r.offset]) |
		uint32(r.data[r.offset+1])<<8 |
		uint32(r.data[r.offset+2])<<16 |
		uint32(r.data[r.offset+3])<<24
	r.offset += 4
	return int32(u), nil
}

// U32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) U32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	u := uint32(r.data[r.offset]) |
		uint32(r.data[r.offset+1])<<8 |
		uint32(r.data[r.offset+2])<<16 |
		uint32(r.data[r.offset+3])<<24
	r.offset += 4
	return u, nil
}

// F64 reads a little-endian IEEE-754 double-precision float.
func (r *Reader) F64() (float64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	var bits uint64
	for i := 0; i < 8; i++ {
		bits |= uint64(r.data[r.offset+i]) << (8 * uint(i))
	}
	r.offset += 8
	return math.Float64frombits(bits), nil
}

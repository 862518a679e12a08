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
	"encoding/binary"
	"math"
)

// docBuilder hand-assembles a well-formed JWW byte stream field by field,
// mirroring the little-endian, length-prefixed-string layout the decoder
// expects. It exists only for tests.
type docBuilder struct {
	buf bytes.Buffer
}

func (b *docBuilder) u8(v uint8) *docBuilder {
	b.buf.WriteByte(v)
	return b
}

func (b *docBuilder) u16(v uint16) *docBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *docBuilder) i32(v int32) *docBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	b.buf.Write(tmp[:])
	return b
}

func (b *docBuilder) f64(v float64) *docBuilder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	b.buf.Write(tmp[:])
	return b
}

func (b *docBuilder) bool8(v bool) *docBuilder {
	if v {
		return b.u8(1)
	}
	return b.u8(0)
}

// sjis8 writes a one-byte length prefix followed by s. Tests only use
// plain ASCII strings here, which are identity-encoded in Shift-JIS.
func (b *docBuilder) sjis8(s string) *docBuilder {
	b.u8(uint8(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *docBuilder) sjis16(s string) *docBuilder {
	b.u16(uint16(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *docBuilder) raw(data []byte) *docBuilder {
	b.buf.Write(data)
	return b
}

func (b *docBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// header appends a full, valid file header for the given version, using
// print settings with scale 1 and all other print/sunpou fields zero, and
// the given memo/paper size/write layer group, followed by the
// version-appropriate reserved padding.
func (b *docBuilder) header(version int32, memo string, paperSize, writeLayerGroup uint8) *docBuilder {
	b.i32(version)
	b.sjis16(memo)
	b.u8(paperSize)
	b.u8(writeLayerGroup)
	// print settings: origin_x, origin_y, scale, rotation_setting
	b.f64(0).f64(0).f64(1).i32(0)
	// sunpou settings: sunpou1..5, dummy, max_line_width
	b.f64(0).f64(0).f64(0).f64(0).f64(0).f64(0).f64(0)
	b.raw(make([]byte, headerPadding(int(version))))
	return b
}

// layerTable appends 16 default layer groups, each with 16 default
// layers, using empty names, unprotected groups and layers, group
// state 0 with scale 100, and layer state 2 (editable).
func (b *docBuilder) layerTable() *docBuilder {
	for g := 0; g < LayerGroups; g++ {
		b.u8(0)      // state
		b.u8(0)      // write_layer
		b.f64(100)   // scale
		b.bool8(false) // protect
		for l := 0; l < LayersPerGroup; l++ {
			b.u8(2) // state: editable
			b.bool8(false)
			b.sjis8("")
		}
		b.sjis8("")
	}
	return b
}

// entityBase appends the shared attribute block preceding a drawing
// entity. penWidth is only written when version >= 351.
func (b *docBuilder) entityBase(version int32, group, penStyle, penColor, penWidth int32, layer, layerGroup uint8, flag int32) *docBuilder {
	b.i32(group).i32(penStyle).i32(penColor)
	if version >= versionPenWidth {
		b.i32(penWidth)
	}
	b.u8(layer).u8(layerGroup).i32(flag)
	return b
}

func (b *docBuilder) endMarker() *docBuilder {
	return b.sjis8("")
}

func defaultBase(version int32) func(*docBuilder) *docBuilder {
	return func(b *docBuilder) *docBuilder {
		return b.entityBase(version, 0, 0, 0, 0, 0, 0, 0)
	}
}

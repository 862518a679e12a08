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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 1: minimal v3.51 file, header only, no entities.
func TestParseMinimalV351File(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable().endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Equal(t, 351, doc.Version)
	require.Empty(t, doc.Entities)
	require.Empty(t, doc.BlockDefs)
	require.Empty(t, doc.EmbeddedImages)
	require.Len(t, doc.LayerGroups, LayerGroups)
}

// Scenario 2: a single line on layer 3, layer group 0.
func TestParseSingleLine(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagLine)
	b.entityBase(351, 0, 0, 0, 0, 3, 0, 0)
	b.f64(0).f64(0).f64(100).f64(0)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	e := doc.Entities[0]
	require.Equal(t, EntityLine, e.Type)
	require.Equal(t, 3, e.Base.Layer)
	require.Equal(t, 0, e.Base.LayerGroup)
	require.Equal(t, LineEntity{StartX: 0, StartY: 0, EndX: 100, EndY: 0}, *e.Line)
}

// Scenario 3: a full circle.
func TestParseFullCircle(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagArc)
	defaultBase(351)(&b)
	b.f64(50).f64(50).f64(25).f64(0).f64(2 * math.Pi).f64(0).f64(0)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	require.Equal(t, EntityArc, doc.Entities[0].Type)
	require.True(t, doc.Entities[0].Arc.IsFullCircle)
}

func TestArcNotFullCircleJustOutsideEpsilon(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagArc)
	defaultBase(351)(&b)
	// arc_angle off by ten times the 1e-9 tolerance.
	b.f64(0).f64(0).f64(1).f64(0).f64(2*math.Pi-1e-8).f64(0).f64(0)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.False(t, doc.Entities[0].Arc.IsFullCircle)
}

func TestArcFullCircleWithinEpsilon(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagArc)
	defaultBase(351)(&b)
	b.f64(0).f64(0).f64(1).f64(0).f64(2*math.Pi+1e-12).f64(0).f64(0)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.True(t, doc.Entities[0].Arc.IsFullCircle)
}

// Scenario 4: a block definition containing two lines,
// referenced by a top-level block insertion.
func TestParseBlockReference(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()

	b.sjis8(tagBlockDef)
	defaultBase(351)(&b)
	b.i32(7)
	b.sjis8("BLK")

	for i := 0; i < 2; i++ {
		b.sjis8(tagLine)
		defaultBase(351)(&b)
		b.f64(0).f64(0).f64(1).f64(1)
	}

	b.sjis8(tagBlockEnd)
	defaultBase(351)(&b)

	b.sjis8(tagBlock)
	defaultBase(351)(&b)
	b.f64(10).f64(10).f64(1).f64(1).f64(0).i32(7)

	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	require.Equal(t, EntityBlock, doc.Entities[0].Type)
	require.Len(t, doc.BlockDefs, 1)
	require.Equal(t, int32(7), doc.BlockDefs[0].Number)
	require.True(t, doc.BlockDefs[0].IsReferenced)
	require.Len(t, doc.BlockDefs[0].Entities, 2)
}

func TestParseMissingBlockDefinition(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagBlock)
	defaultBase(351)(&b)
	b.f64(0).f64(0).f64(1).f64(1).f64(0).i32(99)
	b.endMarker()

	_, err := Parse(b.bytes())
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ErrMissingBlockDefinition, pe.Kind)
	require.Equal(t, int32(99), pe.Number)
}

func TestUnmatchedBlockEndIsRejected(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagBlockEnd)
	defaultBase(351)(&b)
	b.endMarker()

	_, err := Parse(b.bytes())
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ErrUnmatchedBlockEnd, pe.Kind)
}

// Scenario 5: the CDataMoji metadata side channel.
func TestParseMetadataSideChannel(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagText)
	defaultBase(351)(&b)
	b.f64(0).f64(0).f64(0).f64(0).i32(0).f64(0).f64(0).f64(0).f64(0)
	b.sjis8("")
	b.sjis16("^@printer_orientation=landscape")
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Empty(t, doc.Entities, "a metadata assignment must not emit a drawing entity")
	require.Equal(t, "landscape", doc.MetadataSettings.PrinterOrientation)
}

func TestParseBareBitmapReferenceContent(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagText)
	defaultBase(351)(&b)
	b.f64(0).f64(0).f64(0).f64(0).i32(0).f64(0).f64(0).f64(0).f64(0)
	b.sjis8("")
	b.sjis16(bitmapPrefix)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	require.Equal(t, EntityImage, doc.Entities[0].Type)
	require.Equal(t, ImageEntity{}, *doc.Entities[0].Image)
}

func TestParseOrdinaryText(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagText)
	defaultBase(351)(&b)
	b.f64(1).f64(2).f64(3).f64(4).i32(0).f64(5).f64(5).f64(0).f64(0)
	b.sjis8("Arial")
	b.sjis16("hello world")
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	require.Equal(t, EntityText, doc.Entities[0].Type)
	require.Equal(t, "hello world", doc.Entities[0].Text.Content)
	require.Equal(t, "Arial", doc.Entities[0].Text.FontName)
}

// Scenario 6: a v7.00 file with one embedded PNG.
func TestParseEmbeddedPNG(t *testing.T) {
	var b docBuilder
	b.header(700, "", 0, 0).layerTable().endMarker()
	pngMagicBytes := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	b.i32(0).i32(int32(len(pngMagicBytes))).raw(pngMagicBytes)

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Equal(t, 700, doc.Version)
	require.Len(t, doc.EmbeddedImages, 1)
	require.Equal(t, ImageFormatPng, doc.EmbeddedImages[0].Format)
	require.Equal(t, int32(8), doc.EmbeddedImages[0].FileSize)
	require.Len(t, doc.EmbeddedImages[0].Data, 8)
}

func TestNoEmbeddedImagesBelowVersion700(t *testing.T) {
	var b docBuilder
	b.header(699, "", 0, 0).layerTable().endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Empty(t, doc.EmbeddedImages)
}

func TestInvalidImageTrailerFileSizeOverruns(t *testing.T) {
	var b docBuilder
	b.header(700, "", 0, 0).layerTable().endMarker()
	b.i32(0).i32(1000) // declares 1000 bytes but nothing follows

	_, err := Parse(b.bytes())
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ErrInvalidImageTrailer, pe.Kind)
}

func TestPenStyleDispatchesSolidVsArcSolid(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagSolid)
	b.entityBase(351, 0, 100, 0, 0, 0, 0, 0)
	for i := 0; i < 8; i++ {
		b.f64(float64(i))
	}
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Equal(t, EntitySolid, doc.Entities[0].Type)
}

func TestPenStyle101IsArcSolid(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagSolid)
	b.entityBase(351, 0, 101, 0, 0, 0, 0, 0)
	b.f64(0).f64(0).f64(10).f64(0).f64(0).f64(0).f64(math.Pi).i32(0)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Equal(t, EntityArcSolid, doc.Entities[0].Type)
}

func TestSolidWithPenColor10CarriesColor(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagSolid)
	b.entityBase(351, 0, 100, 10, 0, 0, 0, 0)
	for i := 0; i < 8; i++ {
		b.f64(0)
	}
	b.i32(0x00FF00FF)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Equal(t, int32(0x00FF00FF), doc.Entities[0].Solid.Color)
}

func TestPenWidthAbsentBelowVersion351(t *testing.T) {
	var b docBuilder
	b.header(350, "", 0, 0).layerTable()
	b.sjis8(tagLine)
	b.entityBase(350, 0, 0, 0, 0, 0, 0, 0)
	b.f64(0).f64(0).f64(0).f64(0)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	require.Equal(t, 0, doc.Entities[0].Base.PenWidth)
}

func TestUnknownEntityTag(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8("CDataBogus")

	_, err := Parse(b.bytes())
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ErrUnknownEntityTag, pe.Kind)
	require.Equal(t, "CDataBogus", pe.Tag)
}

func TestEmptyInputFails(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ErrUnexpectedEnd, pe.Kind)
	require.Equal(t, 0, pe.Offset)
}

func TestTruncatedHeaderFailsAtEveryFieldBoundary(t *testing.T) {
	var full docBuilder
	full.header(351, "memo", 0, 0).layerTable().endMarker()
	data := full.bytes()
	var hdr docBuilder
	hdr.header(351, "memo", 0, 0)
	headerLen := len(hdr.bytes())
	for cut := 0; cut < headerLen; cut++ {
		_, err := Parse(data[:cut])
		require.Error(t, err, "truncation at %d bytes should fail", cut)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
	}
}

func TestParseIsDeterministic(t *testing.T) {
	var b docBuilder
	b.header(351, "hello", 0, 3).layerTable()
	b.sjis8(tagLine)
	defaultBase(351)(&b)
	b.f64(1).f64(2).f64(3).f64(4)
	b.endMarker()
	data := b.bytes()

	doc1, err1 := Parse(data)
	require.NoError(t, err1)
	doc2, err2 := Parse(data)
	require.NoError(t, err2)
	require.Equal(t, doc1, doc2)
}

func TestInvalidPaperSizeRejected(t *testing.T) {
	var b docBuilder
	b.header(351, "", 250, 0).layerTable().endMarker()

	_, err := Parse(b.bytes())
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, ErrInvalidHeader, pe.Kind)
}

func TestToJSONStringShapesEntityAsTaggedObject(t *testing.T) {
	var b docBuilder
	b.header(351, "", 0, 0).layerTable()
	b.sjis8(tagLine)
	defaultBase(351)(&b)
	b.f64(0).f64(0).f64(1).f64(1)
	b.endMarker()

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	js, err := ToJSONString(doc)
	require.NoError(t, err)
	require.Contains(t, js, `"type":"Line"`)
	require.Contains(t, js, `"value":{`)
}

func TestToJSONStringShapesEmbeddedImageDataAsByteArray(t *testing.T) {
	var b docBuilder
	b.header(700, "", 0, 0).layerTable().endMarker()
	pngMagicBytes := []byte{0x89, 0x50, 0x4E, 0x47}
	b.i32(0).i32(int32(len(pngMagicBytes))).raw(pngMagicBytes)

	doc, err := Parse(b.bytes())
	require.NoError(t, err)
	js, err := ToJSONString(doc)
	require.NoError(t, err)
	require.Contains(t, js, `"data":[137,80,78,71]`)
	require.NotContains(t, js, `"data":"`)
}

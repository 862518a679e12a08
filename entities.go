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

// fullCircleEpsilon is the absolute tolerance used to detect a full
// circle from a computed arc_angle.
const fullCircleEpsilon = 1e-9

const twoPi = 2 * math.Pi

// Recognized C++ class tags.
const (
	tagLine     = "CDataSen"
	tagArc      = "CDataEnko"
	tagPoint    = "CDataTen"
	tagText     = "CDataMoji"
	tagSolid    = "CDataSolid"
	tagBlock    = "CDataBlock"
	tagBlockDef = "CDataBlockDef"
	tagBlockEnd = "CDataBlockEnd"
	// tagEnd is a zero-length class tag used as the canonical
	// end-of-entities marker.
	tagEnd = ""
)

// entityStream holds the mutable state threaded through the entity
// decode loop: the open block definition (if any; block definitions do
// not nest), the completed block definitions collected so
// far, and the metadata settings accumulated via the CDataMoji side
// channel.
type entityStream struct {
	r         *Reader
	version   int
	openBlock *BlockDef
	blockDefs []*BlockDef
	metadata  MetadataSettings
	entities  []Entity
}

// decodeEntities runs the main entity dispatch loop. It
// stops at the canonical end-of-entities marker, at end of input, or
// (implicitly, since the caller decodes the embedded-image trailer
// separately) whenever there is nothing left to read.
func decodeEntities(r *Reader, version int) (*entityStream, error) {
	s := &entityStream{r: r, version: version}
	for {
		if r.AtEnd() {
			return s, nil
		}
		tagOffset := r.Offset()
		tag, err := r.readSJISLen8()
		if err != nil {
			return nil, err
		}
		if tag == tagEnd {
			return s, nil
		}
		if err := s.dispatch(tag, tagOffset); err != nil {
			return nil, err
		}
	}
}

// target returns the slice a newly decoded top-level entity should be
// appended to: the currently open block definition's entities if one is
// open, otherwise the document's top-level entities.
func (s *entityStream) target() *[]Entity {
	if s.openBlock != nil {
		return &s.openBlock.Entities
	}
	return &s.entities
}

func (s *entityStream) dispatch(tag string, tagOffset int) error {
	switch tag {
	case tagLine:
		return s.decodeLine()
	case tagArc:
		return s.decodeArc()
	case tagPoint:
		return s.decodePoint()
	case tagText:
		return s.decodeText()
	case tagSolid:
		return s.decodeSolid()
	case tagBlock:
		return s.decodeBlockInsertion(tagOffset)
	case tagBlockDef:
		return s.decodeBlockDefOpen()
	case tagBlockEnd:
		return s.decodeBlockDefClose(tagOffset)
	default:
		return errUnknownEntityTag(tagOffset, tag)
	}
}

// decodeEntityBase reads the shared attribute block preceding every
// drawing entity. pen_width is only present when version >= 351.
func (s *entityStream) decodeEntityBase() (EntityBase, error) {
	var b EntityBase
	r := s.r

	group, err := r.I32()
	if err != nil {
		return b, err
	}
	b.Group = int(group)

	penStyle, err := r.I32()
	if err != nil {
		return b, err
	}
	b.PenStyle = int(penStyle)

	penColor, err := r.I32()
	if err != nil {
		return b, err
	}
	b.PenColor = int(penColor)

	if s.version >= versionPenWidth {
		penWidth, err := r.I32()
		if err != nil {
			return b, err
		}
		b.PenWidth = int(penWidth)
	}

	layer, err := r.U8()
	if err != nil {
		return b, err
	}
	b.Layer = int(layer)

	layerGroup, err := r.U8()
	if err != nil {
		return b, err
	}
	b.LayerGroup = int(layerGroup)

	flag, err := r.I32()
	if err != nil {
		return b, err
	}
	b.Flag = int(flag)

	return b, nil
}

func (s *entityStream) append(e Entity) {
	target := s.target()
	*target = append(*target, e)
}

func (s *entityStream) decodeLine() error {
	base, err := s.decodeEntityBase()
	if err != nil {
		return err
	}
	r := s.r
	var l LineEntity
	if l.StartX, err = r.F64(); err != nil {
		return err
	}
	if l.StartY, err = r.F64(); err != nil {
		return err
	}
	if l.EndX, err = r.F64(); err != nil {
		return err
	}
	if l.EndY, err = r.F64(); err != nil {
		return err
	}
	s.append(Entity{Type: EntityLine, Base: base, Line: &l})
	return nil
}

func (s *entityStream) decodeArc() error {
	base, err := s.decodeEntityBase()
	if err != nil {
		return err
	}
	r := s.r
	var a ArcEntity
	if a.CenterX, err = r.F64(); err != nil {
		return err
	}
	if a.CenterY, err = r.F64(); err != nil {
		return err
	}
	if a.Radius, err = r.F64(); err != nil {
		return err
	}
	if a.StartAngle, err = r.F64(); err != nil {
		return err
	}
	if a.ArcAngle, err = r.F64(); err != nil {
		return err
	}
	if a.TiltAngle, err = r.F64(); err != nil {
		return err
	}
	if a.Flatness, err = r.F64(); err != nil {
		return err
	}
	a.IsFullCircle = math.Abs(a.ArcAngle-twoPi) < fullCircleEpsilon
	s.append(Entity{Type: EntityArc, Base: base, Arc: &a})
	return nil
}

func (s *entityStream) decodePoint() error {
	base, err := s.decodeEntityBase()
	if err != nil {
		return err
	}
	r := s.r
	var p PointEntity
	if p.X, err = r.F64(); err != nil {
		return err
	}
	if p.Y, err = r.F64(); err != nil {
		return err
	}
	isTemp, err := r.U8()
	if err != nil {
		return err
	}
	p.IsTemporary = isTemp != 0
	code, err := r.I32()
	if err != nil {
		return err
	}
	p.Code = int(code)
	if p.Angle, err = r.F64(); err != nil {
		return err
	}
	if p.Scale, err = r.F64(); err != nil {
		return err
	}
	s.append(Entity{Type: EntityPoint, Base: base, Point: &p})
	return nil
}

// decodeText reads a CDataMoji record and classifies its content: a
// bitmap reference becomes an Image entity, a recognized metadata
// assignment updates metadata_settings and emits nothing, and anything
// else is a normal Text entity.
func (s *entityStream) decodeText() error {
	base, err := s.decodeEntityBase()
	if err != nil {
		return err
	}
	r := s.r
	var t TextEntity
	if t.StartX, err = r.F64(); err != nil {
		return err
	}
	if t.StartY, err = r.F64(); err != nil {
		return err
	}
	if t.EndX, err = r.F64(); err != nil {
		return err
	}
	if t.EndY, err = r.F64(); err != nil {
		return err
	}
	textType, err := r.I32()
	if err != nil {
		return err
	}
	t.TextType = int(textType)
	if t.SizeX, err = r.F64(); err != nil {
		return err
	}
	if t.SizeY, err = r.F64(); err != nil {
		return err
	}
	if t.Spacing, err = r.F64(); err != nil {
		return err
	}
	if t.Angle, err = r.F64(); err != nil {
		return err
	}
	if t.FontName, err = r.readSJISLen8(); err != nil {
		return err
	}
	if t.Content, err = r.readSJISLen16(); err != nil {
		return err
	}

	if isBitmapReference(t.Content) {
		img := parseBitmapReference(t.Content)
		s.append(Entity{Type: EntityImage, Base: base, Image: &img})
		return nil
	}
	if key, value, ok := isMetadataAssignment(t.Content); ok {
		s.metadata.set(key, value)
		return nil
	}
	s.append(Entity{Type: EntityText, Base: base, Text: &t})
	return nil
}

func (s *entityStream) decodeSolid() error {
	base, err := s.decodeEntityBase()
	if err != nil {
		return err
	}
	r := s.r
	if base.PenStyle >= 101 {
		var a ArcSolidEntity
		if a.CenterX, err = r.F64(); err != nil {
			return err
		}
		if a.CenterY, err = r.F64(); err != nil {
			return err
		}
		if a.Radius, err = r.F64(); err != nil {
			return err
		}
		if a.Flatness, err = r.F64(); err != nil {
			return err
		}
		if a.TiltAngle, err = r.F64(); err != nil {
			return err
		}
		if a.StartAngle, err = r.F64(); err != nil {
			return err
		}
		if a.ArcAngle, err = r.F64(); err != nil {
			return err
		}
		solidParam, err := r.I32()
		if err != nil {
			return err
		}
		a.SolidParam = int(solidParam)
		if base.PenColor == 10 {
			color, err := r.I32()
			if err != nil {
				return err
			}
			a.Color = color
		}
		s.append(Entity{Type: EntityArcSolid, Base: base, ArcSolid: &a})
		return nil
	}

	var sol SolidEntity
	coords := []*float64{&sol.X1, &sol.Y1, &sol.X2, &sol.Y2, &sol.X3, &sol.Y3, &sol.X4, &sol.Y4}
	for _, c := range coords {
		v, err := r.F64()
		if err != nil {
			return err
		}
		*c = v
	}
	if base.PenColor == 10 {
		color, err := r.I32()
		if err != nil {
			return err
		}
		sol.Color = color
	}
	s.append(Entity{Type: EntitySolid, Base: base, Solid: &sol})
	return nil
}

func (s *entityStream) decodeBlockInsertion(tagOffset int) error {
	base, err := s.decodeEntityBase()
	if err != nil {
		return err
	}
	r := s.r
	var b BlockEntity
	if b.RefX, err = r.F64(); err != nil {
		return err
	}
	if b.RefY, err = r.F64(); err != nil {
		return err
	}
	if b.ScaleX, err = r.F64(); err != nil {
		return err
	}
	if b.ScaleY, err = r.F64(); err != nil {
		return err
	}
	if b.Rotation, err = r.F64(); err != nil {
		return err
	}
	defNumber, err := r.I32()
	if err != nil {
		return err
	}
	b.DefNumber = defNumber
	s.append(Entity{Type: EntityBlock, Base: base, Block: &b, offset: tagOffset})
	return nil
}

// decodeBlockDefOpen opens a nested context; subsequent entities belong
// to this definition until the matching CDataBlockEnd tag. Block
// definitions do not nest.
func (s *entityStream) decodeBlockDefOpen() error {
	base, err := s.decodeEntityBase()
	if err != nil {
		return err
	}
	r := s.r
	number, err := r.I32()
	if err != nil {
		return err
	}
	name, err := r.readSJISLen8()
	if err != nil {
		return err
	}
	def := &BlockDef{Base: base, Number: number, Name: name}
	s.blockDefs = append(s.blockDefs, def)
	s.openBlock = def
	return nil
}

func (s *entityStream) decodeBlockDefClose(offset int) error {
	if _, err := s.decodeEntityBase(); err != nil {
		return err
	}
	if s.openBlock == nil {
		return errUnmatchedBlockEnd(offset)
	}
	s.openBlock = nil
	return nil
}

// parseBitmapReference parses the "path|x|y|width|height|rotation"
// payload following the "^@BM" prefix. Trailing fields may be absent
// and default to 0.
func parseBitmapReference(content string) ImageEntity {
	rest := content[len(bitmapPrefix):]
	fields := splitPipe(rest)
	var img ImageEntity
	if len(fields) > 0 {
		img.ImagePath = fields[0]
	}
	if len(fields) > 1 {
		img.X = parseFloatDefault(fields[1])
	}
	if len(fields) > 2 {
		img.Y = parseFloatDefault(fields[2])
	}
	if len(fields) > 3 {
		img.Width = parseFloatDefault(fields[3])
	}
	if len(fields) > 4 {
		img.Height = parseFloatDefault(fields[4])
	}
	if len(fields) > 5 {
		img.Rotation = parseFloatDefault(fields[5])
	}
	return img
}

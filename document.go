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

// Package jwwdecode decodes JW-CAD (.jww) binary drawing files into a
// structured, immutable in-memory Document. It performs no host I/O: the
// caller supplies the whole file as a byte slice already in memory.
package jwwdecode

// Number of layers per layer group, and the fixed number of layer groups
// in every JWW document.
const (
	LayersPerGroup = 16
	LayerGroups    = 16
)

// Version gates below which pen_width and the embedded-image trailer
// are absent from the file.
const (
	versionPenWidth      = 351
	versionEmbeddedImage = 700
)

// Document is the root of the decoded drawing. It owns every entity,
// layer group, block definition, and embedded image blob it contains;
// nothing is shared by pointer across those collections. A Document is
// assembled exactly once by Parse and is never mutated afterward.
type Document struct {
	Version          int                     `json:"version"`
	Memo             string                  `json:"memo"`
	PaperSize        int                     `json:"paper_size"`
	WriteLayerGroup  int                     `json:"write_layer_group"`
	LayerGroups      [LayerGroups]LayerGroup `json:"layer_groups"`
	Entities         []Entity                `json:"entities"`
	BlockDefs        []*BlockDef             `json:"block_defs"`
	EmbeddedImages   []EmbeddedImage         `json:"embedded_images"`
	PrintSettings    PrintSettings           `json:"print_settings"`
	SunpouSettings   SunpouSettings          `json:"sunpou_settings"`
	MetadataSettings MetadataSettings        `json:"metadata_settings"`
}

// LayerGroup is a collection of 16 layers sharing a scale.
type LayerGroup struct {
	State      int                   `json:"state"`
	WriteLayer int                   `json:"write_layer"`
	Scale      float64               `json:"scale"`
	Protect    bool                  `json:"protect"`
	Name       string                `json:"name"`
	Layers     [LayersPerGroup]Layer `json:"layers"`
}

// Layer is one of the 16 layers within a LayerGroup.
type Layer struct {
	State   int    `json:"state"` // 0 hidden, 1 view-only, 2 editable, 3 write-mode
	Protect bool   `json:"protect"`
	Name    string `json:"name"`
}

// EntityBase is the shared attribute block preceding every drawing
// entity.
type EntityBase struct {
	Group    int `json:"group"`
	PenStyle int `json:"pen_style"`
	// PenColor is preserved verbatim. Values 1-9 are the standard JW-CAD
	// pen colors; values above 9 are SXF extended colors whose meaning is
	// left to a downstream DXF emitter.
	PenColor int `json:"pen_color"`
	// PenWidth is only populated when the document version is >= 351;
	// otherwise it is the zero value.
	PenWidth   int `json:"pen_width"`
	Layer      int `json:"layer"`       // 0-15
	LayerGroup int `json:"layer_group"` // 0-15
	Flag       int `json:"flag"`
}

// EntityType discriminates the closed set of drawing entity variants
//. It is a sum type, not an open class hierarchy.
type EntityType int

const (
	EntityLine EntityType = iota
	EntityArc
	EntityPoint
	EntityText
	EntitySolid
	EntityArcSolid
	EntityBlock
	EntityImage
)

func (t EntityType) String() string {
	switch t {
	case EntityLine:
		return "Line"
	case EntityArc:
		return "Arc"
	case EntityPoint:
		return "Point"
	case EntityText:
		return "Text"
	case EntitySolid:
		return "Solid"
	case EntityArcSolid:
		return "ArcSolid"
	case EntityBlock:
		return "Block"
	case EntityImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Entity is a tagged variant over the eight drawing entity kinds. Exactly
// one of the typed fields matching Type is non-nil/meaningful; callers
// should switch on Type.
type Entity struct {
	Type EntityType
	Base EntityBase

	// offset is the file offset of this entity's class tag, used only to
	// annotate a MissingBlockDefinition error; it plays no role in the
	// public shape of the document.
	offset int

	Line     *LineEntity     `json:",omitempty"`
	Arc      *ArcEntity      `json:",omitempty"`
	Point    *PointEntity    `json:",omitempty"`
	Text     *TextEntity     `json:",omitempty"`
	Solid    *SolidEntity    `json:",omitempty"`
	ArcSolid *ArcSolidEntity `json:",omitempty"`
	Block    *BlockEntity    `json:",omitempty"`
	Image    *ImageEntity    `json:",omitempty"`
}

// LineEntity is a straight segment between two points.
type LineEntity struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

// ArcEntity is a circular arc, or a full circle when IsFullCircle is set.
type ArcEntity struct {
	CenterX      float64 `json:"center_x"`
	CenterY      float64 `json:"center_y"`
	Radius       float64 `json:"radius"`
	StartAngle   float64 `json:"start_angle"`
	ArcAngle     float64 `json:"arc_angle"`
	TiltAngle    float64 `json:"tilt_angle"`
	Flatness     float64 `json:"flatness"`
	IsFullCircle bool    `json:"is_full_circle"`
}

// PointEntity is a point marker.
type PointEntity struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	IsTemporary bool    `json:"is_temporary"`
	Code        int     `json:"code"`
	Angle       float64 `json:"angle"`
	Scale       float64 `json:"scale"`
}

// TextEntity is a run of text with position, size, and font.
type TextEntity struct {
	StartX   float64 `json:"start_x"`
	StartY   float64 `json:"start_y"`
	EndX     float64 `json:"end_x"`
	EndY     float64 `json:"end_y"`
	TextType int     `json:"text_type"`
	SizeX    float64 `json:"size_x"`
	SizeY    float64 `json:"size_y"`
	Spacing  float64 `json:"spacing"`
	Angle    float64 `json:"angle"`
	FontName string  `json:"font_name"`
	Content  string  `json:"content"`
}

// SolidEntity is a four-corner filled polygon.
type SolidEntity struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	X3 float64 `json:"x3"`
	Y3 float64 `json:"y3"`
	X4 float64 `json:"x4"`
	Y4 float64 `json:"y4"`
	// Color is present only when Base.PenColor == 10, else 0.
	Color int32 `json:"color"`
}

// ArcSolidEntity is an arc- or ring-shaped filled region.
type ArcSolidEntity struct {
	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	Radius     float64 `json:"radius"`
	Flatness   float64 `json:"flatness"`
	TiltAngle  float64 `json:"tilt_angle"`
	StartAngle float64 `json:"start_angle"`
	ArcAngle   float64 `json:"arc_angle"`
	SolidParam int     `json:"solid_param"`
	// Color is present only when Base.PenColor == 10, else 0.
	Color int32 `json:"color"`
}

// BlockEntity is a placement (insertion) of a BlockDef.
type BlockEntity struct {
	RefX      float64 `json:"ref_x"`
	RefY      float64 `json:"ref_y"`
	ScaleX    float64 `json:"scale_x"`
	ScaleY    float64 `json:"scale_y"`
	Rotation  float64 `json:"rotation"`
	DefNumber int32   `json:"def_number"`
}

// ImageEntity is an external bitmap reference synthesized from a
// CDataMoji "^@BM" content string.
type ImageEntity struct {
	ImagePath string  `json:"image_path"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rotation  float64 `json:"rotation"`
}

// BlockDef is a reusable sub-drawing. IsReferenced is populated by the
// block linker after the entity stream has been fully parsed.
type BlockDef struct {
	Base         EntityBase `json:"base"`
	Number       int32      `json:"number"`
	IsReferenced bool       `json:"is_referenced"`
	Name         string     `json:"name"`
	Entities     []Entity   `json:"entities"`
}

// ImageFormat is the container format of an EmbeddedImage, derived from
// magic bytes only.
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatJpeg
	ImageFormatPng
	ImageFormatBmp
	ImageFormatGif
)

func (f ImageFormat) String() string {
	switch f {
	case ImageFormatJpeg:
		return "Jpeg"
	case ImageFormatPng:
		return "Png"
	case ImageFormatBmp:
		return "Bmp"
	case ImageFormatGif:
		return "Gif"
	default:
		return "Unknown"
	}
}

// EmbeddedImage is a raw image blob carried in the version >= 700
// trailer.
type EmbeddedImage struct {
	Index    int32       `json:"index"`
	FileSize int32       `json:"file_size"`
	Data     []byte      `json:"data"`
	Format   ImageFormat `json:"format"`
}

// PrintSettings is the fixed-shape print-settings record read by the
// header decoder.
type PrintSettings struct {
	OriginX         float64 `json:"origin_x"`
	OriginY         float64 `json:"origin_y"`
	Scale           float64 `json:"scale"`
	RotationSetting int     `json:"rotation_setting"`
}

// SunpouSettings is the dimension-annotation ("寸法") settings record.
type SunpouSettings struct {
	Sunpou1      float64 `json:"sunpou1"`
	Sunpou2      float64 `json:"sunpou2"`
	Sunpou3      float64 `json:"sunpou3"`
	Sunpou4      float64 `json:"sunpou4"`
	Sunpou5      float64 `json:"sunpou5"`
	Dummy        float64 `json:"dummy"`
	MaxLineWidth float64 `json:"max_line_width"`
}

// MetadataSettings holds settings smuggled inside CDataMoji content via
// the "^@key=value" side channel. All fields start empty
// and are overwritten as matching records are encountered during entity
// decoding.
type MetadataSettings struct {
	PrinterPaperSize   string `json:"printer_paper_size"`
	DrawBmpTouka       string `json:"draw_bmp_touka"`
	ViewDirect2D       string `json:"view_direct2d"`
	PrinterBmpZentai   string `json:"printer_bmp_zentai"`
	PrinterOrientation string `json:"printer_orientation"`
	PrinterD2DBmp      string `json:"printer_d2d_bmp"`
}

func (m *MetadataSettings) set(key, value string) {
	switch key {
	case "printer_paper_size":
		m.PrinterPaperSize = value
	case "draw_bmp_touka":
		m.DrawBmpTouka = value
	case "view_direct2d":
		m.ViewDirect2D = value
	case "printer_bmp_zentai":
		m.PrinterBmpZentai = value
	case "printer_orientation":
		m.PrinterOrientation = value
	case "printer_d2d_bmp":
		m.PrinterD2DBmp = value
	}
}

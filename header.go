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

// headerPaddingTable anchors the reserved-padding size (in bytes) that
// follows the sunpou settings record, keyed by the lowest version the
// entry applies to. The two hard anchors (351, 700) were inferred
// empirically from known sample files; the decoder picks the last
// anchor whose version is <= the file's version. Versions strictly
// between 351 and 700 are the range most in need of a corpus-driven
// check.
var headerPaddingTable = []struct {
	minVersion int
	padding    int
}{
	{0, 0},
	{351, 4},
	{420, 8},
	{700, 12},
}

func headerPadding(version int) int {
	padding := 0
	for _, anchor := range headerPaddingTable {
		if version >= anchor.minVersion {
			padding = anchor.padding
		}
	}
	return padding
}

// decodeHeader reads the fixed-layout file header: signature/version tag,
// memo, paper size, write-layer-group, print settings, sunpou settings,
// and version-dependent reserved padding. metadata_settings
// is left zero-valued here; it is populated later by the entity decoder
// when it encounters CDataMoji metadata records.
func decodeHeader(r *Reader) (*Document, error) {
	version, err := r.I32()
	if err != nil {
		return nil, err
	}

	memo, err := r.readSJISLen16()
	if err != nil {
		return nil, err
	}

	paperSizeRaw, err := r.U8()
	if err != nil {
		return nil, err
	}
	paperSize := int(paperSizeRaw)
	if !validPaperSize(paperSize) {
		return nil, errInvalidHeader(r.Offset() - 1)
	}

	writeLayerGroupRaw, err := r.U8()
	if err != nil {
		return nil, err
	}
	writeLayerGroup := int(writeLayerGroupRaw)
	if writeLayerGroup < 0 || writeLayerGroup > 15 {
		return nil, errInvalidHeader(r.Offset() - 1)
	}

	print, err := decodePrintSettings(r)
	if err != nil {
		return nil, err
	}

	sunpou, err := decodeSunpouSettings(r)
	if err != nil {
		return nil, err
	}

	if err := r.Skip(headerPadding(int(version))); err != nil {
		return nil, err
	}

	doc := &Document{
		Version:         int(version),
		Memo:            memo,
		PaperSize:       paperSize,
		WriteLayerGroup: writeLayerGroup,
		PrintSettings:   print,
		SunpouSettings:  sunpou,
	}
	return doc, nil
}

// validPaperSize reports whether a paper-size code is one of the
// documented sizes (0-4, 8, 9).
func validPaperSize(code int) bool {
	if code >= 0 && code <= 4 {
		return true
	}
	return code == 8 || code == 9
}

func decodePrintSettings(r *Reader) (PrintSettings, error) {
	var p PrintSettings
	var err error
	if p.OriginX, err = r.F64(); err != nil {
		return p, err
	}
	if p.OriginY, err = r.F64(); err != nil {
		return p, err
	}
	if p.Scale, err = r.F64(); err != nil {
		return p, err
	}
	rotation, err := r.I32()
	if err != nil {
		return p, err
	}
	p.RotationSetting = int(rotation)
	return p, nil
}

func decodeSunpouSettings(r *Reader) (SunpouSettings, error) {
	var s SunpouSettings
	fields := []*float64{&s.Sunpou1, &s.Sunpou2, &s.Sunpou3, &s.Sunpou4, &s.Sunpou5, &s.Dummy, &s.MaxLineWidth}
	for _, f := range fields {
		v, err := r.F64()
		if err != nil {
			return s, err
		}
		*f = v
	}
	return s, nil
}

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

import "encoding/json"

// entityEnvelope is the tagged-object wire shape used for entity
// serialization: {"type": <variant name>, "base": {...}, "value": {...}}.
type entityEnvelope struct {
	Type  string      `json:"type"`
	Base  EntityBase  `json:"base"`
	Value interface{} `json:"value"`
}

// MarshalJSON implements the tagged-object entity encoding.
func (e Entity) MarshalJSON() ([]byte, error) {
	env := entityEnvelope{Type: e.Type.String(), Base: e.Base}
	switch e.Type {
	case EntityLine:
		env.Value = e.Line
	case EntityArc:
		env.Value = e.Arc
	case EntityPoint:
		env.Value = e.Point
	case EntityText:
		env.Value = e.Text
	case EntitySolid:
		env.Value = e.Solid
	case EntityArcSolid:
		env.Value = e.ArcSolid
	case EntityBlock:
		env.Value = e.Block
	case EntityImage:
		env.Value = e.Image
	}
	return json.Marshal(env)
}

// MarshalJSON serializes an ImageFormat as its string name.
func (f ImageFormat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// MarshalJSON serializes EmbeddedImage.Data as a JSON array of byte
// values rather than the default base64 string encoding.
func (img EmbeddedImage) MarshalJSON() ([]byte, error) {
	data := make([]int, len(img.Data))
	for i, v := range img.Data {
		data[i] = int(v)
	}
	return json.Marshal(struct {
		Index    int32       `json:"index"`
		FileSize int32       `json:"file_size"`
		Data     []int       `json:"data"`
		Format   ImageFormat `json:"format"`
	}{
		Index:    img.Index,
		FileSize: img.FileSize,
		Data:     data,
		Format:   img.Format,
	})
}

// ToJSONString serializes a Document to JSON. Field names mirror the
// Document's attribute names; Entity is a tagged {"type","base","value"}
// object and EmbeddedImage.Data is a byte array.
func ToJSONString(doc *Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

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

// Parse decodes a full JWW byte buffer into an immutable Document. It is
// a pure function of data: two calls on the same input yield structurally
// equal Documents. On any error the returned Document is nil; there is
// no partial result.
func Parse(data []byte) (*Document, error) {
	r := NewReader(data)

	doc, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	layerGroups, err := decodeLayerTable(r)
	if err != nil {
		return nil, err
	}
	doc.LayerGroups = layerGroups

	stream, err := decodeEntities(r, doc.Version)
	if err != nil {
		return nil, err
	}
	doc.Entities = stream.entities
	doc.BlockDefs = stream.blockDefs
	doc.MetadataSettings = stream.metadata

	if doc.Version >= versionEmbeddedImage {
		images, err := decodeEmbeddedImages(r)
		if err != nil {
			return nil, err
		}
		doc.EmbeddedImages = images
	}

	if err := linkBlocks(doc.Entities, doc.BlockDefs); err != nil {
		return nil, err
	}

	return doc, nil
}

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

// decodeLayerTable reads the 16 layer groups, each holding a scale,
// state, and 16 named layers. Field order within a group
// is fixed by the file format: state, write_layer, scale, protect, the
// 16 layers, then the group name.
func decodeLayerTable(r *Reader) ([LayerGroups]LayerGroup, error) {
	var groups [LayerGroups]LayerGroup
	for i := 0; i < LayerGroups; i++ {
		g, err := decodeLayerGroup(r)
		if err != nil {
			return groups, err
		}
		groups[i] = g
	}
	return groups, nil
}

func decodeLayerGroup(r *Reader) (LayerGroup, error) {
	var g LayerGroup

	state, err := r.U8()
	if err != nil {
		return g, err
	}
	g.State = int(state)

	writeLayer, err := r.U8()
	if err != nil {
		return g, err
	}
	g.WriteLayer = int(writeLayer)

	if g.Scale, err = r.F64(); err != nil {
		return g, err
	}

	protect, err := r.U8()
	if err != nil {
		return g, err
	}
	g.Protect = protect != 0

	for i := 0; i < LayersPerGroup; i++ {
		layer, err := decodeLayer(r)
		if err != nil {
			return g, err
		}
		g.Layers[i] = layer
	}

	if g.Name, err = r.readSJISLen8(); err != nil {
		return g, err
	}
	return g, nil
}

func decodeLayer(r *Reader) (Layer, error) {
	var l Layer

	state, err := r.U8()
	if err != nil {
		return l, err
	}
	l.State = int(state)

	protect, err := r.U8()
	if err != nil {
		return l, err
	}
	l.Protect = protect != 0

	if l.Name, err = r.readSJISLen8(); err != nil {
		return l, err
	}
	return l, nil
}

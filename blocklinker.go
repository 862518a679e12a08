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

// linkBlocks resolves every Block insertion's def_number against the
// collected block definitions, marking each referenced definition. It
// performs no traversal beyond this single direct-reference check; a
// Block insertion nested inside a BlockDef is linked by the same rule
// as a top-level one.
func linkBlocks(entities []Entity, defs []*BlockDef) error {
	byNumber := make(map[int32]*BlockDef, len(defs))
	for _, d := range defs {
		byNumber[d.Number] = d
	}
	if err := linkBlocksIn(entities, byNumber); err != nil {
		return err
	}
	for _, d := range defs {
		if err := linkBlocksIn(d.Entities, byNumber); err != nil {
			return err
		}
	}
	return nil
}

func linkBlocksIn(entities []Entity, byNumber map[int32]*BlockDef) error {
	for i := range entities {
		e := &entities[i]
		if e.Type != EntityBlock {
			continue
		}
		def, ok := byNumber[e.Block.DefNumber]
		if !ok {
			return errMissingBlockDefinition(e.offset, e.Block.DefNumber)
		}
		def.IsReferenced = true
	}
	return nil
}

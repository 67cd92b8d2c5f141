// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package packstream

// StructTag identifies a PackStream structure by its one-byte signature.
// Bolt messages and Bolt's graph/temporal/spatial types are both encoded as
// structures; the signature is the only thing that tells them apart.
type StructTag byte

// Struct is a generic, tag-plus-fields PackStream structure. Decode
// produces one of these for every structure when no StructHydrator is
// given, and a hydrator can return one for signatures it doesn't
// recognize, so that servers newer than this client degrade gracefully
// instead of failing to decode at all.
type Struct struct {
	Tag    StructTag
	Fields []interface{}
}

// StructHydrator turns a decoded structure's signature and fields into
// whatever Go value the caller wants for it (a protocol message, a Node, a
// Date, ...). Returning a nil hydrator from the caller causes Decode to
// hand back a *Struct unconditionally, which is what the dehydrate-only
// Packer side effectively mirrors for encoding.
type StructHydrator func(tag StructTag, fields []interface{}) (interface{}, error)

// Dehydrate lets a caller teach the Packer how to encode a Go type it
// doesn't otherwise know about (graph/temporal/spatial values) by turning
// it into a Struct. Called only when Pack encounters a type with no
// built-in representation.
type Dehydrate func(x interface{}) (*Struct, error)

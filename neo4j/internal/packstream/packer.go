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

import (
	"encoding/binary"
	"io"
	"math"
	"reflect"
)

// Packer writes PackStream-encoded values to wr. Encoding always picks the
// smallest marker that fits a given value (tiny forms, then 8/16/32-bit
// size-prefixed forms).
type Packer struct {
	wr        io.Writer
	dehydrate Dehydrate
}

// NewPacker returns a Packer that writes to wr. dehydrate is consulted for
// any Go value without a built-in PackStream representation; a nil
// dehydrate rejects all such values with UnsupportedTypeError.
func NewPacker(wr io.Writer, dehydrate Dehydrate) *Packer {
	if dehydrate == nil {
		dehydrate = func(x interface{}) (*Struct, error) {
			return nil, &UnsupportedTypeError{t: reflect.TypeOf(x)}
		}
	}
	return &Packer{wr: wr, dehydrate: dehydrate}
}

// PackStruct is a convenience for callers that don't want to build a
// *Struct by hand.
func (p *Packer) PackStruct(tag StructTag, fields ...interface{}) error {
	return p.packStruct(&Struct{Tag: tag, Fields: fields})
}

func (p *Packer) write(buf []byte) error {
	_, err := p.wr.Write(buf)
	return err
}

func (p *Packer) packStruct(s *Struct) error {
	if len(s.Fields) > 0x0f {
		return &OverflowError{msg: "packstream: structure has more than 15 fields"}
	}
	if err := p.write([]byte{0xb0 + byte(len(s.Fields)), byte(s.Tag)}); err != nil {
		return err
	}
	for _, f := range s.Fields {
		if err := p.Pack(f); err != nil {
			return err
		}
	}
	return nil
}

func (p *Packer) packInt(i int64) error {
	switch {
	case -0x10 <= i && i < 0x80:
		return p.write([]byte{byte(i)})
	case -0x80 <= i && i < -0x10:
		return p.write([]byte{0xc8, byte(i)})
	case -0x8000 <= i && i < 0x8000:
		buf := [3]byte{0xc9}
		binary.BigEndian.PutUint16(buf[1:], uint16(i))
		return p.write(buf[:])
	case -0x80000000 <= i && i < 0x80000000:
		buf := [5]byte{0xca}
		binary.BigEndian.PutUint32(buf[1:], uint32(i))
		return p.write(buf[:])
	default:
		buf := [9]byte{0xcb}
		binary.BigEndian.PutUint64(buf[1:], uint64(i))
		return p.write(buf[:])
	}
}

func (p *Packer) packFloat(f float64) error {
	buf := [9]byte{0xc1}
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(f))
	return p.write(buf[:])
}

// packSizeHeader writes the smallest marker that can carry a size of l:
// the tiny form (shortBase+l, l<16), or one of the three size-prefixed
// long forms, erroring out once l overflows a 32-bit length field.
func (p *Packer) packSizeHeader(l int, shortBase, longBase byte) error {
	switch {
	case l < 0x10:
		return p.write([]byte{shortBase + byte(l)})
	case l < 0x100:
		return p.write([]byte{longBase, byte(l)})
	case l < 0x10000:
		buf := [3]byte{longBase + 1}
		binary.BigEndian.PutUint16(buf[1:], uint16(l))
		return p.write(buf[:])
	case l <= math.MaxUint32:
		buf := [5]byte{longBase + 2}
		binary.BigEndian.PutUint32(buf[1:], uint32(l))
		return p.write(buf[:])
	default:
		return &OverflowError{msg: "packstream: size exceeds 2^32-1"}
	}
}

func (p *Packer) packString(s string) error {
	if err := p.packSizeHeader(len(s), 0x80, 0xd0); err != nil {
		return err
	}
	return p.write([]byte(s))
}

func (p *Packer) packBytes(b []byte) error {
	l := len(b)
	var hdr []byte
	switch {
	case l < 0x100:
		hdr = []byte{0xcc, byte(l)}
	case l < 0x10000:
		hdr = make([]byte, 3)
		hdr[0] = 0xcd
		binary.BigEndian.PutUint16(hdr[1:], uint16(l))
	case l <= math.MaxUint32:
		hdr = make([]byte, 5)
		hdr[0] = 0xce
		binary.BigEndian.PutUint32(hdr[1:], uint32(l))
	default:
		return &OverflowError{msg: "packstream: byte array exceeds 2^32-1 bytes"}
	}
	if err := p.write(hdr); err != nil {
		return err
	}
	return p.write(b)
}

func (p *Packer) packBool(b bool) error {
	if b {
		return p.write([]byte{0xc3})
	}
	return p.write([]byte{0xc2})
}

func (p *Packer) packNil() error {
	return p.write([]byte{0xc0})
}

func (p *Packer) packSlice(x interface{}) error {
	switch v := x.(type) {
	case []byte:
		return p.packBytes(v)
	case []interface{}:
		if err := p.packSizeHeader(len(v), 0x90, 0xd4); err != nil {
			return err
		}
		for _, item := range v {
			if err := p.Pack(item); err != nil {
				return err
			}
		}
		return nil
	case []string:
		if err := p.packSizeHeader(len(v), 0x90, 0xd4); err != nil {
			return err
		}
		for _, item := range v {
			if err := p.packString(item); err != nil {
				return err
			}
		}
		return nil
	default:
		// Slower path for every other slice/array type (numeric slices,
		// named element types, ...): reflect element-by-element.
		rv := reflect.ValueOf(x)
		n := rv.Len()
		if err := p.packSizeHeader(n, 0x90, 0xd4); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := p.Pack(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
}

func (p *Packer) packMap(x interface{}) error {
	if v, ok := x.(map[string]interface{}); ok {
		if err := p.packSizeHeader(len(v), 0xa0, 0xd8); err != nil {
			return err
		}
		for k, fv := range v {
			if err := p.packString(k); err != nil {
				return err
			}
			if err := p.Pack(fv); err != nil {
				return err
			}
		}
		return nil
	}
	// Slower path for every other map[string]T.
	rv := reflect.ValueOf(x)
	n := rv.Len()
	if err := p.packSizeHeader(n, 0xa0, 0xd8); err != nil {
		return err
	}
	for _, key := range rv.MapKeys() {
		if key.Kind() != reflect.String {
			return &UnsupportedTypeError{t: reflect.TypeOf(x)}
		}
		if err := p.packString(key.String()); err != nil {
			return err
		}
		if err := p.Pack(rv.MapIndex(key).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Packer) tryDehydrate(x interface{}) error {
	s, err := p.dehydrate(x)
	if err != nil {
		return err
	}
	if s == nil {
		return p.packNil()
	}
	return p.packStruct(s)
}

// Pack writes x in its smallest valid PackStream encoding. Supported Go
// shapes are: nil, bool, any integer kind, any float kind, string, []byte,
// any other slice/array, map[string]T, *Struct, and anything the Packer's
// Dehydrate hook recognizes (graph/temporal/spatial values).
func (p *Packer) Pack(x interface{}) error {
	if x == nil {
		return p.packNil()
	}
	if s, ok := x.(*Struct); ok {
		return p.packStruct(s)
	}

	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Bool:
		return p.packBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return p.packInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if err := overflowInt(u); err != nil {
			return err
		}
		return p.packInt(int64(u))
	case reflect.Float32, reflect.Float64:
		return p.packFloat(v.Float())
	case reflect.String:
		return p.packString(v.String())
	case reflect.Slice, reflect.Array:
		return p.packSlice(x)
	case reflect.Map:
		return p.packMap(x)
	case reflect.Ptr:
		if v.IsNil() {
			return p.packNil()
		}
		return p.tryDehydrate(x)
	case reflect.Struct:
		return p.tryDehydrate(x)
	default:
		return &UnsupportedTypeError{t: reflect.TypeOf(x)}
	}
}

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
	"fmt"
	"math"
	"unicode/utf8"
)

// Decode reads exactly one PackStream-encoded value from the front of buf.
// On success it returns the decoded value and the unconsumed remainder of
// buf (rest may alias buf). If buf holds a valid prefix of an encoding but
// not the whole thing, it returns ErrNeedMore and a nil rest: callers read
// more bytes from the transport, append them, and retry the whole call;
// nothing in buf is consumed on a NeedMore result. If buf can never be
// extended into a valid encoding, it returns an *InvalidFormatError.
//
// hydrate is consulted for every decoded structure and its result becomes
// the value; a nil hydrate makes every structure a generic *Struct.
func Decode(buf []byte, hydrate StructHydrator) (value interface{}, rest []byte, err error) {
	d := &decoder{buf: buf, hydrate: hydrate}
	v, err := d.value()
	if err != nil {
		return nil, nil, err
	}
	return v, buf[d.pos:], nil
}

type decoder struct {
	buf     []byte
	pos     int
	hydrate StructHydrator
}

func (d *decoder) need(n int) bool {
	return len(d.buf)-d.pos >= n
}

func (d *decoder) take(n int) ([]byte, error) {
	if !d.need(n) {
		return nil, ErrNeedMore
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) byte() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) uint8() (uint8, error) {
	b, err := d.byte()
	return uint8(b), err
}

func (d *decoder) uint16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) uint32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) string(n int) (string, error) {
	b, err := d.take(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &InvalidFormatError{msg: "string is not valid UTF-8"}
	}
	return string(b), nil
}

func (d *decoder) list(n int) ([]interface{}, error) {
	items := make([]interface{}, n)
	for i := range items {
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}

func (d *decoder) dict(n int) (map[string]interface{}, error) {
	m := make(map[string]interface{}, n)
	for i := 0; i < n; i++ {
		kx, err := d.value()
		if err != nil {
			return nil, err
		}
		key, ok := kx.(string)
		if !ok {
			return nil, &InvalidFormatError{msg: fmt.Sprintf("map key is not a string: %T", kx)}
		}
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		// Last-write-wins on duplicate keys.
		m[key] = v
	}
	return m, nil
}

func (d *decoder) structure(numFields int) (interface{}, error) {
	if numFields < 0 || numFields > 0x0f {
		return nil, &InvalidFormatError{msg: fmt.Sprintf("invalid structure size: %d", numFields)}
	}
	return d.structureFields(numFields)
}

// structureFields reads a structure's signature byte and fields, shared
// by the tiny-structure form (0xB0-0xBF) and the 8/16-bit size-prefixed
// forms (0xDC/0xDD), which carry no such 15-field limit.
func (d *decoder) structureFields(numFields int) (interface{}, error) {
	tag, err := d.byte()
	if err != nil {
		return nil, err
	}
	fields, err := d.list(numFields)
	if err != nil {
		return nil, err
	}
	if d.hydrate != nil {
		v, err := d.hydrate(StructTag(tag), fields)
		if err != nil {
			return nil, &InvalidFormatError{msg: fmt.Sprintf("structure tag %#x: %s", tag, err)}
		}
		return v, nil
	}
	return &Struct{Tag: StructTag(tag), Fields: fields}, nil
}

func (d *decoder) value() (interface{}, error) {
	marker, err := d.byte()
	if err != nil {
		return nil, err
	}

	switch {
	case marker < 0x80:
		return int64(marker), nil
	case marker >= 0xf0:
		return int64(marker) - 0x100, nil
	case marker >= 0x80 && marker < 0x90:
		return d.string(int(marker - 0x80))
	case marker >= 0x90 && marker < 0xa0:
		return d.list(int(marker - 0x90))
	case marker >= 0xa0 && marker < 0xb0:
		return d.dict(int(marker - 0xa0))
	case marker >= 0xb0 && marker < 0xc0:
		return d.structure(int(marker - 0xb0))
	}

	switch marker {
	case 0xc0:
		return nil, nil
	case 0xc1:
		b, err := d.take(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	case 0xc2:
		return false, nil
	case 0xc3:
		return true, nil
	case 0xc8:
		b, err := d.byte()
		if err != nil {
			return nil, err
		}
		return int64(int8(b)), nil
	case 0xc9:
		b, err := d.uint16()
		if err != nil {
			return nil, err
		}
		return int64(int16(b)), nil
	case 0xca:
		b, err := d.uint32()
		if err != nil {
			return nil, err
		}
		return int64(int32(b)), nil
	case 0xcb:
		b, err := d.take(8)
		if err != nil {
			return nil, err
		}
		return int64(binary.BigEndian.Uint64(b)), nil
	case 0xcc:
		n, err := d.uint8()
		if err != nil {
			return nil, err
		}
		return d.take(int(n))
	case 0xcd:
		n, err := d.uint16()
		if err != nil {
			return nil, err
		}
		return d.take(int(n))
	case 0xce:
		n, err := d.uint32()
		if err != nil {
			return nil, err
		}
		return d.take(int(n))
	case 0xd0:
		n, err := d.uint8()
		if err != nil {
			return nil, err
		}
		return d.string(int(n))
	case 0xd1:
		n, err := d.uint16()
		if err != nil {
			return nil, err
		}
		return d.string(int(n))
	case 0xd2:
		n, err := d.uint32()
		if err != nil {
			return nil, err
		}
		return d.string(int(n))
	case 0xd4:
		n, err := d.uint8()
		if err != nil {
			return nil, err
		}
		return d.list(int(n))
	case 0xd5:
		n, err := d.uint16()
		if err != nil {
			return nil, err
		}
		return d.list(int(n))
	case 0xd6:
		n, err := d.uint32()
		if err != nil {
			return nil, err
		}
		return d.list(int(n))
	case 0xd8:
		n, err := d.uint8()
		if err != nil {
			return nil, err
		}
		return d.dict(int(n))
	case 0xd9:
		n, err := d.uint16()
		if err != nil {
			return nil, err
		}
		return d.dict(int(n))
	case 0xda:
		n, err := d.uint32()
		if err != nil {
			return nil, err
		}
		return d.dict(int(n))
	case 0xdc:
		n, err := d.uint8()
		if err != nil {
			return nil, err
		}
		return d.structureFields(int(n))
	case 0xdd:
		n, err := d.uint16()
		if err != nil {
			return nil, err
		}
		return d.structureFields(int(n))
	}

	return nil, &InvalidFormatError{msg: fmt.Sprintf("unknown marker byte %#x", marker)}
}

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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packOne(t *testing.T, x interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	p := NewPacker(&buf, nil)
	require.NoError(t, p.Pack(x))
	return buf.Bytes()
}

func TestPackPrimitives(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want []byte
	}{
		{"tiny positive int", int64(42), []byte{0x2a}},
		{"tiny negative int", int64(-5), []byte{0xfb}},
		{"int8", int64(-100), []byte{0xc8, 0x9c}},
		{"int16", int64(-30000), []byte{0xc9, 0x8a, 0xd0}},
		{"bool true", true, []byte{0xc3}},
		{"bool false", false, []byte{0xc2}},
		{"nil", nil, []byte{0xc0}},
		{"tiny string", "abc", []byte{0x83, 'a', 'b', 'c'}},
		{"empty string", "", []byte{0x80}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, packOne(t, c.in))
		})
	}
}

func TestPackStringSizeBoundaries(t *testing.T) {
	mk := func(n int) string { return strings.Repeat("a", n) }

	got := packOne(t, mk(15))
	assert.Equal(t, byte(0x8f), got[0])

	got = packOne(t, mk(16))
	assert.Equal(t, []byte{0xd0, 16}, got[:2])

	got = packOne(t, mk(256))
	assert.Equal(t, byte(0xd1), got[0])
}

func TestPackDecodeRoundTrip(t *testing.T) {
	values := []interface{}{
		int64(0),
		int64(-17),
		int64(1 << 40),
		3.14,
		"hello, world",
		true,
		false,
		nil,
		[]interface{}{int64(1), "two", 3.0},
		map[string]interface{}{"a": int64(1), "b": "two"},
		[]byte{0x01, 0x02, 0x03},
	}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, NewPacker(&buf, nil).Pack(v))

		got, rest, err := Decode(buf.Bytes(), nil)
		require.NoError(t, err)
		assert.Empty(t, rest)
		assert.Equal(t, v, got)
	}
}

func TestPackStructRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	p := NewPacker(&buf, nil)
	require.NoError(t, p.PackStruct(StructTag(0x01), "a", int64(2)))

	got, rest, err := Decode(buf.Bytes(), nil)
	require.NoError(t, err)
	assert.Empty(t, rest)

	s, ok := got.(*Struct)
	require.True(t, ok)
	assert.Equal(t, StructTag(0x01), s.Tag)
	assert.Equal(t, []interface{}{"a", int64(2)}, s.Fields)
}

func TestDecodeNeedMoreDoesNotConsume(t *testing.T) {
	full := packOne(t, "a string long enough to need a size byte")
	for cut := 0; cut < len(full); cut++ {
		_, rest, err := Decode(full[:cut], nil)
		assert.ErrorIs(t, err, ErrNeedMore, "cut=%d", cut)
		assert.Nil(t, rest)
	}
	got, rest, err := Decode(full, nil)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "a string long enough to need a size byte", got)
}

func TestDecodeLeavesRemainderForNextValue(t *testing.T) {
	var buf bytes.Buffer
	p := NewPacker(&buf, nil)
	require.NoError(t, p.Pack(int64(1)))
	require.NoError(t, p.Pack(int64(2)))

	first, rest, err := Decode(buf.Bytes(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, rest, err := Decode(rest, nil)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, int64(2), second)
}

func TestDecodeRejectsNonStringMapKey(t *testing.T) {
	// A map with a single integer key: 0xa1 0x01 0x01 (key=1, value=1).
	_, _, err := Decode([]byte{0xa1, 0x01, 0x01}, nil)
	require.Error(t, err)
	var fmtErr *InvalidFormatError
	assert.ErrorAs(t, err, &fmtErr)
}

func TestDecodeUnknownMarker(t *testing.T) {
	_, _, err := Decode([]byte{0xc7}, nil)
	require.Error(t, err)
	var fmtErr *InvalidFormatError
	assert.ErrorAs(t, err, &fmtErr)
}

func TestPackUnsupportedTypeWithoutDehydrate(t *testing.T) {
	var buf bytes.Buffer
	p := NewPacker(&buf, nil)
	err := p.Pack(struct{ X int }{X: 1})
	require.Error(t, err)
	var typeErr *UnsupportedTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestPackDehydrateHookIsConsulted(t *testing.T) {
	type custom struct{ V int64 }
	dehydrate := func(x interface{}) (*Struct, error) {
		c := x.(custom)
		return &Struct{Tag: StructTag(0x99), Fields: []interface{}{c.V}}, nil
	}
	var buf bytes.Buffer
	p := NewPacker(&buf, dehydrate)
	require.NoError(t, p.Pack(custom{V: 7}))

	got, _, err := Decode(buf.Bytes(), nil)
	require.NoError(t, err)
	s := got.(*Struct)
	assert.Equal(t, StructTag(0x99), s.Tag)
	assert.Equal(t, []interface{}{int64(7)}, s.Fields)
}

func TestHydrateHookDispatchesByTag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPacker(&buf, nil).PackStruct(StructTag(0x7f), "boom"))

	hydrate := func(tag StructTag, fields []interface{}) (interface{}, error) {
		if tag == StructTag(0x7f) {
			return fields[0], nil
		}
		return &Struct{Tag: tag, Fields: fields}, nil
	}
	got, _, err := Decode(buf.Bytes(), hydrate)
	require.NoError(t, err)
	assert.Equal(t, "boom", got)
}

func TestPackListAndMapSizeHeaderGrowth(t *testing.T) {
	small := make([]interface{}, 15)
	for i := range small {
		small[i] = int64(i)
	}
	got := packOne(t, small)
	assert.Equal(t, byte(0x9f), got[0])

	big := make([]interface{}, 16)
	for i := range big {
		big[i] = int64(i)
	}
	got = packOne(t, big)
	assert.Equal(t, []byte{0xd4, 16}, got[:2])
}

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
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// ErrNeedMore is returned by Decode when buf holds a valid prefix of an
// encoded value but not the whole thing. Callers should read more bytes
// from the transport and retry with the extended buffer; ErrNeedMore never
// wraps another error and is safe to compare with errors.Is.
var ErrNeedMore = errors.New("packstream: need more data to decode value")

// OverflowError is returned when encoding a value would require a size
// field wider than PackStream supports (lists/maps/strings/bytes longer
// than 2^32-1, or structures with more than 15 fields).
type OverflowError struct {
	msg string
}

func (e *OverflowError) Error() string {
	return e.msg
}

// UnsupportedTypeError is returned when Pack is given a Go value with no
// PackStream representation and no dehydration hook claims it.
type UnsupportedTypeError struct {
	t reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("packstream: packing of type %q is not supported", e.t.String())
}

// InvalidFormatError is returned by Decode when buf contains bytes that can
// never form a valid PackStream encoding: an unknown marker, a malformed
// struct size, a map key that isn't a string, or a string that isn't valid
// UTF-8.
type InvalidFormatError struct {
	msg string
}

func (e *InvalidFormatError) Error() string {
	return "packstream: " + e.msg
}

func overflowInt(i uint64) error {
	if i > 1<<63-1 {
		return &OverflowError{msg: "packstream: uint64 value does not fit into a signed int64"}
	}
	return nil
}

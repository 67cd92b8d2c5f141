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

package dbtype

import "time"

// Date is a calendar date with no time-of-day or zone component
// (signature 0x44). The wire form is a signed day count since the Unix
// epoch; the Go representation keeps a time.Time at midnight UTC purely
// as a convenient calendar calculator, not as a mandated encoding.
type Date time.Time

func (d Date) Time() time.Time { return time.Time(d) }

// LocalTime is a time-of-day with no date or zone component (signature
// 0x74). The wire form is nanoseconds since midnight.
type LocalTime time.Time

func (t LocalTime) Time() time.Time { return time.Time(t) }

// Time is a time-of-day with a fixed UTC offset, no date component
// (signature 0x54). The wire form is (nanoseconds since midnight, offset
// seconds east of UTC).
type Time time.Time

func (t Time) Time() time.Time { return time.Time(t) }

// LocalDateTime is a date and time-of-day with no zone component
// (signature 0x64). The wire form is (epoch seconds interpreted as if UTC,
// nanosecond component).
type LocalDateTime time.Time

func (t LocalDateTime) Time() time.Time { return time.Time(t) }

// DateTime is a date and time-of-day carrying either a fixed UTC offset
// (signature 0x49/legacy 0x46) or a named time zone (signature 0x69). Both
// variants round-trip through the standard time.Time, distinguished by its
// Location: a zone named "Offset" was hydrated from the offset variant and
// must dehydrate back to it.
type DateTime time.Time

func (t DateTime) Time() time.Time { return time.Time(t) }

// Duration is a Bolt DURATION (signature 0x45): months, days, seconds and
// nanoseconds, each stored and transmitted independently and signed. It is
// not backed by time.Duration because month/day components have no fixed
// length and the range (hundreds of years) can exceed what a single
// int64-nanoseconds duration can hold.
type Duration struct {
	Months  int64
	Days    int64
	Seconds int64
	Nanos   int64
}

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

// Default spatial reference identifiers.
const (
	SRIDGeographic2D = 4326
	SRIDGeographic3D = 4979
)

// Point2D is a Cartesian or geographic point (signature 0x58).
type Point2D struct {
	SpatialRefId uint32
	X, Y         float64
}

// Point3D is a Cartesian or geographic point with elevation (signature
// 0x59).
type Point3D struct {
	SpatialRefId uint32
	X, Y, Z      float64
}

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

package neo4j

// AuthToken is the auth map merged into HELLO or sent on LOGON. It is
// passed through to the wire mostly verbatim, which is why it is a
// plain map rather than a closed struct: servers accept auth schemes
// this driver doesn't need to know the shape of.
type AuthToken map[string]interface{}

// BasicAuth builds the {scheme:"basic", principal, credentials} token
// for a {user, pass} login.
func BasicAuth(username, password string) AuthToken {
	return AuthToken{
		"scheme":      "basic",
		"principal":   username,
		"credentials": password,
	}
}

// NoAuth is the empty token: no auth fields are merged into HELLO.
func NoAuth() AuthToken {
	return AuthToken{}
}

// Package basicauth checks HTTP Basic credentials against a single expected
// user and password.
package basicauth

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

// Prefix is the literal scheme prefix of a Basic Authorization header.
const Prefix = "Basic "

// Credential is the expected Basic token, computed once and immutable.
type Credential struct {
	token string
}

// NewCredential encodes user:password into the token requests must present.
func NewCredential(user, password string) Credential {
	return Credential{token: Token(user, password)}
}

// Token returns the base64 encoding of user:password.
func Token(user, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
}

// Encode returns a complete Authorization header value for user and password.
func Encode(user, password string) string {
	return Prefix + Token(user, password)
}

// Challenge returns the WWW-Authenticate value for realm.
func Challenge(realm string) string {
	return Prefix + `realm="` + realm + `"`
}

// Match reports whether the Authorization header value carries exactly the
// expected token. The scheme prefix is case-sensitive; whitespace around the
// token is ignored.
func (c Credential) Match(authorization string) bool {
	token, ok := strings.CutPrefix(authorization, Prefix)
	if !ok {
		return false
	}
	token = strings.TrimSpace(token)
	return subtle.ConstantTimeCompare([]byte(token), []byte(c.token)) == 1
}

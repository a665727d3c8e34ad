package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// FuzzInspect exercises the token inspector with arbitrary token strings.
// Goal: no panics; invalid inputs must be rejected with errors.
func FuzzInspect(f *testing.F) {
	inspector, err := NewInspector(Config{Leeway: 30 * time.Second})
	if err != nil {
		f.Fatal(err)
	}

	// Generate a valid token as seed.
	validToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Permissions: []string{"user:read"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "fuzz",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("fuzz-secret"))
	if err != nil {
		f.Fatal(err)
	}

	f.Add(validToken)
	f.Add("")
	f.Add("a.b.c")
	f.Add("eyJhbGciOiJIUzI1NiJ9.e30.sig")

	f.Fuzz(func(t *testing.T, tokenStr string) {
		claims, err := inspector.Inspect(tokenStr)
		if err == nil && claims == nil {
			t.Fatal("nil claims without error")
		}
		if err != nil && claims != nil {
			t.Fatal("claims returned alongside error")
		}
	})
}

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	// authenticated sessions always win
	key := Resolve(&Session{UserId: "uid-1", Email: "jane@acme.com"}, "Other@Acme.com")
	assert.Equal(t, "uid-1", key)

	// guests get the normalized submitted email
	key = Resolve(nil, "  Jane@Acme.COM ")
	assert.Equal(t, "jane@acme.com", key)

	// empty session falls through to the email
	key = Resolve(&Session{}, "jane@acme.com")
	assert.Equal(t, "jane@acme.com", key)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a@b.co", Normalize(" A@B.Co "))
	assert.Equal(t, "", Normalize("   "))
}

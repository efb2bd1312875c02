package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeCarts(t *testing.T) {
	server := []CartItem{{ProductId: 1, Quantity: 2}}
	local := []CartItem{{ProductId: 9, Quantity: 5}}

	// non-empty server cart wins wholesale
	assert.Equal(t, server, MergeCarts(server, local))

	// empty server cart adopts the local one
	assert.Equal(t, local, MergeCarts(nil, local))

	assert.Empty(t, MergeCarts(nil, nil))
}

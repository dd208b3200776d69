package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("alice"))
	assert.True(t, IsValidUsername("alice_99"))
	assert.False(t, IsValidUsername("al"))
	assert.False(t, IsValidUsername("alice!"))
	assert.False(t, IsValidUsername(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("hunter2password"))
	assert.False(t, IsValidPassword("short1"))
	assert.False(t, IsValidPassword("allletters"))
	assert.False(t, IsValidPassword("1234567890"))
}

func TestIsValidSymbol(t *testing.T) {
	assert.True(t, IsValidSymbol("AAPL"))
	assert.True(t, IsValidSymbol("BRK.B"))
	assert.False(t, IsValidSymbol("aapl"))
	assert.False(t, IsValidSymbol(""))
	assert.False(t, IsValidSymbol("1AAPL"))
	assert.False(t, IsValidSymbol("TOOLONGSYMBOL"))
}

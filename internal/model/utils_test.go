package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 10))
	assert.Equal(t, "abc", TruncateString("abc", 3))
	assert.Equal(t, "ab", TruncateString("abc", 2))
	assert.Equal(t, strings.Repeat("x", 250), TruncateString(strings.Repeat("x", 400), 250))
	assert.Equal(t, "", TruncateString("", 5))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#FF7F00", Color{R: 0xFF, G: 0x7F}.Hex())
	assert.Equal(t, "#808080", Color{R: 128, G: 128, B: 128}.String())
	assert.Equal(t, "#7FFF00", Color{R: 0x7F, G: 0xFF}.Hex())
}

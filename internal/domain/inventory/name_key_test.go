package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

func TestNameKey_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, inventory.NameKey("Laptop Pro 15"), inventory.NameKey("  LAPTOP pro 15 "))
	assert.Equal(t, "desk lamp", inventory.NameKey("Desk Lamp"))
}

func TestNameKey_NormalizaUnicode(t *testing.T) {
	// "é" precompuesta vs "e" + acento combinante
	assert.Equal(t, inventory.NameKey("Cafe\u0301"), inventory.NameKey("CAF\u00c9"))
}

func TestNameKey_NombresDistintosNoColisionan(t *testing.T) {
	assert.NotEqual(t, inventory.NameKey("Desk Lamp"), inventory.NameKey("Desk Lamp 2"))
}

package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NameKey calcula la clave de unicidad de un nombre de producto (servicio de dominio).
// Normaliza a NFC y aplica case folding Unicode, de modo que "Laptop", "LAPTOP" y "laptop"
// colisionan igual en SQLite y en PostgreSQL.
func NameKey(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// Package consumption agrega consumos de materiales por remisión, calcula
// baselines por receta y compara costos entre períodos.
package consumption

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// Classifier decide si un material es cementante. Está detrás de interfaz
// para poder sustituir la heurística de tokens por una clasificación por
// catálogo sin tocar el agregador.
type Classifier interface {
	EsCemento(m entity.Material) bool
}

// TokenClassifier clasifica por subcadena: un material es cementante si su
// categoría, nombre o código contiene alguno de los tokens configurados.
// La comparación es sin tildes y sin distinción de mayúsculas, así "Cementó",
// "cemento" y "CEMENTO" clasifican igual.
type TokenClassifier struct {
	tokens []string
}

var _ Classifier = (*TokenClassifier)(nil)

// NewTokenClassifier construye el clasificador; los tokens se normalizan una
// sola vez aquí.
func NewTokenClassifier(tokens []string) *TokenClassifier {
	folded := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if f := fold(tok); f != "" {
			folded = append(folded, f)
		}
	}
	return &TokenClassifier{tokens: folded}
}

// EsCemento aplica la heurística sobre categoría, nombre y código.
func (c *TokenClassifier) EsCemento(m entity.Material) bool {
	campos := [...]string{m.Category, m.Name, m.Code}
	for _, campo := range campos {
		f := fold(campo)
		for _, tok := range c.tokens {
			if strings.Contains(f, tok) {
				return true
			}
		}
	}
	return false
}

// fold quita marcas diacríticas (NFD + remover Mn + NFC) y pasa a mayúsculas.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}

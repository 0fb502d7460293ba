package consumption_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcconcretos/concreto-api/internal/domain/consumption"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

func TestTokenClassifier_CasosBasicos(t *testing.T) {
	c := consumption.NewTokenClassifier([]string{"CEMENTO", "CEM", "CPC"})

	casos := []struct {
		nombre   string
		material entity.Material
		esperado bool
	}{
		{"categoria exacta", entity.Material{Category: "CEMENTO"}, true},
		{"categoria minusculas", entity.Material{Category: "cemento"}, true},
		{"nombre con tilde", entity.Material{Name: "Cementó Gris"}, true},
		{"codigo con token", entity.Material{Code: "CEM-01"}, true},
		{"nombre comercial CPC", entity.Material{Name: "CPC 40"}, true},
		{"agregado no cementante", entity.Material{Category: "ARENA", Name: "Arena de río", Code: "AGR-02"}, false},
		{"material vacio", entity.Material{}, false},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			assert.Equal(t, tc.esperado, c.EsCemento(tc.material))
		})
	}
}

func TestTokenClassifier_TokensConTilde(t *testing.T) {
	// Los tokens también se normalizan: "CEMENTÓ" configura igual que "CEMENTO".
	c := consumption.NewTokenClassifier([]string{"cementó"})
	assert.True(t, c.EsCemento(entity.Material{Category: "CEMENTO"}))
}

package entity

// Material representa una materia prima de la planta (cemento, agregados,
// aditivos, agua). Datos de referencia, administrados fuera del motor.
type Material struct {
	ID       string
	Name     string // nombre comercial, ej. "CPC 40"
	Code     string // código corto, ej. "CEM-01"
	Category string // categoría libre: CEMENTO, ARENA, GRAVA, ADITIVO, AGUA...
	Unit     string // unidad de medida: kg, L, m³
}

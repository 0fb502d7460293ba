package entity

// Recipe diseño de mezcla de concreto.
type Recipe struct {
	ID         string
	Code       string // ej. "R-210-3/4"
	StrengthFC int    // resistencia f'c en kg/cm²
}

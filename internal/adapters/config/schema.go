package config

import "go.trai.ch/arcstr"

// Configfile represents the structure of the arcstr.yaml configuration file.
// Pointer fields distinguish absent keys, which keep their defaults, from explicit values.
type Configfile struct {
	Stress *StressDTO `yaml:"stress"`
	Lex    *LexDTO    `yaml:"lex"`
}

// StressDTO represents the stress section.
type StressDTO struct {
	Goroutines *int          `yaml:"goroutines"`
	Iterations *int          `yaml:"iterations"`
	Payload    arcstr.ArcStr `yaml:"payload"`
}

// LexDTO represents the lex section.
type LexDTO struct {
	Format         *string `yaml:"format"`
	KeepWhitespace *bool   `yaml:"keep_whitespace"`
}

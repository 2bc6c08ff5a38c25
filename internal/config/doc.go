// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// The symbol list is fixed for the process lifetime: its order defines the
// row order on the display.
package config

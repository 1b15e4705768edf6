package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the application logger. Development mode gets the
// human-readable console encoder; everything else logs structured JSON.
func NewLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

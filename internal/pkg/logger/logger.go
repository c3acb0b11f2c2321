package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a zap logger for the given environment with a service name
// attached to every entry. Development gets a human-readable console encoder,
// anything else gets production JSON.
func NewNamed(env, service string) (*zap.Logger, error) {
	var log *zap.Logger
	var err error

	if env == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return log.Named(service), nil
}

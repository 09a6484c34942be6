// Package logging provides centralized logging using the zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

// Init initializes the package-level logger. Debug selects the
// development encoder.
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		zapLogger, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	baseLogger = zapLogger
	log = zapLogger.Sugar()
	return nil
}

// Sugared returns the sugared logger, initializing a production
// fallback if Init was never called.
func Sugared() *zap.SugaredLogger {
	if log == nil {
		baseLogger, _ = zap.NewProduction(zap.AddCallerSkip(1))
		log = baseLogger.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

func Debugf(template string, args ...any) {
	Sugared().Debugf(template, args...)
}

func Infof(template string, args ...any) {
	Sugared().Infof(template, args...)
}

func Infow(msg string, keysAndValues ...any) {
	Sugared().Infow(msg, keysAndValues...)
}

func Warnf(template string, args ...any) {
	Sugared().Warnf(template, args...)
}

func Errorf(template string, args ...any) {
	Sugared().Errorf(template, args...)
}

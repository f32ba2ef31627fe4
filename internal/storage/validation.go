package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kartwerks/kartpick/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateEngine(engine *model.Engine) error {
	if engine == nil {
		return fmt.Errorf("%w: engine", ErrNilParameter)
	}
	return engine.Validate()
}

func validateMotor(motor *model.Motor) error {
	if motor == nil {
		return fmt.Errorf("%w: motor", ErrNilParameter)
	}
	return motor.Validate()
}

func validatePart(part *model.Part) error {
	if part == nil {
		return fmt.Errorf("%w: part", ErrNilParameter)
	}
	return part.Validate()
}

func validateRule(rule *model.CompatibilityRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	return rule.Validate()
}

func validateBuild(build *model.Build) error {
	if build == nil {
		return fmt.Errorf("%w: build", ErrNilParameter)
	}
	return build.Validate()
}

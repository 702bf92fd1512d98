package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for log levels supported by zerolog
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "trace", "debug", "info", "warn", "error", "fatal", "panic", "":
			return true
		}
		return false
	})

	// Register custom validation for log output formats
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "console", "json", "":
			return true
		}
		return false
	})

	// Register custom validation for the WeChat push method variants
	_ = validate.RegisterValidation("wechatmethod", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case WeChatMethodPushPlus, WeChatMethodServerChan, WeChatMethodWork:
			return true
		}
		return false
	})

	// Register custom validation for floor plan codes (single letter)
	_ = validate.RegisterValidation("plancode", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) != 1 {
			return false
		}
		c := code[0]
		return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	})

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			first := validationErrors[0]
			return fmt.Errorf("config validation failed on field '%s' (rule '%s', value '%v')",
				first.Namespace(), first.Tag(), first.Value())
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

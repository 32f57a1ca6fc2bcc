package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

var logLevelNames = map[string]bool{
	"debug": true, "info": true, "warning": true, "warn": true,
	"error": true, "critical": true, "fatal": true,
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	v := validator.New()
	// nomes conhecidos ou qualquer inteiro
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		if logLevelNames[level] {
			return true
		}
		_, err := strconv.Atoi(level)
		return err == nil
	})
	return &ConfigValidator{validate: v}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *Options) error {
	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("field '%s' failed on '%s' (value: %v)", e.Namespace(), e.Tag(), e.Value()))
			}
			return fmt.Errorf("config: invalid options:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("config: invalid options: %w", err)
	}

	// 2. Validação Semântica
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *Options) error {
	// DryRun só valida permissões; não faz sentido capturar log
	if cfg.LambdaInvocationType == "DryRun" && cfg.LambdaLogType == "Tail" {
		return fmt.Errorf("lambda_log_type 'Tail' is not supported with invocation type 'DryRun'")
	}

	// Event (assíncrona) não devolve log
	if cfg.LambdaInvocationType == "Event" && cfg.LambdaLogType == "Tail" {
		return fmt.Errorf("lambda_log_type 'Tail' is only supported with invocation type 'RequestResponse'")
	}

	lists := map[string][]string{
		"write_required_params":  cfg.WriteRequiredParams,
		"get_required_params":    cfg.GetRequiredParams,
		"delete_required_params": cfg.DeleteRequiredParams,
	}
	for name, list := range lists {
		seen := make(map[string]bool, len(list))
		for _, attr := range list {
			if seen[attr] {
				return fmt.Errorf("duplicated attribute '%s' in %s", attr, name)
			}
			seen[attr] = true
		}
	}

	return nil
}

package awshelper

import (
	"fmt"

	"github.com/raywall/aws-helper/pkg/config"
	"github.com/raywall/aws-helper/pkg/logger"
	"github.com/raywall/aws-helper/pkg/metrics"
	"github.com/raywall/aws-helper/pkg/responder"
	"github.com/raywall/aws-helper/pkg/rules"
	"github.com/raywall/aws-helper/pkg/validation"
	"github.com/rs/zerolog"
)

// Módulos usados no campo "module" dos logs.
const (
	moduleHelpers = "helpers"
	moduleIndex   = "index"
)

// Setup é a configuração de uma instância. Além das opções declarativas
// (que podem vir de YAML/env), aceita validadores e callbacks em código.
type Setup struct {
	config.Options

	// Validadores em código têm precedência sobre as regras CEL das Options.
	WriteValidation  validation.Validator
	GetValidation    validation.Validator
	DeleteValidation validation.Validator

	// Completion substitui o callback de conclusão padrão.
	Completion responder.Callback

	// Metrics recebe contagem e latência por operação (opcional).
	Metrics metrics.Provider

	// Logger substitui o logger criado a partir de LogLevel/LogFormat.
	Logger *zerolog.Logger
}

// prepared é o resultado da validação do Setup, compartilhado pelos construtores.
type prepared struct {
	opts       config.Options
	completion responder.Callback
	log        zerolog.Logger
	index      zerolog.Logger
	hooks      validation.Hooks
	metrics    *metrics.Recorder
}

func prepare(s Setup) (*prepared, error) {
	opts := s.Options
	opts.ApplyDefaults()

	if err := config.NewValidator().Validate(&opts); err != nil {
		return nil, fmt.Errorf("awshelper: %w", err)
	}

	helpersLog, indexLog, err := loggers(s.Logger, opts)
	if err != nil {
		return nil, fmt.Errorf("awshelper: %w", err)
	}

	hooks, err := buildHooks(s, opts)
	if err != nil {
		return nil, err
	}

	return &prepared{
		opts:       opts,
		completion: s.Completion,
		log:        helpersLog,
		index:      indexLog,
		hooks:      hooks,
		metrics:    metrics.NewRecorder(s.Metrics, helpersLog, "table:"+opts.TableName),
	}, nil
}

func loggers(custom *zerolog.Logger, opts config.Options) (zerolog.Logger, zerolog.Logger, error) {
	if custom != nil {
		return custom.With().Str("module", moduleHelpers).Logger(),
			custom.With().Str("module", moduleIndex).Logger(),
			nil
	}

	helpersLog, err := logger.Configure(opts.Logging(moduleHelpers))
	if err != nil {
		return zerolog.Nop(), zerolog.Nop(), err
	}
	indexLog, err := logger.Configure(opts.Logging(moduleIndex))
	if err != nil {
		return zerolog.Nop(), zerolog.Nop(), err
	}
	return helpersLog, indexLog, nil
}

// buildHooks monta, por operação: atributos obrigatórios -> validador
// (função em código, ou regra CEL quando não há função).
func buildHooks(s Setup, opts config.Options) (validation.Hooks, error) {
	var hooks validation.Hooks

	rm, err := rules.NewRuleManager()
	if err != nil {
		return hooks, fmt.Errorf("awshelper: rules: %w", err)
	}

	build := func(op validation.Operation, fn validation.Validator, expr string, required []string) (validation.Validator, error) {
		primary := fn
		if primary == nil {
			rule, err := rm.ItemValidator(op, expr)
			if err != nil {
				return nil, fmt.Errorf("awshelper: %s_data_validation: %w", op, err)
			}
			primary = rule
		}
		return validation.Chain(validation.RequiredAttributes(required...), primary), nil
	}

	if hooks.Write, err = build(validation.OpWrite, s.WriteValidation, opts.WriteDataValidation, opts.WriteRequiredParams); err != nil {
		return hooks, err
	}
	if hooks.Get, err = build(validation.OpGet, s.GetValidation, opts.GetDataValidation, opts.GetRequiredParams); err != nil {
		return hooks, err
	}
	if hooks.Delete, err = build(validation.OpDelete, s.DeleteValidation, opts.DeleteDataValidation, opts.DeleteRequiredParams); err != nil {
		return hooks, err
	}
	return hooks, nil
}

// Package rules compila expressões CEL usadas como validadores declarativos
// (ex: `write_data_validation: "has(item.user_id) && has(item.device_id)"`).
package rules

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/cel-go/cel"
	"github.com/raywall/aws-helper/dyndb"
	"github.com/raywall/aws-helper/pkg/validation"
)

// RuleManager gerencia a compilação e avaliação de expressões CEL.
type RuleManager struct {
	env *cel.Env
}

// NewRuleManager inicializa o ambiente CEL com as variáveis expostas às regras.
func NewRuleManager() (*RuleManager, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),  // O item (ou chave) convertido para tipos Go
		cel.Variable("op", cel.StringType), // write, get ou delete
	)
	if err != nil {
		return nil, fmt.Errorf("rules: CEL init failed: %w", err)
	}

	return &RuleManager{env: env}, nil
}

// CompileProgram compila a expressão e garante que o resultado seja booleano.
func (rm *RuleManager) CompileProgram(expr string) (cel.Program, error) {
	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("rules: compile '%s': %w", expr, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("rules: expression '%s' must return bool, got %s", expr, ast.OutputType())
	}

	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rules: program '%s': %w", expr, err)
	}
	return prg, nil
}

// EvaluateBool avalia um programa já compilado.
func (rm *RuleManager) EvaluateBool(prg cel.Program, vars map[string]any) (bool, error) {
	out, _, err := prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("rules: eval: %w", err)
	}

	if val, ok := out.Value().(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("rules: result is not boolean (%T)", out.Value())
}

// ItemValidator transforma uma expressão em validation.Validator. A expressão
// é compilada aqui, uma única vez; expressão vazia devolve validador nil.
func (rm *RuleManager) ItemValidator(op validation.Operation, expr string) (validation.Validator, error) {
	if expr == "" {
		return nil, nil
	}

	prg, err := rm.CompileProgram(expr)
	if err != nil {
		return nil, err
	}

	return func(_ context.Context, item dyndb.Item) validation.Result {
		plain, err := dyndb.UnmarshalItem(item)
		if err != nil {
			return validation.Fail(http.StatusBadRequest, err.Error())
		}

		ok, err := rm.EvaluateBool(prg, map[string]any{
			"item": plain,
			"op":   string(op),
		})
		if err != nil {
			return validation.Fail(http.StatusBadRequest, err.Error())
		}
		if !ok {
			return validation.Fail(http.StatusBadRequest, fmt.Sprintf("%s rule not satisfied: %s", op, expr))
		}
		return validation.Pass()
	}, nil
}

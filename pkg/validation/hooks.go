// Package validation executa os validadores opcionais que rodam antes de
// cada operação de escrita, leitura e remoção.
package validation

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/raywall/aws-helper/dyndb"
)

// Operation identifica a operação que está sendo validada.
type Operation string

const (
	OpWrite  Operation = "write"
	OpGet    Operation = "get"
	OpDelete Operation = "delete"
)

// Result é o retorno de um validador. Qualquer Status != 200 aborta a operação.
type Result struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Pass é o resultado de aprovação.
func Pass() Result { return Result{Status: http.StatusOK} }

// Fail rejeita a operação com o status e a mensagem informados.
func Fail(status int, message string) Result {
	return Result{Status: status, Message: message}
}

// OK indica aprovação.
func (r Result) OK() bool { return r.Status == http.StatusOK }

// Validator aprova ou rejeita o item antes da chamada ao provedor. Pode
// bloquear (ex: consulta externa); o runner aguarda o resultado.
type Validator func(ctx context.Context, item dyndb.Item) Result

// Error é o erro devolvido quando um validador rejeita o item.
type Error struct {
	Operation Operation
	Status    int
	Message   string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatusCode expõe o status do validador para o envelope.
func (e *Error) HTTPStatusCode() int { return e.Status }

// Hooks agrupa os validadores por operação.
type Hooks struct {
	Write  Validator
	Get    Validator
	Delete Validator
}

// For devolve o validador registrado para a operação (ou nil).
func (h Hooks) For(op Operation) Validator {
	switch op {
	case OpWrite:
		return h.Write
	case OpGet:
		return h.Get
	case OpDelete:
		return h.Delete
	}
	return nil
}

// Run executa o validador da operação. Devolve nil quando não há validador ou
// quando o resultado é 200; caso contrário devolve *Error.
func (h Hooks) Run(ctx context.Context, op Operation, item dyndb.Item) error {
	return Run(ctx, op, h.For(op), item)
}

// Run executa um validador avulso.
func Run(ctx context.Context, op Operation, v Validator, item dyndb.Item) error {
	if v == nil {
		return nil
	}

	res := v(ctx, item)
	if res.OK() {
		return nil
	}

	msg := strings.TrimSpace(res.Message)
	if msg == "" {
		msg = fmt.Sprintf("%s validation failed", op)
	}
	return &Error{Operation: op, Status: res.Status, Message: msg}
}

// Chain compõe validadores: o primeiro resultado diferente de 200 vence.
// Validadores nil são ignorados; sem nenhum validador devolve nil.
func Chain(vs ...Validator) Validator {
	active := make([]Validator, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			active = append(active, v)
		}
	}

	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}

	return func(ctx context.Context, item dyndb.Item) Result {
		for _, v := range active {
			if res := v(ctx, item); !res.OK() {
				return res
			}
		}
		return Pass()
	}
}

// RequiredAttributes rejeita com 400 itens que não tenham todos os atributos.
func RequiredAttributes(names ...string) Validator {
	if len(names) == 0 {
		return nil
	}

	return func(_ context.Context, item dyndb.Item) Result {
		var missing []string
		for _, name := range names {
			if _, ok := item[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) == 0 {
			return Pass()
		}

		sort.Strings(missing)
		return Fail(http.StatusBadRequest, "missing required attributes: "+strings.Join(missing, ", "))
	}
}

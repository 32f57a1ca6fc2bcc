// Package responder monta o envelope uniforme {data, status, message} devolvido
// por todas as operações do helper, tanto para sucesso quanto para erro.
package responder

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// Códigos de erro do SDK que representam requisições malformadas.
var badRequestCodes = map[string]struct{}{
	"MissingRequiredParameter": {},
	"MultipleValidationErrors": {},
	"ValidationException":      {},
}

// Response é o envelope devolvido para o callback de conclusão.
type Response struct {
	Data    any    `json:"data"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// OK indica se a operação foi concluída com sucesso.
func (r Response) OK() bool { return r.Status == http.StatusOK }

// Callback recebe o resultado bruto de uma operação e produz o envelope.
type Callback func(err error, data any) Response

// StatusCoder é implementado por erros que carregam um status HTTP explícito
// (ex: *awshttp.ResponseError do SDK, validation.Error, dyndb.ErrNotFound).
type StatusCoder interface {
	HTTPStatusCode() int
}

// Builder cria envelopes e registra cada um no logger configurado.
type Builder struct {
	logger zerolog.Logger
}

// NewBuilder cria um Builder. Um logger zero-value descarta os registros.
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build cria um envelope: a mensagem é "<frase do status>. <detalhe>".
func (b *Builder) Build(data any, status int, detail string) Response {
	resp := Build(data, status, detail)
	b.logger.Debug().
		Int("status", resp.Status).
		Str("message", resp.Message).
		Msg("Response created")
	return resp
}

// BuildError converte um erro em envelope (data sempre nil).
func (b *Builder) BuildError(err error) Response {
	return b.Build(nil, StatusFromError(err), ErrorMessage(err))
}

// FromResult é o callback de conclusão padrão.
func (b *Builder) FromResult(err error, data any) Response {
	if err != nil {
		resp := b.BuildError(err)
		b.logger.Error().Int("status", resp.Status).Str("error", resp.Message).Msg("There was an error")
		return resp
	}
	b.logger.Info().Msg("Executed successfully.")
	return b.Build(data, http.StatusOK, "")
}

// Build é a versão sem log de Builder.Build.
func Build(data any, status int, detail string) Response {
	return Response{
		Data:    data,
		Status:  status,
		Message: message(status, detail),
	}
}

// BuildError é a versão sem log de Builder.BuildError.
func BuildError(err error) Response {
	return Build(nil, StatusFromError(err), ErrorMessage(err))
}

// BuildFailure trata valores de falha que não são erros (strings, mapas, etc).
func BuildFailure(v any) Response {
	if err, ok := v.(error); ok {
		return BuildError(err)
	}
	return Build(nil, http.StatusInternalServerError, Describe(v))
}

func message(status int, detail string) string {
	phrase := http.StatusText(status)
	detail = strings.TrimSpace(detail)

	switch {
	case phrase != "" && detail != "":
		return phrase + ". " + detail
	case phrase != "":
		return phrase
	case detail != "":
		return detail
	default:
		return fmt.Sprintf("status %d", status)
	}
}

// StatusFromError resolve o status do erro, nesta ordem: status HTTP explícito,
// validação de parâmetros do SDK (400), código de validação da API (400) e,
// por fim, 500.
func StatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var sc StatusCoder
	if errors.As(err, &sc) && sc.HTTPStatusCode() > 0 {
		return sc.HTTPStatusCode()
	}

	// Validação local do SDK: a requisição nem chega a ser enviada
	var paramsErr smithy.InvalidParamsError
	if errors.As(err, &paramsErr) {
		return http.StatusBadRequest
	}
	var paramsErrPtr *smithy.InvalidParamsError
	if errors.As(err, &paramsErrPtr) {
		return http.StatusBadRequest
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := badRequestCodes[apiErr.ErrorCode()]; ok {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// ErrorMessage devolve "<code> : <message>" para erros de API do SDK,
// apenas o código quando não há mensagem, ou err.Error() nos demais casos.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return fmt.Sprintf("%s : %s", apiErr.ErrorCode(), msg)
		}
		return apiErr.ErrorCode()
	}
	return err.Error()
}

// Describe converte um valor de falha arbitrário em texto.
func Describe(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case error:
		return ErrorMessage(x)
	case fmt.Stringer:
		return x.String()
	}

	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

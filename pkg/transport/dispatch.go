package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	awshelper "github.com/raywall/aws-helper"
	"github.com/raywall/aws-helper/dyndb"
	"github.com/raywall/aws-helper/pkg/responder"
	"github.com/rs/zerolog"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
	ContextKeyCorrID    = "correlation_id"
)

// Operações expostas pelos transportes.
const (
	OpWrite  = "write"
	OpGet    = "get"
	OpDelete = "delete"
	OpInvoke = "invoke"
)

// ItemRequest é o corpo aceito por PUT /items, POST /items/query e DELETE /items.
// Item e Key usam JSON comum; a conversão para AttributeValue é feita aqui.
type ItemRequest struct {
	Item       map[string]any `json:"item,omitempty"`
	Key        map[string]any `json:"key,omitempty"`
	Projection string         `json:"projection,omitempty"`
	Attributes []string       `json:"attributes,omitempty"`
}

// InvocationView é a forma JSON de um lambda.InvokeOutput.
type InvocationView struct {
	StatusCode      int32           `json:"status_code"`
	FunctionError   string          `json:"function_error,omitempty"`
	LogResult       string          `json:"log_result,omitempty"`
	ExecutedVersion string          `json:"executed_version,omitempty"`
	Payload         json.RawMessage `json:"payload,omitempty"`
}

// Dispatcher traduz requisições dos transportes em chamadas ao Helper.
type Dispatcher struct {
	helper  awshelper.Helper
	logger  zerolog.Logger
	timeout time.Duration
}

// NewDispatcher cria o Dispatcher. timeout <= 0 não limita as chamadas.
func NewDispatcher(h awshelper.Helper, logger zerolog.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{helper: h, logger: logger, timeout: timeout}
}

// Dispatch executa a operação e devolve o envelope pronto para serializar.
// function só é usado por OpInvoke.
func (d *Dispatcher) Dispatch(ctx context.Context, op, function string, body []byte) responder.Response {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if op == OpInvoke {
		var payload any
		if len(strings.TrimSpace(string(body))) > 0 {
			if !json.Valid(body) {
				return responder.Build(nil, http.StatusBadRequest, "invalid JSON body")
			}
			payload = json.RawMessage(body)
		}
		return present(d.helper.Invoke(ctx, function, payload))
	}

	var req ItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return responder.Build(nil, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
	}

	switch op {
	case OpWrite:
		item, err := dyndb.MarshalItem(req.Item)
		if err != nil || len(item) == 0 {
			return responder.Build(nil, http.StatusBadRequest, "body must contain a non-empty 'item'")
		}
		return present(d.helper.Write(ctx, item))

	case OpGet, OpDelete:
		key, err := dyndb.MarshalItem(req.Key)
		if err != nil || len(key) == 0 {
			return responder.Build(nil, http.StatusBadRequest, "body must contain a non-empty 'key'")
		}
		if op == OpDelete {
			return present(d.helper.Delete(ctx, key))
		}

		var opts []awshelper.CallOption
		if len(req.Attributes) > 0 {
			opts = append(opts, awshelper.WithProjectionNames(req.Attributes...))
		} else if req.Projection != "" {
			opts = append(opts, awshelper.WithProjection(req.Projection))
		}
		return present(d.helper.Get(ctx, key, opts...))
	}

	return responder.Build(nil, http.StatusNotFound, fmt.Sprintf("unknown operation %q", op))
}

// present converte Data para uma forma JSON legível: itens viram objetos
// comuns e InvokeOutput vira InvocationView.
func present(resp responder.Response) responder.Response {
	switch data := resp.Data.(type) {
	case dyndb.Item:
		if plain, err := dyndb.UnmarshalItem(data); err == nil {
			resp.Data = plain
		}
	case *lambda.InvokeOutput:
		view := InvocationView{StatusCode: data.StatusCode}
		if data.FunctionError != nil {
			view.FunctionError = *data.FunctionError
		}
		if data.LogResult != nil {
			view.LogResult = *data.LogResult
		}
		if data.ExecutedVersion != nil {
			view.ExecutedVersion = *data.ExecutedVersion
		}
		if json.Valid(data.Payload) {
			view.Payload = data.Payload
		} else if len(data.Payload) > 0 {
			quoted, _ := json.Marshal(string(data.Payload))
			view.Payload = quoted
		}
		resp.Data = view
	}
	return resp
}

// wireStatus devolve um status aceito pelo protocolo HTTP; fora de 100..999 vira 500.
func wireStatus(status int) int {
	if status < 100 || status > 999 {
		return http.StatusInternalServerError
	}
	return status
}

func encode(resp responder.Response) []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		b, _ = json.Marshal(responder.Build(nil, http.StatusInternalServerError, err.Error()))
	}
	return b
}

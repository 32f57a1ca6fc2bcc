package transport

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/raywall/aws-helper/pkg/responder"
)

// LambdaHandler adapta eventos do API Gateway para o Dispatcher.
type LambdaHandler struct {
	d *Dispatcher
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(d *Dispatcher) *LambdaHandler {
	return &LambdaHandler{d: d}
}

// Handle processa a requisição Lambda com as mesmas rotas do servidor HTTP.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	corrID := header(req.Headers, HeaderCorrelationID)
	if corrID == "" {
		corrID = uuid.NewString()
	}

	logger := h.d.logger.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

	var resp responder.Response
	op, function, ok := matchRoute(req.HTTPMethod, req.Path, req.PathParameters)
	if ok {
		body := req.Body
		if req.IsBase64Encoded {
			body = decodeBase64(body)
		}
		resp = h.d.Dispatch(ctx, op, function, []byte(body))
	} else {
		resp = notFound()
	}

	logger.Info().
		Str("method", req.HTTPMethod).
		Str("path", req.Path).
		Int("status", resp.Status).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda request completed")

	return events.APIGatewayProxyResponse{
		StatusCode: wireStatus(resp.Status),
		Headers: map[string]string{
			"Content-Type":      "application/json",
			HeaderCorrelationID: corrID,
			HeaderLatency:       fmt.Sprintf("%d", time.Since(start).Milliseconds()),
		},
		Body: string(encode(resp)),
	}, nil
}

// matchRoute resolve a operação a partir do método e do caminho.
func matchRoute(method, path string, params map[string]string) (op, function string, ok bool) {
	path = "/" + strings.Trim(path, "/")
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")

	switch {
	case path == "/items" && method == http.MethodPut:
		return OpWrite, "", true
	case path == "/items" && method == http.MethodDelete:
		return OpDelete, "", true
	case path == "/items/query" && method == http.MethodPost:
		return OpGet, "", true
	case len(parts) == 3 && parts[0] == "functions" && parts[2] == "invocations" && method == http.MethodPost:
		if name := params["name"]; name != "" {
			return OpInvoke, name, true
		}
		return OpInvoke, parts[1], true
	}
	return "", "", false
}

// header busca o header ignorando maiúsculas/minúsculas.
func header(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func notFound() responder.Response {
	return responder.Build(nil, http.StatusNotFound, "route not found")
}

func badBody(err error) responder.Response {
	return responder.Build(nil, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
}

func decodeBase64(body string) string {
	b, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return body
	}
	return string(b)
}

package awshelper

import (
	"github.com/raywall/aws-helper/dyndb"
	"github.com/raywall/aws-helper/pkg/responder"
)

// CallOption ajusta uma única chamada.
type CallOption func(*callOptions)

type callOptions struct {
	completion responder.Callback
	projection dyndb.Projection
}

// WithCompletion substitui o callback de conclusão apenas nesta chamada.
func WithCompletion(cb responder.Callback) CallOption {
	return func(o *callOptions) { o.completion = cb }
}

// WithProjection define a projection expression (texto cru) de uma leitura.
func WithProjection(expr string) CallOption {
	return func(o *callOptions) {
		if expr != "" {
			o.projection = dyndb.RawProjection(expr)
		}
	}
}

// WithProjectionNames projeta os atributos informados, montando a expressão
// com nomes substituídos (#0, #1...) para evitar palavras reservadas.
func WithProjectionNames(names ...string) CallOption {
	return func(o *callOptions) {
		if len(names) > 0 {
			o.projection = dyndb.ProjectionOf(names...)
		}
	}
}

func (c *Client) resolve(opts []CallOption) callOptions {
	co := callOptions{completion: c.completion}
	for _, opt := range opts {
		opt(&co)
	}
	if co.completion == nil {
		co.completion = c.builder.FromResult
	}
	return co
}

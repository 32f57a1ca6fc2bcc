package awshelper

import (
	"context"

	"github.com/raywall/aws-helper/dyndb"
	"github.com/raywall/aws-helper/pkg/responder"
)

// async executa fn numa goroutine e entrega exatamente um envelope.
func async(fn func() responder.Response) <-chan responder.Response {
	ch := make(chan responder.Response, 1)
	go func() {
		defer close(ch)
		ch <- fn()
	}()
	return ch
}

// WriteAsync é a versão não bloqueante de Write.
func (c *Client) WriteAsync(ctx context.Context, item dyndb.Item, opts ...CallOption) <-chan responder.Response {
	return async(func() responder.Response { return c.Write(ctx, item, opts...) })
}

// GetAsync é a versão não bloqueante de Get.
func (c *Client) GetAsync(ctx context.Context, key dyndb.Item, opts ...CallOption) <-chan responder.Response {
	return async(func() responder.Response { return c.Get(ctx, key, opts...) })
}

// DeleteAsync é a versão não bloqueante de Delete.
func (c *Client) DeleteAsync(ctx context.Context, key dyndb.Item, opts ...CallOption) <-chan responder.Response {
	return async(func() responder.Response { return c.Delete(ctx, key, opts...) })
}

// InvokeAsync é a versão não bloqueante de Invoke.
func (c *Client) InvokeAsync(ctx context.Context, functionName string, payload any, opts ...CallOption) <-chan responder.Response {
	return async(func() responder.Response { return c.Invoke(ctx, functionName, payload, opts...) })
}

package awshelper

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/raywall/aws-helper/dyndb"
	"github.com/raywall/aws-helper/pkg/awsconf"
	"github.com/raywall/aws-helper/pkg/config"
	"github.com/raywall/aws-helper/pkg/invoker"
	"github.com/raywall/aws-helper/pkg/metrics"
	"github.com/raywall/aws-helper/pkg/responder"
	"github.com/raywall/aws-helper/pkg/validation"
	"github.com/rs/zerolog"
)

// Helper é o contrato público do helper. Operações nunca devolvem error:
// toda falha vira um envelope com status != 200.
type Helper interface {
	Write(ctx context.Context, item dyndb.Item, opts ...CallOption) responder.Response
	Get(ctx context.Context, key dyndb.Item, opts ...CallOption) responder.Response
	Delete(ctx context.Context, key dyndb.Item, opts ...CallOption) responder.Response
	Invoke(ctx context.Context, functionName string, payload any, opts ...CallOption) responder.Response

	WriteAsync(ctx context.Context, item dyndb.Item, opts ...CallOption) <-chan responder.Response
	GetAsync(ctx context.Context, key dyndb.Item, opts ...CallOption) <-chan responder.Response
	DeleteAsync(ctx context.Context, key dyndb.Item, opts ...CallOption) <-chan responder.Response
	InvokeAsync(ctx context.Context, functionName string, payload any, opts ...CallOption) <-chan responder.Response
}

// Client implementa Helper sobre um cliente DynamoDB e um cliente Lambda.
// É seguro para uso concorrente.
type Client struct {
	opts       config.Options
	table      *dyndb.Table
	invoker    *invoker.Invoker
	hooks      validation.Hooks
	builder    *responder.Builder
	completion responder.Callback
	metrics    *metrics.Recorder
	log        zerolog.Logger
}

var _ Helper = (*Client)(nil)

// New cria um Client carregando a configuração AWS da instância: uma para o
// DynamoDB (Region/CredentialsProfile) e outra para a Lambda
// (LambdaRegion/LambdaCredentialsProfile).
func New(ctx context.Context, s Setup) (*Client, error) {
	p, err := prepare(s)
	if err != nil {
		return nil, err
	}

	loader := awsconf.NewLoader(nil, p.index)

	dynCfg, err := loader.Load(ctx, awsconf.Settings{Region: p.opts.Region, Profile: p.opts.CredentialsProfile})
	if err != nil {
		return nil, err
	}
	lamCfg, err := loader.Load(ctx, awsconf.Settings{Region: p.opts.LambdaRegion, Profile: p.opts.LambdaProfile()})
	if err != nil {
		return nil, err
	}

	if p.opts.APIVersion != "" || p.opts.LambdaAPIVersion != "" {
		p.index.Debug().
			Str("api_version", p.opts.APIVersion).
			Str("lambda_api_version", p.opts.LambdaAPIVersion).
			Msg("API versions are pinned by the SDK service modules")
	}

	return newClient(p, dynamodb.NewFromConfig(dynCfg), lambda.NewFromConfig(lamCfg)), nil
}

// NewWithClients cria um Client com clientes já construídos (ou mocks).
func NewWithClients(s Setup, dynamoClient dyndb.DynamoDBClient, lambdaClient invoker.LambdaAPI) (*Client, error) {
	p, err := prepare(s)
	if err != nil {
		return nil, err
	}
	return newClient(p, dynamoClient, lambdaClient), nil
}

func newClient(p *prepared, dynamoClient dyndb.DynamoDBClient, lambdaClient invoker.LambdaAPI) *Client {
	c := &Client{
		opts: p.opts,
		table: dyndb.NewTable(dynamoClient, dyndb.TableConfig{
			TableName:      p.opts.TableName,
			ConsistentRead: p.opts.ConsistentRead,
		}),
		invoker:    invoker.New(lambdaClient, p.opts.LambdaInvocationType, p.opts.LambdaLogType),
		hooks:      p.hooks,
		builder:    responder.NewBuilder(p.log),
		completion: p.completion,
		metrics:    p.metrics,
		log:        p.log,
	}

	p.index.Debug().
		Str("table", p.opts.TableName).
		Str("region", p.opts.Region).
		Str("lambda_region", p.opts.LambdaRegion).
		Msg("aws helper created")
	return c
}

// Options devolve as opções efetivas (com defaults aplicados).
func (c *Client) Options() config.Options { return c.opts }

// Write grava o item na tabela configurada (PutItem).
// Em caso de sucesso o callback recebe data nil.
func (c *Client) Write(ctx context.Context, item dyndb.Item, opts ...CallOption) responder.Response {
	co := c.resolve(opts)
	return c.dispatch(ctx, validation.OpWrite, item, co, func() (any, error) {
		return nil, c.table.Put(ctx, item)
	})
}

// Get lê o item pela chave (GetItem). Em caso de sucesso data é o item.
func (c *Client) Get(ctx context.Context, key dyndb.Item, opts ...CallOption) responder.Response {
	co := c.resolve(opts)
	return c.dispatch(ctx, validation.OpGet, key, co, func() (any, error) {
		item, err := c.table.Get(ctx, key, co.projection)
		if err != nil {
			return nil, err
		}
		return item, nil
	})
}

// Delete remove o item pela chave (DeleteItem).
func (c *Client) Delete(ctx context.Context, key dyndb.Item, opts ...CallOption) responder.Response {
	co := c.resolve(opts)
	return c.dispatch(ctx, validation.OpDelete, key, co, func() (any, error) {
		return nil, c.table.Delete(ctx, key)
	})
}

// Invoke chama a função Lambda com o payload serializado em JSON. O
// InvokeOutput é repassado sem alterações (inclusive FunctionError).
func (c *Client) Invoke(ctx context.Context, functionName string, payload any, opts ...CallOption) responder.Response {
	co := c.resolve(opts)
	start := time.Now()

	c.log.Debug().Str("function", functionName).Msg("invoking lambda")

	var resp responder.Response
	out, err := c.invoker.Invoke(ctx, functionName, payload)
	if err != nil {
		resp = co.completion(err, nil)
	} else {
		resp = co.completion(nil, out)
	}

	c.metrics.Since("invoke", resp.Status, start)
	return resp
}

// dispatch executa o fluxo comum: validador -> chamada ao SDK -> callback.
func (c *Client) dispatch(ctx context.Context, op validation.Operation, item dyndb.Item, co callOptions, call func() (any, error)) responder.Response {
	start := time.Now()

	if err := c.hooks.Run(ctx, op, item); err != nil {
		c.log.Warn().Str("operation", string(op)).Err(err).Msg("validation failed")
		resp := co.completion(err, nil)
		c.metrics.Since(string(op), resp.Status, start)
		return resp
	}

	data, err := call()
	var resp responder.Response
	if err != nil {
		resp = co.completion(err, nil)
	} else {
		resp = co.completion(nil, data)
	}

	c.metrics.Since(string(op), resp.Status, start)
	return resp
}

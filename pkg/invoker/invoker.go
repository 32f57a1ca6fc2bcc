// Package invoker monta e executa invocações de funções Lambda.
package invoker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// LambdaAPI é a fatia do cliente Lambda usada pelo helper (permite Mocking).
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// PayloadError indica que o payload não pôde ser serializado.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invoker: payload serialization failed: %v", e.Err)
}
func (e *PayloadError) Unwrap() error       { return e.Err }
func (e *PayloadError) HTTPStatusCode() int { return 400 }

// Invoker guarda o cliente e os modos de invocação/log padrão.
type Invoker struct {
	client         LambdaAPI
	invocationType types.InvocationType
	logType        types.LogType
}

// New cria um Invoker. Valores vazios usam RequestResponse e Tail.
func New(client LambdaAPI, invocationType, logType string) *Invoker {
	it := types.InvocationType(invocationType)
	if it == "" {
		it = types.InvocationTypeRequestResponse
	}
	lt := types.LogType(logType)
	if lt == "" {
		lt = types.LogTypeTail
	}

	return &Invoker{
		client:         client,
		invocationType: it,
		logType:        lt,
	}
}

// Request monta o InvokeInput com o payload serializado em JSON.
func (i *Invoker) Request(functionName string, payload any) (*lambda.InvokeInput, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &PayloadError{Err: err}
	}

	return &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: i.invocationType,
		LogType:        i.logType,
		Payload:        body,
	}, nil
}

// Invoke executa exatamente uma invocação. A saída do SDK (incluindo
// FunctionError e LogResult) é devolvida sem desserialização.
func (i *Invoker) Invoke(ctx context.Context, functionName string, payload any) (*lambda.InvokeOutput, error) {
	in, err := i.Request(functionName, payload)
	if err != nil {
		return nil, err
	}

	out, err := i.client.Invoke(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("invoker: invoke %s failed: %w", functionName, err)
	}
	return out, nil
}

// MockLambdaClient é um mock de LambdaAPI com campo de função.
type MockLambdaClient struct {
	InvokeFn func(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)

	mu     sync.Mutex
	Inputs []*lambda.InvokeInput
}

func (m *MockLambdaClient) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	m.mu.Lock()
	m.Inputs = append(m.Inputs, params)
	m.mu.Unlock()

	if m.InvokeFn != nil {
		return m.InvokeFn(ctx, params, optFns...)
	}
	return &lambda.InvokeOutput{StatusCode: 200}, nil
}

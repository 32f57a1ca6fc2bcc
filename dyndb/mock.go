// dyndb/mock.go
package dyndb

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// MockDynamoClient é um mock para a interface DynamoDBClient de baixo nível.
//
// Ele expõe campos de função (`GetItemFn`, `PutItemFn`, etc.) para simular o
// comportamento do DynamoDB e registra as requisições recebidas, o que permite
// verificar quantas chamadas chegaram ao "provedor".
type MockDynamoClient struct {
	GetItemFn    func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItemFn    func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItemFn func(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)

	mu      sync.Mutex
	Gets    []*dynamodb.GetItemInput
	Puts    []*dynamodb.PutItemInput
	Deletes []*dynamodb.DeleteItemInput
}

func (m *MockDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	m.Gets = append(m.Gets, params)
	m.mu.Unlock()

	if m.GetItemFn != nil {
		return m.GetItemFn(ctx, params, optFns...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *MockDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	m.Puts = append(m.Puts, params)
	m.mu.Unlock()

	if m.PutItemFn != nil {
		return m.PutItemFn(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *MockDynamoClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	m.Deletes = append(m.Deletes, params)
	m.mu.Unlock()

	if m.DeleteItemFn != nil {
		return m.DeleteItemFn(ctx, params, optFns...)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

// Calls devolve o total de requisições recebidas pelo mock.
func (m *MockDynamoClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Gets) + len(m.Puts) + len(m.Deletes)
}

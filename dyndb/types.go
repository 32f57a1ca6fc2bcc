// dyndb/types.go
package dyndb

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrNotFound – erro padrão quando o item não existe
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string       { return "dyndb: item not found" }
func (notFoundError) HTTPStatusCode() int { return http.StatusNotFound }

// RequestError indica entrada do chamador recusada antes de chegar ao DynamoDB.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string       { return e.Err.Error() }
func (e *RequestError) Unwrap() error       { return e.Err }
func (e *RequestError) HTTPStatusCode() int { return http.StatusBadRequest }

// DynamoDBClient interface para abstrair o cliente DynamoDB
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Item é uma linha (ou chave) no formato de atributos tipados do SDK.
type Item = map[string]types.AttributeValue

// TableConfig: configuração da tabela
type TableConfig struct {
	TableName      string `env:"DYNAMODB_TABLE_NAME"`
	ConsistentRead bool   `env:"DYNAMODB_CONSISTENT_READ"` // opcional
}

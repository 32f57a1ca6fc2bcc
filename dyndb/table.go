// dyndb/table.go
package dyndb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Table executa operações de item numa única tabela.
type Table struct {
	client DynamoDBClient
	cfg    TableConfig
}

// NewTable cria uma Table reutilizável. O cliente é somente leitura após a
// construção e pode ser compartilhado entre goroutines.
func NewTable(client DynamoDBClient, cfg TableConfig) *Table {
	return &Table{
		client: client,
		cfg:    cfg,
	}
}

// Name devolve o nome da tabela configurada.
func (t *Table) Name() string { return t.cfg.TableName }

// Projection restringe os atributos devolvidos pelo GetItem.
type Projection interface {
	apply(in *dynamodb.GetItemInput) error
}

type rawProjection string

func (p rawProjection) apply(in *dynamodb.GetItemInput) error {
	if p != "" {
		in.ProjectionExpression = aws.String(string(p))
	}
	return nil
}

// RawProjection usa uma ProjectionExpression já escrita (ex: "jwt, login_time").
func RawProjection(expr string) Projection { return rawProjection(expr) }

type namesProjection []string

func (p namesProjection) apply(in *dynamodb.GetItemInput) error {
	if len(p) == 0 {
		return nil
	}

	proj := expression.NamesList(expression.Name(p[0]))
	for _, name := range p[1:] {
		proj = proj.AddNames(expression.Name(name))
	}

	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return &RequestError{Err: fmt.Errorf("dyndb: build projection failed: %w", err)}
	}
	in.ProjectionExpression = expr.Projection()
	in.ExpressionAttributeNames = expr.Names()
	return nil
}

// ProjectionOf monta a projeção a partir de nomes de atributos, usando
// placeholders (#0, #1...) para evitar conflitos com palavras reservadas.
func ProjectionOf(names ...string) Projection { return namesProjection(names) }

// PutRequest monta o PutItemInput {TableName, Item}.
func (t *Table) PutRequest(item Item) *dynamodb.PutItemInput {
	return &dynamodb.PutItemInput{
		TableName: aws.String(t.cfg.TableName),
		Item:      item,
	}
}

// GetRequest monta o GetItemInput {TableName, Key, projeção opcional}.
func (t *Table) GetRequest(key Item, projection Projection) (*dynamodb.GetItemInput, error) {
	in := &dynamodb.GetItemInput{
		TableName: aws.String(t.cfg.TableName),
		Key:       key,
	}
	if t.cfg.ConsistentRead {
		in.ConsistentRead = aws.Bool(true)
	}
	if projection != nil {
		if err := projection.apply(in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// DeleteRequest monta o DeleteItemInput {TableName, Key}.
func (t *Table) DeleteRequest(key Item) *dynamodb.DeleteItemInput {
	return &dynamodb.DeleteItemInput{
		TableName: aws.String(t.cfg.TableName),
		Key:       key,
	}
}

// Put grava o item (upsert)
func (t *Table) Put(ctx context.Context, item Item) error {
	_, err := t.client.PutItem(ctx, t.PutRequest(item))
	if err != nil {
		return fmt.Errorf("dyndb: put failed: %w", err)
	}
	return nil
}

// Get busca o item pela chave primária. Devolve ErrNotFound quando a tabela
// não tem item para a chave.
func (t *Table) Get(ctx context.Context, key Item, projection Projection) (Item, error) {
	in, err := t.GetRequest(key, projection)
	if err != nil {
		return nil, err
	}

	out, err := t.client.GetItem(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("dyndb: get failed: %w", err)
	}
	if out == nil || out.Item == nil {
		return nil, ErrNotFound
	}
	return out.Item, nil
}

// Delete remove o item pela chave primária.
func (t *Table) Delete(ctx context.Context, key Item) error {
	_, err := t.client.DeleteItem(ctx, t.DeleteRequest(key))
	if err != nil {
		return fmt.Errorf("dyndb: delete failed: %w", err)
	}
	return nil
}

// MarshalItem converte structs/mapas Go (tags `dynamodbav`) para Item.
func MarshalItem(v any) (Item, error) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("dyndb: marshal failed: %w", err)
	}
	return item, nil
}

// UnmarshalItem converte um Item para um mapa Go genérico.
func UnmarshalItem(item Item) (map[string]any, error) {
	out := make(map[string]any, len(item))
	if err := attributevalue.UnmarshalMap(item, &out); err != nil {
		return nil, fmt.Errorf("dyndb: unmarshal failed: %w", err)
	}
	return out, nil
}

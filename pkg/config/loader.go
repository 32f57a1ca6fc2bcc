package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/raywall/aws-helper/envloader"
	"github.com/raywall/aws-helper/pkg/config/injector"
	"gopkg.in/yaml.v3"
)

// --- Interfaces para Mocking ---

type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type DynamoGetter interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Load é o atalho usado pelos binários: arquivo/S3/DynamoDB quando source
// não é vazio, senão variáveis de ambiente.
func Load(ctx context.Context, source string) (*Options, error) {
	loader := NewUniversalLoader()
	if source == "" {
		return loader.FromEnv(ctx)
	}
	return loader.Load(ctx, source)
}

// UniversalLoader suporta múltiplas fontes de configuração (Local, S3, DynamoDB, Env).
type UniversalLoader struct {
	validator *ConfigValidator
	injector  *injector.Injector
	s3        S3Downloader
	dynamo    DynamoGetter
}

// LoaderOption configura o UniversalLoader.
type LoaderOption func(*UniversalLoader)

// WithS3Client injeta o cliente S3 (testes ou cliente já configurado).
func WithS3Client(c S3Downloader) LoaderOption {
	return func(ul *UniversalLoader) { ul.s3 = c }
}

// WithDynamoClient injeta o cliente DynamoDB usado por fontes dynamodb://.
func WithDynamoClient(c DynamoGetter) LoaderOption {
	return func(ul *UniversalLoader) { ul.dynamo = c }
}

// WithInjector substitui o injector de placeholders.
func WithInjector(inj *injector.Injector) LoaderOption {
	return func(ul *UniversalLoader) { ul.injector = inj }
}

// NewUniversalLoader cria uma nova instância.
func NewUniversalLoader(opts ...LoaderOption) *UniversalLoader {
	ul := &UniversalLoader{
		validator: NewValidator(),
		injector:  injector.New(),
	}
	for _, opt := range opts {
		opt(ul)
	}
	return ul
}

// Load detecta o esquema da fonte e carrega a configuração.
func (ul *UniversalLoader) Load(ctx context.Context, source string) (*Options, error) {
	var rawData []byte
	var err error

	switch {
	case strings.HasPrefix(source, "s3://"):
		client := ul.s3
		if client == nil {
			cfg, cerr := config.LoadDefaultConfig(ctx)
			if cerr != nil {
				return nil, fmt.Errorf("config: aws config: %w", cerr)
			}
			client = s3.NewFromConfig(cfg)
		}
		rawData, err = ul.loadFromS3(ctx, client, source)

	case strings.HasPrefix(source, "dynamodb://"):
		client := ul.dynamo
		if client == nil {
			cfg, cerr := config.LoadDefaultConfig(ctx)
			if cerr != nil {
				return nil, fmt.Errorf("config: aws config: %w", cerr)
			}
			client = dynamodb.NewFromConfig(cfg)
		}
		rawData, err = ul.loadFromDynamoDB(ctx, client, source)

	default:
		rawData, err = ul.loadFromFile(source)
	}

	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", source, err)
	}

	return ul.Parse(ctx, rawData)
}

// FromEnv carrega as opções das variáveis AWSHELPER_* (e DD_* para métricas).
func (ul *UniversalLoader) FromEnv(ctx context.Context) (*Options, error) {
	var opts Options
	if err := envloader.Load(&opts); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	return ul.finish(ctx, &opts)
}

// Parse decodifica o YAML (rejeitando chaves desconhecidas), resolve
// placeholders, aplica defaults e valida.
func (ul *UniversalLoader) Parse(ctx context.Context, data []byte) (*Options, error) {
	var opts Options

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: malformed YAML: %w", err)
	}

	return ul.finish(ctx, &opts)
}

func (ul *UniversalLoader) finish(ctx context.Context, opts *Options) (*Options, error) {
	if ul.injector != nil {
		if err := ul.injector.Inject(ctx, opts); err != nil {
			return nil, fmt.Errorf("config: inject: %w", err)
		}
	}

	opts.ApplyDefaults()

	if ul.validator != nil {
		if err := ul.validator.Validate(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// --- Estratégias de carregamento ---

func (ul *UniversalLoader) loadFromFile(path string) ([]byte, error) {
	// Suporta tanto "file://config.yaml" quanto apenas "config.yaml"
	return os.ReadFile(strings.TrimPrefix(path, "file://"))
}

func (ul *UniversalLoader) loadFromS3(ctx context.Context, client S3Downloader, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid S3 URL: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// dynamodb://tabela/chave?col=config&pk=id
func (ul *UniversalLoader) loadFromDynamoDB(ctx context.Context, client DynamoGetter, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid DynamoDB URL: %w", err)
	}

	tableName := u.Host
	pkValue := strings.TrimPrefix(u.Path, "/")

	colName := u.Query().Get("col")
	if colName == "" {
		colName = "config" // Coluna padrão onde o YAML está salvo
	}

	pkName := u.Query().Get("pk")
	if pkName == "" {
		pkName = "id" // Nome padrão da Partition Key
	}

	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key: map[string]types.AttributeValue{
			pkName: &types.AttributeValueMemberS{Value: pkValue},
		},
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("config item %s not found in table %s", pkValue, tableName)
	}

	var itemMap map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &itemMap); err != nil {
		return nil, err
	}

	content, ok := itemMap[colName].(string)
	if !ok {
		return nil, fmt.Errorf("column '%s' is missing or not a string", colName)
	}
	return []byte(content), nil
}

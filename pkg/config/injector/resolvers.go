package injector

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ClientFactory cria a configuração AWS usada pelos clientes sob demanda.
type ClientFactory func(ctx context.Context) (aws.Config, error)

func defaultFactory(ctx context.Context) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if region := os.Getenv("AWS_REGION"); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

type awsResolver struct {
	factory ClientFactory
	ssm     SSMClient
	secrets SecretsClient
}

func (r *awsResolver) parameter(ctx context.Context, path string) (string, error) {
	if r.ssm == nil {
		cfg, err := r.factory(ctx)
		if err != nil {
			return "", fmt.Errorf("injector: aws config: %w", err)
		}
		r.ssm = ssm.NewFromConfig(cfg)
	}

	out, err := r.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("injector: ssm GetParameter %s: %w", path, err)
	}
	if out.Parameter == nil {
		return "", fmt.Errorf("injector: ssm parameter %s has no value", path)
	}
	return aws.ToString(out.Parameter.Value), nil
}

func (r *awsResolver) secret(ctx context.Context, id string) (string, error) {
	if r.secrets == nil {
		cfg, err := r.factory(ctx)
		if err != nil {
			return "", fmt.Errorf("injector: aws config: %w", err)
		}
		r.secrets = secretsmanager.NewFromConfig(cfg)
	}

	out, err := r.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("injector: secretsmanager GetSecretValue %s: %w", id, err)
	}
	return aws.ToString(out.SecretString), nil
}

// Package injector resolve placeholders ${env.X}, ${ssm./path} e
// ${secret.id} em campos string de uma struct de configuração.
package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.TABLE_NAME}, ${ssm./app/table}, ${secret.helper/config}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

type Injector struct {
	resolver *awsResolver
}

// Option configura o Injector.
type Option func(*Injector)

// WithSSM injeta o cliente do Parameter Store.
func WithSSM(client SSMClient) Option {
	return func(i *Injector) { i.resolver.ssm = client }
}

// WithSecrets injeta o cliente do Secrets Manager.
func WithSecrets(client SecretsClient) Option {
	return func(i *Injector) { i.resolver.secrets = client }
}

// WithClientFactory define como criar os clientes AWS sob demanda.
func WithClientFactory(f ClientFactory) Option {
	return func(i *Injector) { i.resolver.factory = f }
}

func New(opts ...Option) *Injector {
	i := &Injector{resolver: &awsResolver{factory: defaultFactory}}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inject percorre a struct (ponteiro) substituindo os placeholders.
func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("injector: target must be a non-nil pointer to struct")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			if err := i.injectRecursive(ctx, v.Field(k)); err != nil {
				return err
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		newValue, err := i.interpolateString(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(newValue)

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// interpolateString realiza a substituição baseada em Regex
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if err != nil {
			return match
		}

		// match é algo como "${env.VAR_NAME}"
		parts := pattern.FindStringSubmatch(match)
		val, resolveErr := i.fetchValue(ctx, parts[1], parts[2])
		if resolveErr != nil {
			err = resolveErr
			return match
		}
		return val
	})

	return result, err
}

// fetchValue centraliza a busca de dados
func (i *Injector) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		return os.Getenv(key), nil
	case "ssm":
		return i.resolver.parameter(ctx, key)
	case "secret":
		return i.resolver.secret(ctx, key)
	}
	return "", fmt.Errorf("injector: unknown source %q", sourceType)
}

// Package awsconf carrega a configuração da AWS (região, profile, credenciais)
// para uma instância do helper. Cada chamada devolve um aws.Config novo: não
// existe estado global compartilhado entre instâncias.
package awsconf

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
)

// Settings descreve de onde vêm as credenciais.
type Settings struct {
	Region  string
	Profile string
}

// LoaderFunc é a assinatura de config.LoadDefaultConfig (permite Mocking).
type LoaderFunc func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error)

// Loader monta aws.Config a partir de Settings.
type Loader struct {
	load   LoaderFunc
	logger zerolog.Logger
}

// NewLoader cria um Loader. load nil usa config.LoadDefaultConfig.
func NewLoader(load LoaderFunc, logger zerolog.Logger) *Loader {
	if load == nil {
		load = config.LoadDefaultConfig
	}
	return &Loader{load: load, logger: logger}
}

// Load carrega a configuração com o profile informado. Se o profile não puder
// ser resolvido (ex: rodando dentro de uma Lambda, sem ~/.aws/credentials),
// registra um aviso e segue com as credenciais do ambiente (env vars, IAM role).
func (l *Loader) Load(ctx context.Context, s Settings) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if s.Region != "" {
		opts = append(opts, config.WithRegion(s.Region))
	}

	if s.Profile != "" {
		cfg, err := l.load(ctx, append(opts, config.WithSharedConfigProfile(s.Profile))...)
		if err == nil {
			l.logger.Info().Str("profile", s.Profile).Str("region", s.Region).Msg("Successfully set credentials")
			return cfg, nil
		}
		l.logger.Warn().
			Err(err).
			Str("profile", s.Profile).
			Msg("Error while getting credentials. Maybe in lambda. Going forward without them.")
	}

	cfg, err := l.load(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("awsconf: load default config: %w", err)
	}
	return cfg, nil
}

// Load é um atalho para NewLoader(nil, logger).Load.
func Load(ctx context.Context, s Settings, logger zerolog.Logger) (aws.Config, error) {
	return NewLoader(nil, logger).Load(ctx, s)
}

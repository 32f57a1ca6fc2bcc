package config

import (
	"strings"
	"time"
)

// Valores padrão do helper.
const (
	DefaultTableName            = "user_middle_cache"
	DefaultRegion               = "us-east-2"
	DefaultLogLevel             = "debug"
	DefaultLogFormat            = "console"
	DefaultCredentialsProfile   = "archive"
	DefaultLambdaRegion         = "us-east-1"
	DefaultLambdaLogType        = "Tail"
	DefaultLambdaInvocationType = "RequestResponse"
	DefaultServerPort           = 8080
	DefaultServerTimeout        = "30s"
)

// Options representa a configuração de uma instância do helper. Pode vir de
// YAML (arquivo, S3 ou DynamoDB), de variáveis de ambiente ou ser montada em código.
type Options struct {
	TableName          string `yaml:"table_name" env:"AWSHELPER_TABLE_NAME" validate:"required"`
	Region             string `yaml:"region" env:"AWSHELPER_REGION" validate:"required"`
	APIVersion         string `yaml:"api_version" env:"AWSHELPER_API_VERSION" validate:"omitempty,datetime=2006-01-02"`
	ConsistentRead     bool   `yaml:"consistent_read" env:"AWSHELPER_CONSISTENT_READ"`
	CredentialsProfile string `yaml:"credentials_profile" env:"AWSHELPER_CREDENTIALS_PROFILE"`

	// Grafias alternativas de api_version e lambda_api_version.
	APIVersionAlias       string `yaml:"apiVersion"`
	LambdaAPIVersionAlias string `yaml:"lambda_apiVersion"`

	LogLevel  string `yaml:"log_level" env:"AWSHELPER_LOG_LEVEL" validate:"required,loglevel"`
	LogFormat string `yaml:"log_format" env:"AWSHELPER_LOG_FORMAT" validate:"required,oneof=console json"`

	LambdaCredentialsProfile string `yaml:"lambda_credentials_profile" env:"AWSHELPER_LAMBDA_CREDENTIALS_PROFILE"`
	LambdaAPIVersion         string `yaml:"lambda_api_version" env:"AWSHELPER_LAMBDA_API_VERSION" validate:"omitempty,datetime=2006-01-02"`
	LambdaRegion             string `yaml:"lambda_region" env:"AWSHELPER_LAMBDA_REGION" validate:"required"`
	LambdaLogType            string `yaml:"lambda_log_type" env:"AWSHELPER_LAMBDA_LOG_TYPE" validate:"required,oneof=None Tail"`
	LambdaInvocationType     string `yaml:"lambda_invocation_type" env:"AWSHELPER_LAMBDA_INVOCATION_TYPE" validate:"required,oneof=RequestResponse Event DryRun"`

	// Regras CEL avaliadas antes de cada operação (variáveis `item` e `op`).
	WriteDataValidation  string `yaml:"write_data_validation" env:"AWSHELPER_WRITE_DATA_VALIDATION"`
	GetDataValidation    string `yaml:"get_data_validation" env:"AWSHELPER_GET_DATA_VALIDATION"`
	DeleteDataValidation string `yaml:"delete_data_validation" env:"AWSHELPER_DELETE_DATA_VALIDATION"`

	WriteRequiredParams  []string `yaml:"write_required_params" env:"AWSHELPER_WRITE_REQUIRED_PARAMS" validate:"dive,required"`
	GetRequiredParams    []string `yaml:"get_required_params" env:"AWSHELPER_GET_REQUIRED_PARAMS" validate:"dive,required"`
	DeleteRequiredParams []string `yaml:"delete_required_params" env:"AWSHELPER_DELETE_REQUIRED_PARAMS" validate:"dive,required"`

	Metrics MetricsConf `yaml:"metrics"`
	Server  ServerConf  `yaml:"server"`
}

// LoggingConf é a configuração do logger de uma instância.
type LoggingConf struct {
	Enabled bool
	Level   string
	Format  string
	Module  string
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE"`
}

// ServerConf é usada apenas pelos transportes HTTP/Lambda.
type ServerConf struct {
	Port    int    `yaml:"port" env:"AWSHELPER_PORT" validate:"gte=0,lte=65535"`
	Timeout string `yaml:"timeout" env:"AWSHELPER_TIMEOUT"`
}

// Defaults devolve as opções padrão.
func Defaults() Options {
	var o Options
	o.ApplyDefaults()
	return o
}

// ApplyDefaults preenche apenas os campos vazios.
func (o *Options) ApplyDefaults() {
	setDefault(&o.TableName, DefaultTableName)
	setDefault(&o.Region, DefaultRegion)
	setDefault(&o.APIVersion, o.APIVersionAlias)
	setDefault(&o.LambdaAPIVersion, o.LambdaAPIVersionAlias)
	setDefault(&o.CredentialsProfile, DefaultCredentialsProfile)
	setDefault(&o.LogLevel, DefaultLogLevel)
	setDefault(&o.LogFormat, DefaultLogFormat)
	setDefault(&o.LambdaRegion, DefaultLambdaRegion)
	setDefault(&o.LambdaInvocationType, DefaultLambdaInvocationType)
	if o.LambdaInvocationType == DefaultLambdaInvocationType {
		setDefault(&o.LambdaLogType, DefaultLambdaLogType)
	} else {
		// Tail só é aceito em invocações síncronas
		setDefault(&o.LambdaLogType, "None")
	}
	setDefault(&o.Server.Timeout, DefaultServerTimeout)

	o.LogLevel = strings.ToLower(o.LogLevel)
	if o.Server.Port == 0 {
		o.Server.Port = DefaultServerPort
	}
}

// LambdaProfile devolve o profile da Lambda, caindo para o profile principal.
func (o Options) LambdaProfile() string {
	if o.LambdaCredentialsProfile != "" {
		return o.LambdaCredentialsProfile
	}
	return o.CredentialsProfile
}

// Logging devolve a configuração de log para um módulo.
func (o Options) Logging(module string) LoggingConf {
	return LoggingConf{
		Enabled: true,
		Level:   o.LogLevel,
		Format:  o.LogFormat,
		Module:  module,
	}
}

func (s ServerConf) GetTimeout() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator()

	valid := func() *Options {
		o := Defaults()
		return &o
	}

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{
			name:   "Defaults are valid",
			mutate: func(o *Options) {},
		},
		{
			name:    "Missing table name",
			mutate:  func(o *Options) { o.TableName = "" },
			wantErr: "TableName",
		},
		{
			name:    "Invalid log level",
			mutate:  func(o *Options) { o.LogLevel = "verbose" },
			wantErr: "LogLevel",
		},
		{
			name:   "Numeric log level",
			mutate: func(o *Options) { o.LogLevel = "30" },
		},
		{
			name:   "Any integer log level",
			mutate: func(o *Options) { o.LogLevel = "25" },
		},
		{
			name:    "Non integer numeric log level",
			mutate:  func(o *Options) { o.LogLevel = "2.5" },
			wantErr: "LogLevel",
		},
		{
			name:    "Invalid log format",
			mutate:  func(o *Options) { o.LogFormat = "xml" },
			wantErr: "LogFormat",
		},
		{
			name:    "Invalid invocation type",
			mutate:  func(o *Options) { o.LambdaInvocationType = "Sync" },
			wantErr: "LambdaInvocationType",
		},
		{
			name:    "Invalid API version",
			mutate:  func(o *Options) { o.APIVersion = "latest" },
			wantErr: "APIVersion",
		},
		{
			name:   "Valid API version",
			mutate: func(o *Options) { o.APIVersion = "2012-08-10"; o.LambdaAPIVersion = "2015-03-31" },
		},
		{
			name: "Tail with DryRun",
			mutate: func(o *Options) {
				o.LambdaInvocationType = "DryRun"
				o.LambdaLogType = "Tail"
			},
			wantErr: "DryRun",
		},
		{
			name: "Tail with Event",
			mutate: func(o *Options) {
				o.LambdaInvocationType = "Event"
				o.LambdaLogType = "Tail"
			},
			wantErr: "RequestResponse",
		},
		{
			name:    "Duplicated required attribute",
			mutate:  func(o *Options) { o.WriteRequiredParams = []string{"user_id", "user_id"} },
			wantErr: "duplicated attribute 'user_id' in write_required_params",
		},
		{
			name:    "Empty required attribute",
			mutate:  func(o *Options) { o.GetRequiredParams = []string{""} },
			wantErr: "GetRequiredParams",
		},
		{
			name:    "Datadog enabled without address",
			mutate:  func(o *Options) { o.Metrics.Datadog.Enabled = true },
			wantErr: "Addr",
		},
		{
			name:    "Port out of range",
			mutate:  func(o *Options) { o.Server.Port = 70000 },
			wantErr: "Port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validator.Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestOptions_ApplyDefaults(t *testing.T) {
	o := Options{LogLevel: "INFO", TableName: "sessions"}
	o.ApplyDefaults()

	assert.Equal(t, "sessions", o.TableName, "campos preenchidos não devem ser sobrescritos")
	assert.Equal(t, "info", o.LogLevel)
	assert.Equal(t, DefaultRegion, o.Region)
	assert.Equal(t, DefaultCredentialsProfile, o.CredentialsProfile)
	assert.Equal(t, DefaultLambdaRegion, o.LambdaRegion)
	assert.Equal(t, "Tail", o.LambdaLogType)
	assert.Equal(t, "RequestResponse", o.LambdaInvocationType)
	assert.Equal(t, DefaultServerPort, o.Server.Port)
}

func TestOptions_ApplyDefaults_APIVersionAliases(t *testing.T) {
	o := Options{APIVersionAlias: "2012-08-10", LambdaAPIVersionAlias: "2015-03-31"}
	o.ApplyDefaults()
	assert.Equal(t, "2012-08-10", o.APIVersion)
	assert.Equal(t, "2015-03-31", o.LambdaAPIVersion)

	both := Options{APIVersion: "2012-08-10", APIVersionAlias: "2011-12-05"}
	both.ApplyDefaults()
	assert.Equal(t, "2012-08-10", both.APIVersion, "api_version tem precedência")
}

func TestOptions_ApplyDefaults_EventInvocation(t *testing.T) {
	o := Options{LambdaInvocationType: "Event"}
	o.ApplyDefaults()

	assert.Equal(t, "None", o.LambdaLogType)
	assert.NoError(t, NewValidator().Validate(&o))
}

func TestOptions_LambdaProfile(t *testing.T) {
	o := Defaults()
	assert.Equal(t, "archive", o.LambdaProfile())

	o.LambdaCredentialsProfile = "lambda-only"
	assert.Equal(t, "lambda-only", o.LambdaProfile())
}

func TestOptions_Logging(t *testing.T) {
	o := Defaults()
	lc := o.Logging("helpers")

	assert.True(t, lc.Enabled)
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "console", lc.Format)
	assert.Equal(t, "helpers", lc.Module)
}

func TestServerConf_GetTimeout(t *testing.T) {
	assert.Equal(t, "5s", ServerConf{Timeout: "5s"}.GetTimeout().String())
	assert.Equal(t, "30s", ServerConf{Timeout: "invalid"}.GetTimeout().String())
}

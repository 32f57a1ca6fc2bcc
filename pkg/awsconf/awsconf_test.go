package awsconf

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader aplica as opções num LoadOptions e devolve a região resolvida.
type fakeLoader struct {
	failProfile bool
	failAll     bool
	calls       []config.LoadOptions
}

func (f *fakeLoader) load(_ context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
	var lo config.LoadOptions
	for _, fn := range optFns {
		if err := fn(&lo); err != nil {
			return aws.Config{}, err
		}
	}
	f.calls = append(f.calls, lo)

	if f.failAll {
		return aws.Config{}, errors.New("no credentials")
	}
	if f.failProfile && lo.SharedConfigProfile != "" {
		return aws.Config{}, errors.New("failed to get shared config profile, archive")
	}
	return aws.Config{Region: lo.Region}, nil
}

func TestLoad_WithProfile(t *testing.T) {
	f := &fakeLoader{}
	cfg, err := NewLoader(f.load, zerolog.Nop()).Load(context.Background(), Settings{Region: "us-east-2", Profile: "archive"})

	require.NoError(t, err)
	assert.Equal(t, "us-east-2", cfg.Region)
	require.Len(t, f.calls, 1)
	assert.Equal(t, "archive", f.calls[0].SharedConfigProfile)
}

func TestLoad_ProfileFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeLoader{failProfile: true}

	cfg, err := NewLoader(f.load, zerolog.New(&buf)).Load(context.Background(), Settings{Region: "us-east-1", Profile: "archive"})

	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
	require.Len(t, f.calls, 2)
	assert.Empty(t, f.calls[1].SharedConfigProfile)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "Going forward without them.")
}

func TestLoad_NoProfile(t *testing.T) {
	f := &fakeLoader{}
	_, err := NewLoader(f.load, zerolog.Nop()).Load(context.Background(), Settings{Region: "sa-east-1"})

	require.NoError(t, err)
	assert.Len(t, f.calls, 1)
}

func TestLoad_Failure(t *testing.T) {
	f := &fakeLoader{failAll: true}
	_, err := NewLoader(f.load, zerolog.Nop()).Load(context.Background(), Settings{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "awsconf: load default config")
}

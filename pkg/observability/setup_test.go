package observability

import (
	"testing"

	"github.com/raywall/aws-helper/pkg/config"
)

func TestSetupMetrics(t *testing.T) {
	t.Run("Disabled returns Noop", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{Enabled: false},
		}

		provider, err := SetupMetrics(cfg)
		if err != nil {
			t.Fatalf("Erro setup: %v", err)
		}

		if _, ok := provider.(*NoopProvider); !ok {
			t.Errorf("Esperado NoopProvider, recebido %T", provider)
		}
	})

	t.Run("Enabled returns Datadog", func(t *testing.T) {
		cfg := config.MetricsConf{
			Datadog: config.DatadogConf{
				Enabled: true,
				Addr:    "localhost:8125",
			},
		}

		provider, err := SetupMetrics(cfg)
		if err != nil {
			// statsd.New pode falhar se o endereço for inválido, mas localhost costuma passar na criação do struct
			t.Fatalf("Erro setup: %v", err)
		}

		if _, ok := provider.(*DatadogProvider); !ok {
			t.Errorf("Esperado DatadogProvider, recebido %T", provider)
		}
		if err := provider.Count("awshelper.operation.count", 1, []string{"operation:get"}); err != nil {
			t.Errorf("Count não deveria falhar: %v", err)
		}
		if err := provider.Close(); err != nil {
			t.Errorf("Close não deveria falhar: %v", err)
		}
	})

	t.Run("Noop ignores everything", func(t *testing.T) {
		provider, _ := SetupMetrics(config.MetricsConf{})
		if err := provider.Histogram("awshelper.operation.latency_ms", 12, nil); err != nil {
			t.Errorf("Noop não deveria falhar: %v", err)
		}
		if err := provider.Close(); err != nil {
			t.Errorf("Noop Close não deveria falhar: %v", err)
		}
	})
}

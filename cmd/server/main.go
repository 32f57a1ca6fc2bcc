package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	awshelper "github.com/raywall/aws-helper"
	"github.com/raywall/aws-helper/pkg/config"
	"github.com/raywall/aws-helper/pkg/logger"
	"github.com/raywall/aws-helper/pkg/observability"
	"github.com/raywall/aws-helper/pkg/transport"
)

var (
	configPath string
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = func(h *transport.LambdaHandler) { lambda.Start(h.Handle) }
	helperFactory = func(ctx context.Context, s awshelper.Setup) (awshelper.Helper, error) {
		return awshelper.New(ctx, s)
	}
)

func init() {
	// Vazio: as opções vêm das variáveis AWSHELPER_*
	configPath = os.Getenv("CONFIG_FILE_PATH")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, cfgPath string) error {
	// 1. Carrega Configuração (arquivo, S3, DynamoDB ou env)
	opts, err := config.Load(ctx, cfgPath)
	if err != nil {
		return err
	}

	srvLog, err := logger.Configure(opts.Logging("server"))
	if err != nil {
		return err
	}

	// 2. Métricas
	provider, err := observability.SetupMetrics(opts.Metrics)
	if err != nil {
		return err
	}
	defer provider.Close()

	// 3. Inicializa o helper (Boot Time)
	h, err := helperFactory(ctx, awshelper.Setup{Options: *opts, Metrics: provider})
	if err != nil {
		return err
	}

	d := transport.NewDispatcher(h, srvLog, opts.Server.GetTimeout())

	// 4. Seleciona Runtime
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambdaStarter(transport.NewLambdaHandler(d))
		return nil
	}
	return serverStarter(ctx, d, opts.Server.Port)
}

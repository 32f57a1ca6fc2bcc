package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	awshelper "github.com/raywall/aws-helper"
	"github.com/raywall/aws-helper/dyndb"
	"github.com/raywall/aws-helper/pkg/config"
	"github.com/raywall/aws-helper/pkg/responder"
)

// Variáveis injetáveis para mocking
var (
	loadConfig = config.Load
	newHelper  = func(ctx context.Context, s awshelper.Setup) (awshelper.Helper, error) {
		return awshelper.New(ctx, s)
	}
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

// run contém a lógica principal testável e devolve o exit code.
func run(ctx context.Context, args []string, out io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(out, "Comandos esperados: write | get | delete | invoke | validate")
		return 1
	}

	cmd := flag.NewFlagSet(args[0], flag.ContinueOnError)
	cmd.SetOutput(out)
	cfgPtr := cmd.String("config", os.Getenv("CONFIG_FILE_PATH"), "Arquivo YAML, s3:// ou dynamodb:// (vazio usa AWSHELPER_*)")
	itemPtr := cmd.String("item", "", "Item ou chave em JSON, ex: '{\"user_id\":\"u1\"}'")
	projPtr := cmd.String("projection", "", "Projection expression para get")
	fnPtr := cmd.String("function", "", "Nome da função Lambda para invoke")
	payloadPtr := cmd.String("payload", "", "Payload JSON para invoke")

	if err := cmd.Parse(args[1:]); err != nil {
		return 1
	}

	opts, err := loadConfig(ctx, *cfgPtr)
	if err != nil {
		fmt.Fprintf(out, "Erro de Carregamento/Estrutura:\n%v\n", err)
		return 1
	}

	if args[0] == "validate" {
		return runValidate(out, opts)
	}

	h, err := newHelper(ctx, awshelper.Setup{Options: *opts})
	if err != nil {
		fmt.Fprintf(out, "Erro ao criar helper: %v\n", err)
		return 1
	}

	var resp responder.Response
	switch args[0] {
	case "write", "get", "delete":
		item, err := parseItem(*itemPtr)
		if err != nil {
			resp = responder.Build(nil, 400, err.Error())
			break
		}
		switch args[0] {
		case "write":
			resp = h.Write(ctx, item)
		case "get":
			resp = h.Get(ctx, item, awshelper.WithProjection(*projPtr))
		case "delete":
			resp = h.Delete(ctx, item)
		}

	case "invoke":
		if *fnPtr == "" {
			fmt.Fprintln(out, "Erro: flag -function é obrigatória")
			return 1
		}
		var payload any
		if *payloadPtr != "" {
			if !json.Valid([]byte(*payloadPtr)) {
				resp = responder.Build(nil, 400, "payload is not valid JSON")
				break
			}
			payload = json.RawMessage(*payloadPtr)
		}
		resp = h.Invoke(ctx, *fnPtr, payload)

	default:
		fmt.Fprintf(out, "Comando desconhecido: %s\n", args[0])
		return 1
	}

	return emit(out, resp)
}

func runValidate(out io.Writer, opts *config.Options) int {
	if os.Getenv("OUTPUT_FORMAT") == "json" {
		b, _ := json.Marshal(opts)
		fmt.Fprintln(out, string(b))
	} else {
		fmt.Fprintf(out, "Configuração válida (tabela %s em %s, lambda em %s)\n", opts.TableName, opts.Region, opts.LambdaRegion)
	}
	return 0
}

func parseItem(raw string) (dyndb.Item, error) {
	if raw == "" {
		return nil, fmt.Errorf("flag -item is required")
	}
	var plain map[string]any
	if err := json.Unmarshal([]byte(raw), &plain); err != nil {
		return nil, fmt.Errorf("invalid -item JSON: %w", err)
	}
	return dyndb.MarshalItem(plain)
}

func emit(out io.Writer, resp responder.Response) int {
	if item, ok := resp.Data.(dyndb.Item); ok {
		if plain, err := dyndb.UnmarshalItem(item); err == nil {
			resp.Data = plain
		}
	}

	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "Erro ao serializar resposta: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, string(b))

	if !resp.OK() {
		return 1
	}
	return 0
}

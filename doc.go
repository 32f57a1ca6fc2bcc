// Package awshelper fornece uma camada fina sobre o AWS SDK para Go (v2) para
// gravar, ler e remover itens do DynamoDB e invocar funções Lambda, sempre
// devolvendo um envelope uniforme {data, status, message}.
//
// Visão Geral:
// Cada operação executa exatamente uma chamada ao SDK. Retry, paginação,
// consistência e pool de conexões ficam a cargo do próprio SDK. Antes de
// cada escrita, leitura ou remoção pode rodar um validador; qualquer status
// diferente de 200 encerra a operação sem contatar a AWS.
//
// Sub-Pacotes Principais:
//
// 1. pkg/responder:
//   - Envelope Response e conversão de erros do SDK em status HTTP.
//
// 2. pkg/validation e pkg/rules:
//   - Validadores por operação, atributos obrigatórios e regras CEL.
//
// 3. dyndb e pkg/invoker:
//   - Montagem das requisições GetItem/PutItem/DeleteItem e Invoke.
//
// 4. pkg/config, envloader e pkg/config/injector:
//   - Opções com defaults, validação e carregamento de YAML (arquivo, S3,
//     DynamoDB) ou variáveis de ambiente, com placeholders ${env|ssm|secret.x}.
//
// Exemplo de Início Rápido:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
//		awshelper "github.com/raywall/aws-helper"
//		"github.com/raywall/aws-helper/pkg/config"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		h, err := awshelper.New(ctx, awshelper.Setup{
//			Options: config.Options{TableName: "sessions", Region: "us-east-2"},
//		})
//		if err != nil {
//			log.Fatalf("Erro ao criar helper: %v", err)
//		}
//
//		resp := h.Get(ctx, map[string]types.AttributeValue{
//			"user_id": &types.AttributeValueMemberS{Value: "u1"},
//		}, awshelper.WithProjection("user_id, expiry_interval"))
//
//		fmt.Println(resp.Status, resp.Message)
//	}
package awshelper

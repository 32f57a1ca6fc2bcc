// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package dyndb monta as requisições de item do DynamoDB (Put, Get e Delete)
// sobre o AWS SDK Go v2 e executa exatamente uma chamada por operação.
//
// Visão Geral:
// O `Table` recebe um `DynamoDBClient` (a fatia mínima do cliente do SDK que
// o helper utiliza) e o nome da tabela. Itens e chaves são mapas de
// `types.AttributeValue`, exatamente como o SDK os espera:
//
//	key := dyndb.Item{
//		"user_id":   &types.AttributeValueMemberS{Value: "u1"},
//		"device_id": &types.AttributeValueMemberS{Value: "d1"},
//	}
//
// Para quem prefere tipos Go nativos, `MarshalItem` converte structs e mapas
// com as tags `dynamodbav`.
//
// Funcionalidades Principais:
//   - Builders de requisição puros (`PutRequest`, `GetRequest`, `DeleteRequest`).
//   - Projeções por expressão bruta (`RawProjection`) ou por lista de nomes
//     (`ProjectionOf`), este último usando o Expression Builder do SDK.
//   - `ErrNotFound` quando o GetItem não devolve item (carrega status 404).
//   - `MockDynamoClient` com campos de função para testes unitários.
//
// Não há retry, batch ou paginação aqui: isso fica a cargo do SDK.
//
// Exemplo:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	table := dyndb.NewTable(dynamodb.NewFromConfig(cfg), dyndb.TableConfig{TableName: "user_middle_cache"})
//
//	item, err := table.Get(ctx, key, dyndb.ProjectionOf("jwt", "login_time"))
//	if errors.Is(err, dyndb.ErrNotFound) { /* ... */ }
package dyndb

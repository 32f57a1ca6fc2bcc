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
// Package envloader preenche structs a partir de variáveis de ambiente usando
// as tags `env`, `envDefault` e `envSeparator`. É o caminho usado por
// config.FromEnv quando o helper é configurado sem arquivo YAML.
//
// Tipos aceitos: string, int*, uint*, bool, float*, slices desses tipos e
// structs aninhadas (inclusive ponteiros). Variáveis ausentes sem
// `envDefault` deixam o campo intacto.
//
// Exemplo com as variáveis do helper:
//
//	// AWSHELPER_TABLE_NAME=sessions
//	// AWSHELPER_WRITE_REQUIRED_PARAMS="user_id, device_id"
//	type HelperEnv struct {
//	    TableName      string   `env:"AWSHELPER_TABLE_NAME" envDefault:"user_middle_cache"`
//	    LogLevel       string   `env:"AWSHELPER_LOG_LEVEL" envDefault:"info"`
//	    ConsistentRead bool     `env:"AWSHELPER_CONSISTENT_READ"`
//	    WriteRequired  []string `env:"AWSHELPER_WRITE_REQUIRED_PARAMS"`
//	    Metrics        struct {
//	        Addr string `env:"DD_AGENT_HOST"`
//	    }
//	}
//
//	var cfg HelperEnv
//	if err := envloader.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//	// cfg.WriteRequired == []string{"user_id", "device_id"}
//
// Listas com outro separador usam a tag `envSeparator`:
//
//	Regions []string `env:"AWSHELPER_REGIONS" envSeparator:";"`
//
// Falhas de conversão chegam como *FieldError (com Unwrap para o erro do
// strconv); um alvo que não seja ponteiro para struct gera *InvalidConfigError.
package envloader

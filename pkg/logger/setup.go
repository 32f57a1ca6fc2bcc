package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/raywall/aws-helper/pkg/config"
	"github.com/rs/zerolog"
)

// Output é o destino padrão dos logs. Trocado nos testes.
var Output io.Writer = os.Stdout

// levels mapeia os nomes aceitos na configuração para os níveis do zerolog.
var levels = map[string]zerolog.Level{
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"critical": zerolog.FatalLevel,
	"fatal":    zerolog.FatalLevel,
}

// numericLevel converte níveis inteiros por faixa (10 debug, 20 info, 30 warn,
// 40 error, 50 ou mais fatal).
func numericLevel(n int) zerolog.Level {
	switch {
	case n < 20:
		return zerolog.DebugLevel
	case n < 30:
		return zerolog.InfoLevel
	case n < 40:
		return zerolog.WarnLevel
	case n < 50:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

// ParseLevel converte o nível configurado. Vazio vira info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	if l, ok := levels[level]; ok {
		return l, nil
	}
	if n, err := strconv.Atoi(level); err == nil {
		return numericLevel(n), nil
	}
	return zerolog.NoLevel, fmt.Errorf("logger: unknown level %q", level)
}

// Configure cria o logger de uma instância baseando-se na configuração.
// O nível é aplicado ao logger devolvido, sem alterar o nível global.
func Configure(cfg config.LoggingConf) (zerolog.Logger, error) {
	if !cfg.Enabled {
		return zerolog.Nop(), nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	// JSON para produção, Console para uso local
	out := Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: Output, NoColor: true, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Module != "" {
		ctx = ctx.Str("module", cfg.Module)
	}
	return ctx.Logger(), nil
}

// Critical registra no nível fatal sem encerrar o processo.
func Critical(l *zerolog.Logger) *zerolog.Event {
	return l.WithLevel(zerolog.FatalLevel)
}

package metrics

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Recorder registra contagem e latência de cada operação do helper.
// Um Recorder com provider nil não faz nada.
type Recorder struct {
	provider Provider
	logger   zerolog.Logger
	tags     []string
}

// NewRecorder cria um Recorder. extraTags são anexadas a todas as métricas.
func NewRecorder(provider Provider, logger zerolog.Logger, extraTags ...string) *Recorder {
	return &Recorder{provider: provider, logger: logger, tags: extraTags}
}

// Record envia as métricas de uma operação finalizada.
// Falhas de envio são apenas logadas; nunca interrompem a operação.
func (r *Recorder) Record(operation string, status int, elapsed time.Duration) {
	if r == nil || r.provider == nil {
		return
	}

	tags := make([]string, 0, len(r.tags)+2)
	tags = append(tags, r.tags...)
	tags = append(tags, "operation:"+operation, "status:"+strconv.Itoa(status))

	if err := r.provider.Count(OperationCount, 1, tags); err != nil {
		r.logger.Warn().Err(err).Str("metric", OperationCount).Msg("failed to send metric")
	}

	ms := float64(elapsed) / float64(time.Millisecond)
	if err := r.provider.Histogram(OperationLatency, ms, tags); err != nil {
		r.logger.Warn().Err(err).Str("metric", OperationLatency).Msg("failed to send metric")
	}
}

// Since é um atalho para Record(operation, status, time.Since(start)).
func (r *Recorder) Since(operation string, status int, start time.Time) {
	r.Record(operation, status, time.Since(start))
}

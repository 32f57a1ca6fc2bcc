package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Type  string
	Name  string
	Value float64
	Tags  []string
}

// MockProvider para verificar chamadas
type MockProvider struct {
	Calls []call
	Err   error
}

func (m *MockProvider) Count(name string, val float64, tags []string) error {
	m.Calls = append(m.Calls, call{"count", name, val, tags})
	return m.Err
}

func (m *MockProvider) Gauge(name string, val float64, tags []string) error {
	m.Calls = append(m.Calls, call{"gauge", name, val, tags})
	return m.Err
}

func (m *MockProvider) Histogram(name string, val float64, tags []string) error {
	m.Calls = append(m.Calls, call{"histogram", name, val, tags})
	return m.Err
}

func TestRecorder_Record(t *testing.T) {
	mock := &MockProvider{}
	r := NewRecorder(mock, zerolog.Nop(), "table:sessions")

	r.Record("write", 400, 1500*time.Microsecond)

	require.Len(t, mock.Calls, 2)
	assert.Equal(t, "count", mock.Calls[0].Type)
	assert.Equal(t, OperationCount, mock.Calls[0].Name)
	assert.Equal(t, 1.0, mock.Calls[0].Value)
	assert.Equal(t, []string{"table:sessions", "operation:write", "status:400"}, mock.Calls[0].Tags)

	assert.Equal(t, "histogram", mock.Calls[1].Type)
	assert.Equal(t, OperationLatency, mock.Calls[1].Name)
	assert.InDelta(t, 1.5, mock.Calls[1].Value, 0.0001)
}

func TestRecorder_ProviderErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	mock := &MockProvider{Err: errors.New("socket closed")}
	r := NewRecorder(mock, zerolog.New(&buf))

	assert.NotPanics(t, func() { r.Since("get", 200, time.Now()) })
	assert.Contains(t, buf.String(), "socket closed")
	assert.Contains(t, buf.String(), OperationLatency)
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() { r.Record("get", 200, time.Millisecond) })
	assert.NotPanics(t, func() { NewRecorder(nil, zerolog.Nop()).Record("get", 200, time.Millisecond) })
}

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ProductionEmitsJSONWithServiceTag(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", &buf)

	l.Info("ping", "port", "8080")

	out := buf.String()
	assert.Contains(t, out, `"msg":"ping"`)
	assert.Contains(t, out, `"service":"smlcredit-api"`)
	assert.Contains(t, out, `"port":"8080"`)
}

func TestNew_DevelopmentEmitsTextWithServiceTag(t *testing.T) {
	var buf bytes.Buffer
	l := New("development", &buf)

	l.Info("ping")

	out := buf.String()
	assert.Contains(t, out, "msg=ping")
	assert.Contains(t, out, "service=smlcredit-api")
}

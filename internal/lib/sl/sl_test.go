package sl_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	err := errors.New("something went wrong")
	attr := sl.Err(err)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("something went wrong"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	attr := sl.Err(nil)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("<nil>"), attr.Value)
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		env       string
		wantJSON  bool
		wantDebug bool
	}{
		{env: sl.EnvLocal, wantJSON: false, wantDebug: true},
		{env: sl.EnvDev, wantJSON: true, wantDebug: true},
		{env: sl.EnvProd, wantJSON: true, wantDebug: false},
		{env: "unknown", wantJSON: true, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			logger := sl.SetupLogger(tt.env, &buf)

			logger.Debug("debug line")
			assert.Equal(t, tt.wantDebug, buf.Len() > 0)

			buf.Reset()
			logger.Info("info line", slog.String("op", "test"))
			out := buf.String()
			assert.Contains(t, out, "info line")
			assert.Equal(t, tt.wantJSON, strings.HasPrefix(out, "{"))
		})
	}
}

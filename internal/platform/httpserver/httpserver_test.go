package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"numcheck/internal/platform/logger"
)

func TestNewLeavesWriteTimeoutUnset(t *testing.T) {
	srv := New(":1221", http.NotFoundHandler(), logger.Discard())

	assert.Equal(t, ":1221", srv.Addr)
	assert.Zero(t, srv.WriteTimeout, "batch uploads respond only after every row is checked")
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.ErrorLog)
}

func TestNewWithoutLogger(t *testing.T) {
	srv := New(":0", http.NotFoundHandler(), nil)
	assert.Nil(t, srv.ErrorLog)
}

package middlewares

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newPrinterIDContext(t *testing.T, method, target string, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	return c
}

func TestResolvePrinterIDPrecedence(t *testing.T) {
	// Query menang atas body, body atas header
	c := newPrinterIDContext(t, "POST", "/print-jobs/claim?printer_id=3", `{"printerId": 5}`)
	c.Request.Header.Set(PrinterIDHeader, "9")
	assert.Equal(t, uint(3), ResolvePrinterID(c))

	c = newPrinterIDContext(t, "POST", "/print-jobs/claim", `{"printerId": 5}`)
	c.Request.Header.Set(PrinterIDHeader, "9")
	assert.Equal(t, uint(5), ResolvePrinterID(c))

	c = newPrinterIDContext(t, "POST", "/print-jobs/claim", "")
	c.Request.Header.Set(PrinterIDHeader, "9")
	assert.Equal(t, uint(9), ResolvePrinterID(c))

	// Tanpa sumber sama sekali -> 0
	c = newPrinterIDContext(t, "POST", "/print-jobs/claim", "")
	assert.Equal(t, uint(0), ResolvePrinterID(c))
}

func TestResolvePrinterIDBodyVariants(t *testing.T) {
	// snake_case juga diterima
	c := newPrinterIDContext(t, "POST", "/x", `{"printer_id": 4}`)
	assert.Equal(t, uint(4), ResolvePrinterID(c))

	// printer id sebagai string
	c = newPrinterIDContext(t, "POST", "/x", `{"printerId": "12"}`)
	assert.Equal(t, uint(12), ResolvePrinterID(c))

	// body bukan JSON tidak bikin error
	c = newPrinterIDContext(t, "POST", "/x", "not-json")
	assert.Equal(t, uint(0), ResolvePrinterID(c))
}

func TestResolvePrinterIDRestoresBody(t *testing.T) {
	c := newPrinterIDContext(t, "POST", "/x", `{"printerId": 7, "worker": "kitchen-1"}`)
	assert.Equal(t, uint(7), ResolvePrinterID(c))

	// Handler setelahnya masih bisa bind body yang sama
	var req struct {
		Worker string `json:"worker"`
	}
	assert.NoError(t, json.NewDecoder(c.Request.Body).Decode(&req))
	assert.Equal(t, "kitchen-1", req.Worker)
}

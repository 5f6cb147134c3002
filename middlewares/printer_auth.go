package middlewares

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/viktortaseski/SelfServ-sub000/services"
	"github.com/viktortaseski/SelfServ-sub000/utils"
)

// PrinterIDHeader adalah header alternatif untuk menyebut printer target.
const PrinterIDHeader = "X-Printer-ID"

// PrinterContextKey adalah key gin context untuk identitas printer.
const PrinterContextKey = "printer"

// PrinterAuthMiddleware meng-autentikasi worker printer lewat bearer token
// dan menaruh PrinterIdentity di context untuk semua operasi queue.
func PrinterAuthMiddleware(auth *services.PrinterAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("printer credential missing"))
			c.Abort()
			return
		}

		requestedID := ResolvePrinterID(c)

		identity, err := auth.Authenticate(token, requestedID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrPrinterMismatch):
				utils.RespondError(c, http.StatusForbidden, err)
			case errors.Is(err, services.ErrPrinterIDRequired):
				utils.RespondError(c, http.StatusBadRequest, err)
			case errors.Is(err, services.ErrPrinterUnauthorized):
				utils.RespondError(c, http.StatusUnauthorized, err)
			default:
				utils.RespondError(c, http.StatusInternalServerError, err)
			}
			c.Abort()
			return
		}

		c.Set(PrinterContextKey, identity)
		c.Next()
	}
}

// GetPrinterIdentity mengambil identitas printer dari context.
func GetPrinterIdentity(c *gin.Context) (*services.PrinterIdentity, bool) {
	v, ok := c.Get(PrinterContextKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*services.PrinterIdentity)
	return identity, ok
}

// ResolvePrinterID membaca printer id target dari empat sumber dengan
// urutan precedence tetap: query string > body JSON > URL param > header.
// Satu sumber saja sudah cukup; 0 berarti tidak ada yang menyebut printer.
func ResolvePrinterID(c *gin.Context) uint {
	if id := parsePrinterID(c.Query("printer_id")); id != 0 {
		return id
	}
	if id := printerIDFromBody(c); id != 0 {
		return id
	}
	if id := parsePrinterID(c.Param("printer_id")); id != 0 {
		return id
	}
	return parsePrinterID(c.GetHeader(PrinterIDHeader))
}

// printerIDFromBody mengintip field printerId/printer_id di body JSON.
// Body dikembalikan utuh supaya handler masih bisa bind.
func printerIDFromBody(c *gin.Context) uint {
	if c.Request == nil || c.Request.Body == nil {
		return 0
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil || len(raw) == 0 {
		return 0
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0
	}
	for _, key := range []string{"printerId", "printer_id"} {
		switch v := body[key].(type) {
		case float64:
			if v > 0 {
				return uint(v)
			}
		case string:
			if id := parsePrinterID(v); id != 0 {
				return id
			}
		}
	}
	return 0
}

func parsePrinterID(s string) uint {
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

package tui

import (
	"strconv"
	"strings"

	"github.com/and161185/pedidos/internal/model"
)

const displayLayout = "02/01/2006 15:04"

// FormatCurrency renders v as "R$ 1234,50".
func FormatCurrency(v float64) string {
	return "R$ " + strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

// FormatDateTime renders d as "DD/MM/YYYY HH:mm"; zero renders empty.
func FormatDateTime(d model.DateTime) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(displayLayout)
}

package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/and161185/pedidos/internal/controller"
	"github.com/and161185/pedidos/internal/model"
	"github.com/and161185/pedidos/internal/notify"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ── bakery palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 2)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
)

// Terminal prints the session to a writer. It implements controller.View
// and notify.Presenter.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	alerts io.Writer

	section controller.Section
}

var (
	_ controller.View  = (*Terminal)(nil)
	_ notify.Presenter = (*Terminal)(nil)
)

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out, alerts: out}
}

// SetAlertOutput sends alerts to w instead of the main output.
func (t *Terminal) SetAlertOutput(w io.Writer) {
	t.mu.Lock()
	t.alerts = w
	t.mu.Unlock()
}

func (t *Terminal) print(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, s)
}

func (t *Terminal) Section() controller.Section {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.section
}

func (t *Terminal) ShowSection(section controller.Section) {
	t.mu.Lock()
	t.section = section
	t.mu.Unlock()
}

func (t *Terminal) RenderOrders(orders []model.Order, listing controller.Listing) {
	t.print(RenderOrders(orders, listing))
}

func (t *Terminal) FillForm(form model.Form) {
	t.print(RenderForm(form))
}

func (t *Terminal) ResetForm() {}

func (t *Terminal) ShowDeleteConfirm(id int64) {
	t.print(confirmStyle.Render(fmt.Sprintf("Excluir o pedido #%d? Esta ação não pode ser desfeita.", id)))
}

func (t *Terminal) HideDeleteConfirm() {}

func (t *Terminal) Alert(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.alerts, alertStyle.Render(errorStyle.Render("!")+" "+message))
}

func (t *Terminal) ShowToast(message string, kind notify.Kind) {
	if kind == notify.KindSuccess {
		t.print(successStyle.Render("✓") + " " + message)
		return
	}
	t.print(errorStyle.Render("✗") + " " + message)
}

func (t *Terminal) HideToast() {}

func (t *Terminal) ShowFieldError(field model.Field, message string) {
	t.print("  " + errorStyle.Render(field.Label()) + dimStyle.Render(" ("+field.String()+")") + ": " + message)
}

func (t *Terminal) HideFieldError(model.Field) {}

// RenderOrders renders the order table for the given listing.
func RenderOrders(orders []model.Order, listing controller.Listing) string {
	var b strings.Builder

	title := "Pedidos"
	if listing == controller.ListingPast {
		title = "Pedidos antigos"
	}
	b.WriteString(titleStyle.Render(title) + "  " + dimStyle.Render(fmt.Sprintf("(%d)", len(orders))))
	b.WriteString("\n")

	if len(orders) == 0 {
		b.WriteString(dimStyle.Render("Nenhum pedido encontrado."))
		return b.String()
	}

	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.FormatInt(o.IDValue(), 10),
			o.Produto,
			o.NomeCliente,
			FormatCurrency(o.ValorTotal),
			FormatCurrency(o.ValorSinal),
			FormatDateTime(o.DataHora),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "Produto", "Cliente", "Total", "Sinal", "Entrega").
		Rows(rows...)

	b.WriteString(tbl.String())
	return b.String()
}

// RenderForm renders the values loaded into the form.
func RenderForm(form model.Form) string {
	var b strings.Builder

	title := "Cadastrar Novo Pedido"
	if form.ID != nil {
		title = fmt.Sprintf("Editar Pedido #%d", *form.ID)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for _, field := range model.Fields {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(field.Label()+":"), form.Get(field)))
	}
	return strings.TrimRight(b.String(), "\n")
}

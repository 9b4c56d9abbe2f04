package model

import (
	"strconv"
	"time"

	"github.com/and161185/pedidos/internal/utils"
)

type Field int

const (
	FieldProduto Field = iota
	FieldQuantidade
	FieldValorTotal
	FieldDescricao
	FieldNomeCliente
	FieldContato
	FieldValorSinal
	FieldDataEntrega
	FieldHoraEntrega
)

var Fields = []Field{
	FieldProduto,
	FieldQuantidade,
	FieldValorTotal,
	FieldDescricao,
	FieldNomeCliente,
	FieldContato,
	FieldValorSinal,
	FieldDataEntrega,
	FieldHoraEntrega,
}

var fieldNames = map[Field]string{
	FieldProduto:     "produto",
	FieldQuantidade:  "quantidade",
	FieldValorTotal:  "valorTotal",
	FieldDescricao:   "descricao",
	FieldNomeCliente: "nomeCliente",
	FieldContato:     "contato",
	FieldValorSinal:  "valorSinal",
	FieldDataEntrega: "dataEntrega",
	FieldHoraEntrega: "horaEntrega",
}

var fieldLabels = map[Field]string{
	FieldProduto:     "Produto",
	FieldQuantidade:  "Quantidade",
	FieldValorTotal:  "Valor total",
	FieldDescricao:   "Descrição",
	FieldNomeCliente: "Nome do cliente",
	FieldContato:     "Contato",
	FieldValorSinal:  "Valor do sinal",
	FieldDataEntrega: "Data de entrega",
	FieldHoraEntrega: "Hora de entrega",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// Label is the human name used in validation messages.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return f.String()
}

// IsMonetary reports whether live validation watches the field.
func (f Field) IsMonetary() bool {
	return f == FieldValorTotal || f == FieldValorSinal
}

func ParseField(name string) (Field, bool) {
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// Form holds raw input values exactly as typed, plus the identifier of the
// order being edited.
type Form struct {
	ID     *int64
	values map[Field]string
}

func (f Form) Get(field Field) string {
	return f.values[field]
}

func (f *Form) Set(field Field, value string) {
	if f.values == nil {
		f.values = make(map[Field]string, len(Fields))
	}
	f.values[field] = value
}

func (f Form) Clone() Form {
	out := Form{}
	if f.ID != nil {
		id := *f.ID
		out.ID = &id
	}
	for k, v := range f.values {
		out.Set(k, v)
	}
	return out
}

// DataHora joins date and hour the way the API expects them.
func (f Form) DataHora() string {
	return f.Get(FieldDataEntrega) + "T" + f.Get(FieldHoraEntrega) + ":00"
}

// Order builds the payload to persist. Numeric fields follow parseFloat
// coercion, so garbage becomes 0. An unparseable date leaves DataHora zero.
func (f Form) Order(loc *time.Location) Order {
	dataHora, _ := ParseDateTime(f.DataHora(), loc)
	o := Order{
		Produto:     f.Get(FieldProduto),
		Quantidade:  utils.ParseNumber(f.Get(FieldQuantidade)),
		ValorTotal:  utils.ParseNumber(f.Get(FieldValorTotal)),
		Descricao:   f.Get(FieldDescricao),
		NomeCliente: f.Get(FieldNomeCliente),
		Contato:     f.Get(FieldContato),
		ValorSinal:  utils.ParseNumber(f.Get(FieldValorSinal)),
		DataHora:    dataHora,
	}
	if f.ID != nil {
		o = o.WithID(*f.ID)
	}
	return o
}

// FormFromOrder is the inverse of Form.Order for values the form produced.
func FormFromOrder(o Order) Form {
	var f Form
	if o.ID != nil {
		id := *o.ID
		f.ID = &id
	}
	f.Set(FieldProduto, o.Produto)
	f.Set(FieldQuantidade, formatNumber(o.Quantidade))
	f.Set(FieldValorTotal, formatNumber(o.ValorTotal))
	f.Set(FieldDescricao, o.Descricao)
	f.Set(FieldNomeCliente, o.NomeCliente)
	f.Set(FieldContato, o.Contato)
	f.Set(FieldValorSinal, formatNumber(o.ValorSinal))
	if !o.DataHora.IsZero() {
		f.Set(FieldDataEntrega, o.DataHora.Format(DateLayout))
		f.Set(FieldHoraEntrega, o.DataHora.Format(HourLayout))
	}
	return f
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

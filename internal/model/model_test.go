package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderJSONShape(t *testing.T) {
	order := Order{
		Produto:     "Bolo de cenoura",
		Quantidade:  2,
		ValorTotal:  150.5,
		Descricao:   "Cobertura de chocolate",
		NomeCliente: "Ana",
		Contato:     "11 99999-0000",
		ValorSinal:  40,
		DataHora:    NewDateTime(time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local)),
	}

	data, err := json.Marshal(order)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "id")
	assert.Equal(t, "2024-03-01T14:30:00", raw["dataHora"])
	assert.Equal(t, 150.5, raw["valorTotal"])
	assert.Equal(t, "Ana", raw["nomeCliente"])

	withID := order.WithID(7)
	data, err = json.Marshal(withID)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(7), raw["id"])
}

func TestDateTimeUnmarshalLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"seconds", `"2024-03-01T14:30:00"`},
		{"minutes", `"2024-03-01T14:30"`},
		{"fraction", `"2024-03-01T14:30:00.000"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateTime
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, "2024-03-01T14:30:00", d.String())
		})
	}

	var d DateTime
	assert.Error(t, json.Unmarshal([]byte(`"01/03/2024"`), &d))
}

func TestFormOrderRoundTrip(t *testing.T) {
	order := Order{
		Produto:     "Torta",
		Quantidade:  3,
		ValorTotal:  99.9,
		Descricao:   "Sem açúcar",
		NomeCliente: "João",
		Contato:     "joao@example.com",
		ValorSinal:  25,
		DataHora:    NewDateTime(time.Date(2030, 12, 24, 9, 15, 0, 0, time.Local)),
	}.WithID(12)

	form := FormFromOrder(order)
	assert.Equal(t, "2030-12-24", form.Get(FieldDataEntrega))
	assert.Equal(t, "09:15", form.Get(FieldHoraEntrega))
	assert.Equal(t, "99.9", form.Get(FieldValorTotal))

	assert.Equal(t, order, form.Order(time.Local))
}

func TestFormOrderCoercesNumbers(t *testing.T) {
	var form Form
	form.Set(FieldValorTotal, "abc")
	form.Set(FieldValorSinal, "")
	form.Set(FieldQuantidade, "2 unidades")

	order := form.Order(time.Local)
	assert.Zero(t, order.ValorTotal)
	assert.Zero(t, order.ValorSinal)
	assert.Equal(t, 2.0, order.Quantidade)
	assert.False(t, order.HasID())
	assert.True(t, order.DataHora.IsZero())
}

func TestFormCloneIsIndependent(t *testing.T) {
	var form Form
	id := int64(3)
	form.ID = &id
	form.Set(FieldProduto, "Pão")

	clone := form.Clone()
	clone.Set(FieldProduto, "Bolo")
	*clone.ID = 9

	assert.Equal(t, "Pão", form.Get(FieldProduto))
	assert.Equal(t, int64(3), *form.ID)
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("valorSinal")
	require.True(t, ok)
	assert.Equal(t, FieldValorSinal, f)
	assert.Equal(t, "Valor do sinal", f.Label())
	assert.True(t, f.IsMonetary())

	_, ok = ParseField("nope")
	assert.False(t, ok)
}

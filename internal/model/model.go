package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	HourLayout     = "15:04"
	DateTimeLayout = "2006-01-02T15:04:05"
)

var dateTimeLayouts = []string{
	DateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// DateTime is a wall-clock timestamp without zone, as the API exchanges it.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func ParseDateTime(s string, loc *time.Location) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return DateTime{Time: t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("parse date time %q", s)
}

func (d DateTime) String() string {
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(DateTimeLayout))
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDateTime(s, time.Local)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Order struct {
	ID          *int64   `json:"id,omitempty"`
	Produto     string   `json:"produto"`
	Quantidade  float64  `json:"quantidade"`
	ValorTotal  float64  `json:"valorTotal"`
	Descricao   string   `json:"descricao"`
	NomeCliente string   `json:"nomeCliente"`
	Contato     string   `json:"contato"`
	ValorSinal  float64  `json:"valorSinal"`
	DataHora    DateTime `json:"dataHora"`
}

// HasID reports whether the order was already persisted.
func (o Order) HasID() bool {
	return o.ID != nil
}

func (o Order) IDValue() int64 {
	if o.ID == nil {
		return 0
	}
	return *o.ID
}

func (o Order) WithID(id int64) Order {
	o.ID = &id
	return o
}

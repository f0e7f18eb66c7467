package entities

import (
	"bytes"
	"encoding/gob"

	"github.com/shopspring/decimal"
)

// Product принадлежит сервису товаров, здесь только читается
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
}

func (p *Product) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Product) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(p)
}

func init() {
	gob.Register(Product{})
}

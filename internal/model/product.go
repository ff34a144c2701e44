package model

import "encoding/json"

// Product is one catalog entry. Fields the backend does not interpret are
// passed through untouched in Raw.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`

	Raw json.RawMessage `json:"-"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type Alias Product
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Product(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type Alias Product
	return json.Marshal(Alias(p))
}

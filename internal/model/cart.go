package model

const CartVersion = 1

// Cart is the persisted browser cart. Version must equal CartVersion.
type Cart struct {
	Version int    `json:"version"`
	Mode    string `json:"mode"`
	Zip     string `json:"zip,omitempty"`
	Items   []Item `json:"items"`
}

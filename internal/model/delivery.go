package model

// DeliveryRule holds the delivery parameters for one postal code:
// minimum order value, flat fee and free-delivery threshold.
type DeliveryRule struct {
	Zip      string  `json:"zip" yaml:"zip"`
	MBW      float64 `json:"mbw" yaml:"mbw"`
	Fee      float64 `json:"fee" yaml:"fee"`
	FreeFrom float64 `json:"free_from" yaml:"free_from"`
}

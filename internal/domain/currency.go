package domain

// Currency is a row of the currency directory. Disabled currencies stay in
// the table but are rejected for conversion.
type Currency struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int32  `json:"decimal_places"`
	Enabled       bool   `json:"enabled"`
}

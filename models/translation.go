package models

// Translation is one localized string shown in the customer apps.
type Translation struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

package models

import "time"

type TemplateKind string

const (
	TemplateSMS      TemplateKind = "SMS"
	TemplateWhatsApp TemplateKind = "WHATSAPP"
	TemplateMail     TemplateKind = "MAIL"
)

var TemplateKinds = []TemplateKind{TemplateSMS, TemplateWhatsApp, TemplateMail}

// MessageTemplate is a message body with {{placeholder}} tokens filled in by the backend.
type MessageTemplate struct {
	ID        string       `json:"id"`
	Kind      TemplateKind `json:"kind"`
	Name      string       `json:"name"`
	Subject   string       `json:"subject,omitempty"`
	Body      string       `json:"body"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
}

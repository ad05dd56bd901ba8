// Package queue defines message payloads exchanged over the message broker.
package queue

// HidGeneratedEvent is published each time an identifier is generated.
// It carries the full denormalized record so downstream consumers can log
// or feed analytics without querying the primary database.
type HidGeneratedEvent struct {
	HistoryID    uint64 `json:"history_id"`
	Username     string `json:"username"`
	Country      string `json:"country"`
	CategoryName string `json:"category_name"`
	TypeCode     string `json:"type_code"`
	OrderValue   int    `json:"order_value"`
	HidValue     string `json:"hid_value"`
	BaseURL      string `json:"base_url"`
	FinalURL     string `json:"final_url"`
	GeneratedAt  string `json:"generated_at"`
}

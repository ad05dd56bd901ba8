package model

import "time"

// HistoryRecord is one generated identifier and the URL it was stamped
// onto.  Rows are append-only and denormalized: category name and type
// code are copied as strings, so later catalog edits never rewrite
// history.
//
// Fields:
//  ID           – primary key identifier.
//  CreatedAt    – when the identifier was generated.
//  BaseURL      – the URL as supplied by the user.
//  FinalURL     – the URL with the hid query parameter merged in.
//  Country      – country code selected on the form.
//  CategoryName – category name at generation time.
//  TypeCode     – component type code at generation time.
//  OrderValue   – the selected slot position.
//  HidValue     – the generated hid token.
type HistoryRecord struct {
	ID           uint64    // history.id
	CreatedAt    time.Time // history.created_at
	BaseURL      string    // history.base_url
	FinalURL     string    // history.final_url
	Country      string    // history.country
	CategoryName string    // history.category_name
	TypeCode     string    // history.type_code
	OrderValue   int       // history.order_value
	HidValue     string    // history.hid_value
}

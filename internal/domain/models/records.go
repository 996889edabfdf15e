package models

import "time"

// SKU is one row of the SKU master.
type SKU struct {
	ID          string   `json:"sku_id"`
	Category    string   `json:"category"`
	WeightKg    *float64 `json:"weight_kg"`
	CurrentSlot string   `json:"current_slot"`
	TempReq     string   `json:"temp_req"`
}

// Order is one order transaction line.
type Order struct {
	ID        string    `json:"order_id"`
	SKUID     string    `json:"sku_id"`
	Timestamp time.Time `json:"order_timestamp"`
}

// PickerMove is one picker movement log entry.
type PickerMove struct {
	PickerID  string    `json:"picker_id"`
	OrderID   string    `json:"order_id"`
	SKUID     string    `json:"sku_id"`
	DistanceM *float64  `json:"travel_distance_m"`
	Timestamp time.Time `json:"order_timestamp"`
}

// Slot is a warehouse slot and the temperature zone it provides.
type Slot struct {
	ID       string `json:"slot_id"`
	TempZone string `json:"temp_zone"`
}

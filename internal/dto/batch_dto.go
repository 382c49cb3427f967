package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateBatchRequest struct {
	BatchNumber    string    `json:"batch_number"    validate:"required,max=100"`
	ProductName    string    `json:"product_name"    validate:"required,max=200"`
	ProductType    string    `json:"product_type"    validate:"required,oneof=drug consumable"`
	ManufacturerID string    `json:"manufacturer_id" validate:"required,uuid"`
	ProductionDate time.Time `json:"production_date" validate:"required"`
	ExpiryDate     time.Time `json:"expiry_date"     validate:"required"`
	Quantity       int       `json:"quantity"        validate:"required,gt=0"`
}

type UpdateBatchStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_production in_transit in_stock expired depleted"`
}

// BatchFilter carries the optional query parameters of GET /v1/batches.
type BatchFilter struct {
	ManufacturerID string `form:"manufacturer_id" validate:"omitempty,uuid"`
	Status         string `form:"status"          validate:"omitempty,oneof=in_production in_transit in_stock expired depleted"`
	QualityStatus  string `form:"quality_status"  validate:"omitempty,oneof=pending passed failed"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BatchResponse struct {
	ID               string `json:"id"`
	BatchNumber      string `json:"batch_number"`
	ProductName      string `json:"product_name"`
	ProductType      string `json:"product_type"`
	ManufacturerID   string `json:"manufacturer_id"`
	ManufacturerName string `json:"manufacturer_name"`
	ProductionDate   string `json:"production_date"`
	ExpiryDate       string `json:"expiry_date"`
	Quantity         int    `json:"quantity"`
	Status           string `json:"status"`
	QualityStatus    string `json:"quality_status"`
	CreatedAt        string `json:"created_at"`
}

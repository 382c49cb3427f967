package dto

import "time"

type CreateQualityReportRequest struct {
	BatchID  string    `json:"batch_id"  validate:"required,uuid"`
	TestDate time.Time `json:"test_date" validate:"required"`
	TestType string    `json:"test_type" validate:"required,max=100"`
	Result   string    `json:"result"    validate:"required,oneof=pending passed failed"`
	Notes    string    `json:"notes"     validate:"max=2000"`
	TestedBy string    `json:"tested_by" validate:"required,max=100"`
}

type QualityReportResponse struct {
	ID          string `json:"id"`
	BatchID     string `json:"batch_id"`
	BatchNumber string `json:"batch_number"`
	ProductName string `json:"product_name"`
	TestDate    string `json:"test_date"`
	TestType    string `json:"test_type"`
	Result      string `json:"result"`
	Notes       string `json:"notes"`
	TestedBy    string `json:"tested_by"`
	CreatedAt   string `json:"created_at"`
}

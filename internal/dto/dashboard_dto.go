package dto

type DashboardStatsResponse struct {
	TotalBatches        int64 `json:"total_batches"`
	TotalManufacturers  int64 `json:"total_manufacturers"`
	TotalInventoryItems int64 `json:"total_inventory_items"`
	ActiveAlerts        int64 `json:"active_alerts"`
	PendingQualityTests int64 `json:"pending_quality_tests"`
}

type TraceabilityResponse struct {
	Batch          BatchResponse           `json:"batch"`
	Manufacturer   *ManufacturerResponse   `json:"manufacturer"`
	Inventory      *InventoryLineResponse  `json:"inventory"`
	QualityReports []QualityReportResponse `json:"quality_reports"`
}

package dto

type RegisterInventoryRequest struct {
	BatchID  string `json:"batch_id" validate:"required,uuid"`
	Location string `json:"location" validate:"required,max=200"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

// AdjustStockRequest: positive delta replenishes, negative consumes.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"ne=0,min=-1000000000,max=1000000000"`
}

type AdjustStockResponse struct {
	InventoryID string `json:"inventory_id"`
	NewStock    int    `json:"new_stock"`
}

type InventoryLineResponse struct {
	ID           string `json:"id"`
	BatchID      string `json:"batch_id"`
	BatchNumber  string `json:"batch_number"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	InitialStock int    `json:"initial_stock"`
	ExpiryDate   string `json:"expiry_date"`
	Location     string `json:"location"`
	LastUpdated  string `json:"last_updated"`
}

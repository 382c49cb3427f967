package dto

type CreateManufacturerRequest struct {
	Name          string `json:"name"           validate:"required,min=2,max=200"`
	ContactEmail  string `json:"contact_email"  validate:"required,email"`
	ContactPhone  string `json:"contact_phone"  validate:"required,min=5,max=30"`
	Address       string `json:"address"        validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
}

type ManufacturerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	Address       string `json:"address"`
	LicenseNumber string `json:"license_number"`
	CreatedAt     string `json:"created_at"`
}

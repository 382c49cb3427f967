package service

import (
	"time"

	"github.com/Lahari-104/Mediguard/internal/dto"
	"github.com/Lahari-104/Mediguard/internal/model"
)

const dateLayout = "2006-01-02"

func toManufacturerResponse(m *model.Manufacturer) dto.ManufacturerResponse {
	return dto.ManufacturerResponse{
		ID:            m.ID.String(),
		Name:          m.Name,
		ContactEmail:  m.ContactEmail,
		ContactPhone:  m.ContactPhone,
		Address:       m.Address,
		LicenseNumber: m.LicenseNumber,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}

func toBatchResponse(b *model.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:               b.ID.String(),
		BatchNumber:      b.BatchNumber,
		ProductName:      b.ProductName,
		ProductType:      b.ProductType,
		ManufacturerID:   b.ManufacturerID.String(),
		ManufacturerName: b.ManufacturerName,
		ProductionDate:   b.ProductionDate.Format(dateLayout),
		ExpiryDate:       b.ExpiryDate.Format(dateLayout),
		Quantity:         b.Quantity,
		Status:           string(b.Status),
		QualityStatus:    string(b.QualityStatus),
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}

func toInventoryLineResponse(l *model.InventoryLine) dto.InventoryLineResponse {
	return dto.InventoryLineResponse{
		ID:           l.ID.String(),
		BatchID:      l.BatchID.String(),
		BatchNumber:  l.BatchNumber,
		ProductName:  l.ProductName,
		CurrentStock: l.CurrentStock,
		InitialStock: l.InitialStock,
		ExpiryDate:   l.ExpiryDate.Format(dateLayout),
		Location:     l.Location,
		LastUpdated:  l.LastUpdated.Format(time.RFC3339),
	}
}

func toQualityReportResponse(r *model.QualityReport) dto.QualityReportResponse {
	return dto.QualityReportResponse{
		ID:          r.ID.String(),
		BatchID:     r.BatchID.String(),
		BatchNumber: r.BatchNumber,
		ProductName: r.ProductName,
		TestDate:    r.TestDate.Format(dateLayout),
		TestType:    r.TestType,
		Result:      string(r.Result),
		Notes:       r.Notes,
		TestedBy:    r.TestedBy,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func toAlertResponse(a *model.Alert) dto.AlertResponse {
	resp := dto.AlertResponse{
		ID:          a.ID.String(),
		AlertType:   string(a.AlertType),
		Title:       a.Title,
		Message:     a.Message,
		BatchNumber: a.BatchNumber,
		Severity:    string(a.Severity),
		IsRead:      a.IsRead,
		EmailSent:   a.EmailSent,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
	if a.BatchID != nil {
		id := a.BatchID.String()
		resp.BatchID = &id
	}
	return resp
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Role:    string(u.Role),
		Picture: u.Picture,
	}
}

package request

import (
	"strings"

	"transfer-portal/internal/domain/ride"

	"github.com/google/uuid"
)

type AssignDriverRequest struct {
	SupplierID uuid.UUID  `json:"supplier_id" binding:"required"`
	DriverID   uuid.UUID  `json:"driver_id" binding:"required"`
	VehicleID  *uuid.UUID `json:"vehicle_id,omitempty"`
}

type AdvanceRideRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r AdvanceRideRequest) StatusDomain() ride.Status {
	return ride.Status(strings.ToUpper(r.Status))
}

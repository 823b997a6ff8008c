package models

import "time"

const (
	DriverActive   = "active"
	DriverInactive = "inactive"
)

type Driver struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	VehicleModel string    `json:"vehicleModel"`
	VehiclePlate string    `json:"vehiclePlate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

package services

import (
	"context"
	"strings"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
	"quarhire/internal/utils"
)

type DriverService struct {
	Drivers DriverStore
}

type DriverInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleModel string `json:"vehicleModel"`
	VehiclePlate string `json:"vehiclePlate"`
	Status       string `json:"status"`
}

func (in DriverInput) normalize() (models.Driver, error) {
	var fe fieldErrors
	fe.require(field{"name", in.Name}, field{"phone", in.Phone})
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.DriverActive
	}
	fe.invalidIf(status != models.DriverActive && status != models.DriverInactive, "status")
	if err := fe.err(); err != nil {
		return models.Driver{}, err
	}
	return models.Driver{
		Name:         utils.NormalizeSpace(in.Name),
		Phone:        utils.NormalizePhone(in.Phone),
		VehicleModel: utils.NormalizeSpace(in.VehicleModel),
		VehiclePlate: strings.ToUpper(utils.NormalizeSpace(in.VehiclePlate)),
		Status:       status,
	}, nil
}

func (s DriverService) List(ctx context.Context, status string) ([]models.Driver, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != models.DriverActive && status != models.DriverInactive {
		return nil, domain.ValidationError{Field: "status", Msg: "must be active or inactive"}
	}
	return s.Drivers.List(ctx, status)
}

func (s DriverService) Get(ctx context.Context, id int64) (models.Driver, error) {
	if id <= 0 {
		return models.Driver{}, domain.ValidationError{Field: "id", Msg: "invalid driver id"}
	}
	return s.Drivers.GetByID(ctx, id)
}

func (s DriverService) Create(ctx context.Context, in DriverInput) (models.Driver, error) {
	d, err := in.normalize()
	if err != nil {
		return models.Driver{}, err
	}
	id, err := s.Drivers.Create(ctx, d)
	if err != nil {
		return models.Driver{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "driver", "create", "driver created")
	return s.Drivers.GetByID(ctx, id)
}

func (s DriverService) Update(ctx context.Context, id int64, in DriverInput) (models.Driver, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Driver{}, err
	}
	d, err := in.normalize()
	if err != nil {
		return models.Driver{}, err
	}
	d.ID = id
	if err := s.Drivers.Update(ctx, d); err != nil {
		return models.Driver{}, err
	}
	return s.Drivers.GetByID(ctx, id)
}

func (s DriverService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid driver id"}
	}
	return s.Drivers.Delete(ctx, id)
}

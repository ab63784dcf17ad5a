package service

import (
	"fmt"

	"hostelhub/model"
	"hostelhub/platform"
)

type RoomService struct {
}

func (r *RoomService) Create(number string, floor, capacity int) (*model.Room, error) {
	if number == "" || capacity <= 0 {
		return nil, fmt.Errorf("%w: missing number or capacity", ErrValidation)
	}

	room := model.Room{
		Number:   number,
		Floor:    floor,
		Capacity: capacity,
	}
	if err := platform.DB.Create(&room).Error; err != nil {
		return nil, fmt.Errorf("%w: room %s", ErrConflict, number)
	}
	return &room, nil
}

func (r *RoomService) List() ([]model.Room, error) {
	var rooms []model.Room
	if err := platform.DB.Order("number ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

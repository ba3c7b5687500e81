package dto

import "fleet-sim-service/internal/domain"

type ListDriversResponse struct {
	Drivers []*domain.Driver `json:"drivers"`
}

type ListRoutesResponse struct {
	Routes []*domain.Route `json:"routes"`
}

type ListOrdersResponse struct {
	Orders []*domain.Order `json:"orders"`
}

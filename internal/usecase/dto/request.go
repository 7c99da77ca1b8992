package dto

import "github.com/structure-inspection/internal/domain"

// ListStructuresRequest - выборка структур аккаунта
type ListStructuresRequest struct {
	Statuses []string `query:"status" validate:"omitempty,dive,oneof=draft location_completed admin_completed geometric_completed ratings_in_progress submitted approved requires_inspection maintenance_needed"`
	Limit    int      `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset   int      `query:"offset" validate:"omitempty,min=0"`
}

// LocationRequest - экран локации; коды идут в идентификационный номер
type LocationRequest struct {
	StateCode       string   `json:"state_code" validate:"required,len=2,alpha"`
	DistrictCode    string   `json:"district_code" validate:"required,len=2,number"`
	CityCode        string   `json:"city_name" validate:"required,max=32"`
	LocationCode    string   `json:"location_code" validate:"required,max=32"`
	TypeOfStructure string   `json:"type_of_structure" validate:"required"`
	Latitude        *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Address         string   `json:"address" validate:"omitempty,max=512"`
}

// AdministrationRequest - экран административных данных
type AdministrationRequest struct {
	ClientName    string `json:"client_name" validate:"required,max=255"`
	CustodianName string `json:"custodian" validate:"omitempty,max=255"`
	EngineerName  string `json:"engineer_designation" validate:"omitempty,max=255"`
	ContactDetail string `json:"contact_details" validate:"omitempty,max=64"`
	Email         string `json:"email_id" validate:"required,email"`
}

// GeometricRequest - экран геометрии
type GeometricRequest struct {
	NumberOfFloors int      `json:"number_of_floors" validate:"required,min=1,max=300"`
	Width          *float64 `json:"structure_width" validate:"omitempty,gt=0"`
	Length         *float64 `json:"structure_length" validate:"omitempty,gt=0"`
	Height         *float64 `json:"structure_height" validate:"omitempty,gt=0"`
}

// FloorRequest - добавление этажа
type FloorRequest struct {
	FloorNumber int      `json:"floor_number" validate:"required,min=1"`
	FloorType   string   `json:"floor_type" validate:"required,max=64"`
	Label       string   `json:"floor_label_name" validate:"omitempty,max=128"`
	Height      *float64 `json:"floor_height" validate:"omitempty,gt=0"`
	Area        *float64 `json:"total_area_sq_mts" validate:"omitempty,gt=0"`
	Notes       string   `json:"floor_notes" validate:"omitempty,max=2000"`
}

// FlatRequest - добавление помещения
type FlatRequest struct {
	FlatNumber      string   `json:"flat_number" validate:"required,max=32"`
	FlatType        string   `json:"flat_type" validate:"required,oneof=1bhk 2bhk 3bhk 4bhk studio penthouse shop office other"`
	Area            *float64 `json:"area_sq_mts" validate:"omitempty,gt=0"`
	Direction       string   `json:"direction_facing" validate:"omitempty,max=32"`
	OccupancyStatus string   `json:"occupancy_status" validate:"omitempty,max=32"`
	Notes           string   `json:"flat_notes" validate:"omitempty,max=2000"`
}

// FlatRatingsRequest - разреженное обновление компонентов одного помещения
type FlatRatingsRequest struct {
	domain.FlatRatingUpdate
}

// BulkRatingsRequest - пакет обновлений по номерам этажей и помещений
type BulkRatingsRequest struct {
	Floors []domain.BulkFloorUpdate `json:"floors" validate:"required,min=1,dive"`
}

// NearbyRequest - поиск своих структур по соседним ячейкам geohash
type NearbyRequest struct {
	Lat       float64 `query:"lat" validate:"min=-90,max=90"`
	Lon       float64 `query:"lon" validate:"min=-180,max=180"`
	Precision uint    `query:"precision" validate:"omitempty,min=1,max=12"`
	Limit     int     `query:"limit" validate:"omitempty,min=1,max=500"`
}

// IdentityCheckRequest - проверка номера на корректность и занятость
type IdentityCheckRequest struct {
	IdentityNumber string `json:"structural_identity_number" validate:"required"`
}

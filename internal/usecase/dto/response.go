package dto

import (
	"github.com/google/uuid"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/pkg/identity"
)

// StructureListResponse - список структур
type StructureListResponse struct {
	Structures []*domain.Structure `json:"structures"`
	Total      int                 `json:"total"`
}

// FlatRatingsResponse - помещение после пересчёта и список применённых компонентов
type FlatRatingsResponse struct {
	Flat    *domain.Flat `json:"flat"`
	Applied []string     `json:"applied"`
}

// BulkAcceptedResponse - пакет поставлен в очередь
type BulkAcceptedResponse struct {
	StructureID uuid.UUID `json:"structure_id"`
	Stream      string    `json:"stream"`
}

// SubmitResponse - итог отправки структуры
type SubmitResponse struct {
	UID      uuid.UUID              `json:"uid"`
	Status   domain.StructureStatus `json:"status"`
	Progress domain.Progress        `json:"progress"`
}

// NearbyStructure - структура рядом с точкой
type NearbyStructure struct {
	UID            uuid.UUID              `json:"uid"`
	IdentityNumber string                 `json:"structural_identity_number"`
	Status         domain.StructureStatus `json:"status"`
	Lat            float64                `json:"lat"`
	Lon            float64                `json:"lon"`
	Geohash        string                 `json:"geohash"`
	DistanceKm     float64                `json:"distance_km"`
}

// NearbyResponse - структуры по соседним ячейкам geohash, ближайшие первыми
type NearbyResponse struct {
	Structures []NearbyStructure `json:"structures"`
	Cells      []string          `json:"cells"`
	Total      int               `json:"total"`
}

// IdentityResponse - разбор номера по полям
type IdentityResponse struct {
	IdentityNumber   string              `json:"structural_identity_number"`
	Components       identity.Components `json:"components"`
	TypesOfStructure []string            `json:"types_of_structure,omitempty"`
}

// IdentityCheckResponse - номер корректен и свободен
type IdentityCheckResponse struct {
	IdentityNumber string              `json:"structural_identity_number"`
	Components     identity.Components `json:"components"`
	Available      bool                `json:"available"`
}

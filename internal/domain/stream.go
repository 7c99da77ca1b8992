package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamBulkRatings     = "stream:structure:ratings:bulk"
	StreamBulkRatingsDone = "stream:structure:ratings:done"
)

// BulkRatingEvent - входящий пакет обновления рейтингов
type BulkRatingEvent struct {
	StructureID uuid.UUID         `json:"structure_id"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	Floors      []BulkFloorUpdate `json:"floors"`
}

// BulkRatingDoneEvent - результат применения пакета
type BulkRatingDoneEvent struct {
	StructureID   uuid.UUID `json:"structure_id"`
	UpdatedFloors int       `json:"updated_floors"`
	UpdatedFlats  int       `json:"updated_flats"`
	Errors        []string  `json:"errors,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

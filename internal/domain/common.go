package domain

import "time"

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// Statistics - сводка по структурам аккаунта
type Statistics struct {
	Structures  StructureStats `json:"structures"`
	Flats       FlatStats      `json:"flats"`
	LastUpdated time.Time      `json:"last_updated"`
}

// StructureStats статистика по структурам
type StructureStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// FlatStats статистика по помещениям; неоценённые попадают в ключ "unrated"
type FlatStats struct {
	Total    int            `json:"total"`
	Rated    int            `json:"rated"`
	ByHealth map[string]int `json:"by_health"`
}

// UnratedHealthKey - ключ для помещений без комбинированной оценки
const UnratedHealthKey = "unrated"

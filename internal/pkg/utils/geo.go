package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
)

const (
	earthRadiusKm = 6371.0

	// MaxGeohashPrecision - максимальная длина geohash, которую хранит сервис
	MaxGeohashPrecision = 12
)

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Geohash возвращает geohash точки полной точности
func Geohash(lat, lon float64) string {
	return geohash.EncodeWithPrecision(lat, lon, MaxGeohashPrecision)
}

// GeohashPrefix возвращает geohash нужной точности (1..12)
func GeohashPrefix(lat, lon float64, precision uint) string {
	if precision == 0 {
		precision = 1
	}
	if precision > MaxGeohashPrecision {
		precision = MaxGeohashPrecision
	}
	return geohash.EncodeWithPrecision(lat, lon, precision)
}

// GeohashNeighbors возвращает ячейку точки и 8 соседних ячеек той же точности.
func GeohashNeighbors(lat, lon float64, precision uint) []string {
	center := GeohashPrefix(lat, lon, precision)
	return append([]string{center}, geohash.Neighbors(center)...)
}

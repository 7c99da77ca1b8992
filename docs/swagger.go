// Package docs Structure Inspection API.
//
// Сервис учёта обследований зданий. Структура заполняется по экранам
// (локация, администрация, геометрия), делится на этажи и помещения,
// у каждого помещения 4 конструктивных и 11 неконструктивных компонентов
// с рейтингом 1..5.
//
// Основные возможности:
// - Выдача и разбор 17-символьного идентификационного номера
// - Пересчёт средних, состояния и приоритета при каждой записи рейтинга
// - Пакетное обновление рейтингов с частичным успехом
// - Прогресс заполнения и отправка структуры
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
//	SecurityDefinitions:
//	owner:
//	     type: apiKey
//	     name: X-User-ID
//	     in: header
//
// swagger:meta
package docs

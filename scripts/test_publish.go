//go:build ignore

// Публикует тестовый пакет рейтингов в stream:structure:ratings:bulk и ждёт
// результат воркера в stream:structure:ratings:done.
//
//	go run scripts/test_publish.go -structure <uid> -owner <uid> -floor 1 -flat 101 -rating 4
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/structure-inspection/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	structureFlag := flag.String("structure", "", "Structure UID")
	ownerFlag := flag.String("owner", "", "Owner UID (X-User-ID)")
	floorNumber := flag.Int("floor", 1, "Floor number")
	flatNumber := flag.String("flat", "101", "Flat number")
	rating := flag.Int("rating", 4, "Rating for every component, 1..5")
	flag.Parse()

	structureID, err := uuid.Parse(*structureFlag)
	if err != nil {
		log.Fatalf("Invalid -structure: %v", err)
	}
	ownerID, err := uuid.Parse(*ownerFlag)
	if err != nil {
		log.Fatalf("Invalid -owner: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	structural := make(map[string]domain.ComponentUpdate, len(domain.StructuralComponents))
	for _, name := range domain.StructuralComponents {
		structural[name] = domain.ComponentUpdate{Rating: ptr(*rating), ConditionComment: "test_publish"}
	}
	nonStructural := make(map[string]domain.ComponentUpdate, len(domain.NonStructuralComponents))
	for _, name := range domain.NonStructuralComponents {
		nonStructural[name] = domain.ComponentUpdate{Rating: ptr(*rating)}
	}

	event := domain.BulkRatingEvent{
		StructureID: structureID,
		OwnerID:     ownerID,
		Floors: []domain.BulkFloorUpdate{{
			FloorNumber: *floorNumber,
			Flats: []domain.BulkFlatUpdate{{
				FlatNumber:    *flatNumber,
				Structural:    structural,
				NonStructural: nonStructural,
			}},
		}},
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamBulkRatings,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamBulkRatings)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Structure: %s, floor %d, flat %s\n", structureID, *floorNumber, *flatNumber)

	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamBulkRatingsDone)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{domain.StreamBulkRatingsDone, "0"},
				Count:   100,
				Block:   -1,
			}).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var done domain.BulkRatingDoneEvent
					if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
						continue
					}

					if done.StructureID == structureID {
						fmt.Printf("\nResponse received (%s)\n", msg.ID)
						pretty, _ := json.MarshalIndent(done, "", "  ")
						fmt.Printf("%s\n", pretty)
						return
					}
				}
			}
		}
	}
}

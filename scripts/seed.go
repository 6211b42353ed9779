package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/beautrip/backend/internal/adapters/database"
	"github.com/beautrip/backend/internal/adapters/search"
	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/infrastructure/clients/postgres"
	"github.com/beautrip/backend/internal/infrastructure/clients/typesense"
	"github.com/beautrip/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchRepo *search.TypesenseAdapter
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err == nil {
		if err := tsClient.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: failed to init search schema: %v", err)
		}
		searchRepo = search.NewTypesenseAdapter(tsClient)
	}

	hospitalRepo := database.NewHospitalAdapter(pgClient)
	treatmentRepo := database.NewTreatmentAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				favorites,
				reviews,
				posts,
				schedule_entries,
				travel_periods,
				treatments,
				hospitals
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	hospitals := []*entities.Hospital{
		{
			ID:   uuid.NewString(),
			Name: "Seoul Aesthetic Center",
			Address: entities.Address{
				Street:  "123 Apgujeong-ro",
				City:    "Seoul",
				Country: "South Korea",
			},
			Location:    entities.Location{Latitude: 37.5274, Longitude: 127.0286},
			PhoneNumber: "+82-2-555-0100",
			Rating:      8.8,
			ReviewCount: 412,
			Tags:        []string{"english_speaking", "airport_pickup"},
			IsActive:    true,
		},
		{
			ID:   uuid.NewString(),
			Name: "Gangnam Beauty Clinic",
			Address: entities.Address{
				Street:  "45 Teheran-ro",
				City:    "Seoul",
				Country: "South Korea",
			},
			Location:    entities.Location{Latitude: 37.5045, Longitude: 127.0498},
			PhoneNumber: "+82-2-555-0200",
			Rating:      8.2,
			ReviewCount: 156,
			Tags:        []string{"english_speaking"},
			IsActive:    true,
		},
	}

	for _, hospital := range hospitals {
		now := time.Now()
		hospital.CreatedAt = now
		hospital.UpdatedAt = now
		if err := hospitalRepo.Create(ctx, hospital); err != nil {
			log.Fatalf("Failed to seed hospital %s: %v", hospital.Name, err)
		}
	}
	log.Printf("Seeded %d hospitals", len(hospitals))

	treatments := []*entities.Treatment{
		{
			Name:          "Rhinoplasty",
			HospitalID:    hospitals[0].ID,
			CategoryLarge: "Surgery",
			CategoryMid:   "Nose",
			Price:         3200,
			Currency:      "USD",
			Rating:        8.9,
			ReviewCount:   84,
			RecoveryDays:  7,
			Tags:          []string{"popular"},
			IsActive:      true,
		},
		{
			Name:          "Rhinoplasty",
			HospitalID:    hospitals[1].ID,
			CategoryLarge: "Surgery",
			CategoryMid:   "Nose",
			Price:         2800,
			Currency:      "USD",
			Rating:        8.3,
			ReviewCount:   31,
			RecoveryDays:  7,
			IsActive:      true,
		},
		{
			Name:          "Botox",
			HospitalID:    hospitals[0].ID,
			CategoryLarge: "Non-surgical",
			CategoryMid:   "Wrinkle",
			Price:         180,
			Currency:      "USD",
			Rating:        8.5,
			ReviewCount:   203,
			RecoveryDays:  0,
			Tags:          []string{"popular", "lunch_break"},
			IsActive:      true,
		},
		{
			Name:          "Dermal Filler",
			HospitalID:    hospitals[1].ID,
			CategoryLarge: "Non-surgical",
			CategoryMid:   "Wrinkle",
			Price:         350,
			Currency:      "USD",
			Rating:        7.9,
			ReviewCount:   58,
			RecoveryDays:  1,
			IsActive:      true,
		},
	}

	for _, treatment := range treatments {
		treatment.ID = uuid.NewString()
		now := time.Now()
		treatment.CreatedAt = now
		treatment.UpdatedAt = now
		if err := treatmentRepo.Create(ctx, treatment); err != nil {
			log.Fatalf("Failed to seed treatment %s: %v", treatment.Name, err)
		}
	}
	log.Printf("Seeded %d treatments", len(treatments))

	if searchRepo != nil {
		if err := searchRepo.BulkIndex(ctx, treatments); err != nil {
			log.Printf("Warning: failed to index seeded treatments: %v", err)
		} else {
			log.Println("Indexed seeded treatments in Typesense")
		}
	}

	log.Println("Seeding complete")
}

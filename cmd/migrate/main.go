package main

import (
	"flag"
	"log"
	"os"

	"device-assistant-ai/internal/model"
	"device-assistant-ai/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	report := flag.Bool("report", false, "print corpus statistics after migrating")
	flag.Parse()

	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(os.Getenv("DB_CONNECTION_STRING"), false, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Extensions
	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
		log.Fatalf("Error: pgvector extension is required: %v", err)
	}

	// 4. AutoMigrate
	models := []interface{}{
		&model.Brand{},
		&model.DeviceType{},
		&model.Device{},
		&model.Pdf{},
		&model.PdfPage{},
		&model.PdfParagraph{},
		&model.PdfImage{},
		&model.PdfChunk{},
		&model.PdfChunkParagraph{},
		&model.PdfChunkImage{},
		&model.Conversation{},
		&model.RequestResponsePair{},
	}
	log.Printf("Step 2: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Migration complete.")

	if *report {
		printReport(db)
	}
}

func printReport(db *gorm.DB) {
	r, err := collectReport(db)
	if err != nil {
		log.Fatalf("Error: Report failed: %v", err)
	}

	log.Printf("Chunks: %d (%d embedded)", r.Chunks, r.Embedded)
	log.Printf("Images: %d (%d with alt text)", r.Images, r.WithAlt)
	for _, img := range r.Samples {
		if img.Err != nil {
			log.Printf("Image %d: unreadable metadata: %v", img.Id, img.Err)
			continue
		}
		log.Printf("Image %d: bbox=%v alt=%q", img.Id, img.Meta.BoundingBox, img.Meta.AltText)
	}
}

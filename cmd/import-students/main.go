package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stemsi/academia-backend/internal/config"
	"github.com/stemsi/academia-backend/internal/database"
	"github.com/stemsi/academia-backend/internal/logger"
	"github.com/stemsi/academia-backend/internal/repository"
	"github.com/stemsi/academia-backend/internal/roster"
	"github.com/stemsi/academia-backend/internal/service"
	"github.com/stemsi/academia-backend/internal/validator"
)

func main() {
	var (
		file   string
		dryRun bool
	)
	flag.StringVar(&file, "file", "", "xlsx workbook with Name, Std and Roll Number columns")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate the sheet without writing to the database")
	flag.Parse()

	if file == "" {
		fmt.Println("Usage: import-students -file students.xlsx [-dry-run]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to open workbook")
	}
	defer f.Close()

	entries, err := roster.Import(f)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read workbook")
	}

	fmt.Printf("=== Importing %d rows from %s ===\n", len(entries), file)

	var studentService *service.StudentService
	if !dryRun {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		studentService = service.NewStudentService(repository.NewPostgresStore(pool), log)
	}

	imported, skipped := 0, 0
	for _, e := range entries {
		if e.Err == nil {
			if fields := validator.Validate(&e.Student); fields != nil {
				e.Err = errors.New(joinFields(fields))
			}
		}
		if e.Err != nil {
			fmt.Printf("Row %d skipped: %v\n", e.Line, e.Err)
			skipped++
			continue
		}
		if dryRun {
			imported++
			continue
		}

		// One unit of work per row so a bad row does not undo the others.
		student, err := studentService.Create(ctx, e.Student)
		if err != nil {
			fmt.Printf("Row %d (%s, std %d): %v\n", e.Line, e.Student.Name, e.Student.Std, err)
			skipped++
			continue
		}
		imported++
		if imported%10 == 0 {
			fmt.Printf("Imported %d students...\n", imported)
		}
		log.Debug().Int("row", e.Line).Int("student_id", student.ID).Msg("row imported")
	}

	verb := "Imported"
	if dryRun {
		verb = "Validated"
	}
	fmt.Printf("\n%s %d/%d rows (%d skipped).\n", verb, imported, len(entries), skipped)
}

func joinFields(fields map[string]string) string {
	msgs := make([]string, 0, len(fields))
	for _, msg := range fields {
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"job-tracker/internal/config"
	"job-tracker/internal/domain/model"
	"job-tracker/internal/infra/db"
	"job-tracker/internal/infra/logging"
	"job-tracker/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	flag.Parse()

	// ---- Config ----
	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer store.Close()

	jobUC := usecase.NewJobUseCase(store.Jobs, store.Tx, logger)

	// If jobs already exist, do nothing
	jobs, err := jobUC.List(ctx)
	if err != nil {
		log.Fatalf("list jobs: %v", err)
	}
	if len(jobs) > 0 {
		fmt.Printf("%d jobs already present. No changes.\n", len(jobs))
		for _, j := range jobs {
			fmt.Printf("  - %s @ %s [%s]\n", j.JobTitle, j.Company, j.Status)
		}
		return
	}

	day := func(daysAgo int) *string {
		s := time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
		return &s
	}
	str := func(s string) *string { return &s }

	seed := []model.JobInput{
		{JobTitle: "Backend Engineer", Company: "Acme", Position: "Senior", ApplicationDate: day(21), JobLink: str("https://acme.example.com/careers/backend"), Location: str("Remote")},
		{JobTitle: "Platform Engineer", Company: "Globex", Position: "Mid-level", ApplicationDate: day(14), Status: str("Interview"), Note: str("Recruiter call went well")},
		{JobTitle: "Site Reliability Engineer", Company: "Initech", Position: "Staff", ApplicationDate: day(9), Status: str("Rejected"), Location: str("Berlin")},
		{JobTitle: "Go Developer", Company: "Umbrella", Position: "Senior", ApplicationDate: day(5), Status: str("Offer")},
		{JobTitle: "Software Engineer", Company: "Hooli", Position: "Junior", ApplicationDate: day(1)},
	}

	for _, in := range seed {
		j, err := jobUC.Create(ctx, in)
		if err != nil {
			log.Fatalf("create job %q: %v", in.JobTitle, err)
		}
		fmt.Printf("seeded: %s @ %s (id=%s, status=%s, applied=%s)\n", j.JobTitle, j.Company, j.ID, j.Status, j.FormattedDate())
	}

	fmt.Println("Seeding complete.")
}

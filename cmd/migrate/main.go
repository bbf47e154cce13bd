package main

import (
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/dreamsbydutch/gshl-lineups/internal/models"
	"github.com/dreamsbydutch/gshl-lineups/pkg/config"
	"github.com/dreamsbydutch/gshl-lineups/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func dropTables(db *database.DB) error {
	return db.Migrator().DropTable(
		&models.LineupRun{},
		&models.PlayerDay{},
	)
}

// seedData inserts one sample team-day roster for local development.
func seedData(db *database.DB) error {
	date := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	rating := func(v float64) *float64 { return &v }
	pos := func(ps ...models.Position) datatypes.JSONSlice[models.Position] {
		return datatypes.JSONSlice[models.Position](ps)
	}

	roster := []models.PlayerDay{
		{PlayerID: "p-3301", TeamID: "HAM", Date: date, Positions: pos(models.PositionLW), PosGroup: "F", DailyPos: models.SlotLW, GamesPlayed: 1, GamesStarted: 1, Rating: rating(75.5)},
		{PlayerID: "p-3302", TeamID: "HAM", Date: date, Positions: pos(models.PositionLW), PosGroup: "F", DailyPos: models.SlotLW, GamesPlayed: 1, GamesStarted: 1, Rating: rating(68.2)},
		{PlayerID: "p-3303", TeamID: "HAM", Date: date, Positions: pos(models.PositionC), PosGroup: "F", DailyPos: models.SlotC, GamesPlayed: 1, GamesStarted: 1, Rating: rating(82.3)},
		{PlayerID: "p-3304", TeamID: "HAM", Date: date, Positions: pos(models.PositionC), PosGroup: "F", DailyPos: models.SlotC, GamesPlayed: 1, GamesStarted: 1, Rating: rating(71.9)},
		{PlayerID: "p-3305", TeamID: "HAM", Date: date, Positions: pos(models.PositionRW, models.PositionC), PosGroup: "F", DailyPos: models.SlotBench, GamesPlayed: 1, GamesStarted: 0, Rating: rating(95.0)},
		{PlayerID: "p-3306", TeamID: "HAM", Date: date, Positions: pos(models.PositionRW), PosGroup: "F", DailyPos: models.SlotRW, GamesPlayed: 1, GamesStarted: 1, Rating: rating(66.4)},
		{PlayerID: "p-3307", TeamID: "HAM", Date: date, Positions: pos(models.PositionRW), PosGroup: "F", DailyPos: models.SlotRW, GamesPlayed: 1, GamesStarted: 1, Rating: rating(64.0)},
		{PlayerID: "p-3308", TeamID: "HAM", Date: date, Positions: pos(models.PositionD), PosGroup: "D", DailyPos: models.SlotD, GamesPlayed: 1, GamesStarted: 1, Rating: rating(70.0)},
		{PlayerID: "p-3309", TeamID: "HAM", Date: date, Positions: pos(models.PositionD), PosGroup: "D", DailyPos: models.SlotD, GamesPlayed: 1, GamesStarted: 1, Rating: rating(59.7)},
		{PlayerID: "p-3310", TeamID: "HAM", Date: date, Positions: pos(models.PositionD), PosGroup: "D", DailyPos: models.SlotD, GamesPlayed: 1, GamesStarted: 1, Rating: rating(55.1)},
		{PlayerID: "p-3311", TeamID: "HAM", Date: date, Positions: pos(models.PositionD, models.PositionRW), PosGroup: "D", DailyPos: models.SlotUtil, GamesPlayed: 1, GamesStarted: 0, Rating: rating(61.3)},
		{PlayerID: "p-3312", TeamID: "HAM", Date: date, Positions: pos(models.PositionG), PosGroup: "G", DailyPos: models.SlotG, GamesPlayed: 1, GamesStarted: 1, Rating: rating(88.0)},
		{PlayerID: "p-3313", TeamID: "HAM", Date: date, Positions: pos(models.PositionG), PosGroup: "G", DailyPos: models.SlotBench, GamesPlayed: 0, GamesStarted: 0, Rating: rating(0)},
		{PlayerID: "p-3314", TeamID: "HAM", Date: date, Positions: pos(models.PositionC, models.PositionLW), PosGroup: "F", DailyPos: models.SlotBench, GamesPlayed: 0, GamesStarted: 0, Rating: rating(48.6)},
		{PlayerID: "p-3315", TeamID: "HAM", Date: date, Positions: pos(models.PositionLW), PosGroup: "F", DailyPos: models.SlotIR, GamesPlayed: 0, GamesStarted: 0},
	}

	return db.Create(&roster).Error
}

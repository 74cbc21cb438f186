package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/muqabla/sportshub/config"
	"github.com/muqabla/sportshub/db"
	"github.com/muqabla/sportshub/models"
)

const bcryptCost = 12

type seedSport struct {
	name        string
	description string
	icon        string
}

type seedUser struct {
	email     string
	username  string
	password  string
	firstName string
	lastName  string
	role      models.UserRole
}

var sports = []seedSport{
	{"Football", "Association football (soccer)", "⚽"},
	{"Basketball", "Indoor court sport", "🏀"},
	{"Cricket", "Bat-and-ball game", "🏏"},
	{"Tennis", "Racket sport", "🎾"},
	{"Volleyball", "Team sport with net", "🏐"},
	{"Badminton", "Racquet sport", "🏸"},
	{"Table Tennis", "Ping pong", "🏓"},
	{"Hockey", "Field hockey", "🏑"},
}

var users = []seedUser{
	{"admin@muqabla.com", "admin", "admin123", "Admin", "User", models.RoleAdmin},
	{"organizer@muqabla.com", "organizer", "organizer123", "Event", "Organizer", models.RoleOrganizer},
}

// Seeds the sport catalog and the bootstrap accounts. Inserts use
// ON CONFLICT DO NOTHING so rerunning is safe.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConn.Close()

	ctx := context.Background()

	if err := seedSports(ctx, dbConn); err != nil {
		logger.Error("failed to seed sports", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("sports seeded", slog.Int("count", len(sports)))

	if err := seedUsers(ctx, dbConn); err != nil {
		logger.Error("failed to seed users", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("bootstrap users seeded", slog.Int("count", len(users)))

	logger.Info("database seeding completed")
}

func seedSports(ctx context.Context, dbConn *sql.DB) error {
	query := `
		INSERT INTO sports (name, description, icon)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`

	for _, sport := range sports {
		if _, err := dbConn.ExecContext(ctx, query, sport.name, sport.description, sport.icon); err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(ctx context.Context, dbConn *sql.DB) error {
	query := `
		INSERT INTO users (email, username, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING`

	for _, user := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.password), bcryptCost)
		if err != nil {
			return err
		}
		if _, err := dbConn.ExecContext(ctx, query,
			user.email, user.username, string(hash), user.firstName, user.lastName, user.role); err != nil {
			return err
		}
	}
	return nil
}

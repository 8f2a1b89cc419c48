// internal/database/seeder.go
package database

import (
	"context"
	"errors"
	"log"

	"e-waste-api-server/config"
	"e-waste-api-server/internal/apperr"
	"e-waste-api-server/internal/auth"
	"e-waste-api-server/internal/models"
	"e-waste-api-server/internal/store"
)

// SeedAdmin makes sure at least one admin account exists so the bin
// dashboard is reachable on a fresh database.
func SeedAdmin(ctx context.Context, users *store.UserStore, cfg config.Config) error {
	email := cfg.Admin.Email
	if email == "" {
		email = "admin@ewaste.local"
	}
	password := cfg.Admin.Password
	if password == "" {
		password = "changeme-admin"
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		log.Println("Admin account already exists. Seeding skipped.")
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	log.Println("Admin account not found. Seeding...")
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Platform Admin",
		Email:    email,
		Password: hashedPassword,
		UserType: models.UserTypeAdmin,
	}

	if _, err := users.Create(ctx, admin); err != nil {
		return err
	}

	log.Println("Admin account seeded successfully.")
	return nil
}

package main

import (
	"log/slog"

	"filmorate/proj/internal/config"
	"filmorate/proj/internal/lib/validator"
	"filmorate/proj/internal/services"

	govalidator "github.com/go-playground/validator/v10"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	services  *services.Services
	validator *govalidator.Validate
}

func NewApplication(cfg *config.Config, log *slog.Logger, storages services.Storages) *Application {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	for tag, fn := range map[string]govalidator.Func{
		"releasedate":  validator.ValidateReleaseDate,
		"nowhitespace": validator.ValidateNoWhitespace,
		"pastdate":     validator.ValidatePastDate,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: v,
		services:  services.New(log, storages),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}

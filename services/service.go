package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"payoutdesk/logger"
	"payoutdesk/render"
)

// Service owns the create/generate/render operations. Each call is
// independent; there is no state shared between requests beyond the
// database.
type Service struct {
	db      *gorm.DB
	numbers NumberAllocator
	brand   render.Brand
	now     func() time.Time
	log     zerolog.Logger
}

func New(db *gorm.DB, numbers NumberAllocator, brand render.Brand) *Service {
	return &Service{
		db:      db,
		numbers: numbers,
		brand:   brand,
		now:     time.Now,
		log:     logger.WithComponent("services"),
	}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

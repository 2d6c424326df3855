// Package store adapts the gorm-backed record store to the interfaces the
// verification engine consumes. Not-found is reported through
// verify.ErrNotFound so the engine can turn it into a verdict; every other
// database error propagates as an infrastructure fault.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"acadverify/internal/models"
	"acadverify/internal/verify"
)

// ErrNotFound reports a missing history row.
var ErrNotFound = errors.New("record not found")

// Certificates looks up reference records by certificate number.
type Certificates struct {
	db *gorm.DB
}

func NewCertificates(db *gorm.DB) *Certificates {
	return &Certificates{db: db}
}

func (s *Certificates) FindByCertificateNumber(ctx context.Context, number string) (*models.Certificate, error) {
	var cert models.Certificate
	err := s.db.WithContext(ctx).
		Preload("Institution").
		Where("certificate_number = ?", number).
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, verify.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query certificate %q: %w", number, err)
	}
	return &cert, nil
}

// Verifications persists verification history and derived alerts.
type Verifications struct {
	db *gorm.DB
}

func NewVerifications(db *gorm.DB) *Verifications {
	return &Verifications{db: db}
}

// Record writes the verification row and, when an alert is given, its
// derived alert in one transaction so an alert never references a
// verification that was not stored.
func (s *Verifications) Record(ctx context.Context, v *models.Verification, alert *models.Alert) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return fmt.Errorf("insert verification: %w", err)
		}
		if alert != nil {
			alert.VerificationID = v.ID
			if err := tx.Create(alert).Error; err != nil {
				return fmt.Errorf("insert alert: %w", err)
			}
		}
		return nil
	})
}

// List returns history rows, newest first, optionally filtered by status.
func (s *Verifications) List(ctx context.Context, status string, page, limit int) ([]models.Verification, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	q := s.db.WithContext(ctx).Model(&models.Verification{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []models.Verification
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	return rows, nil
}

func (s *Verifications) Get(ctx context.Context, id string) (*models.Verification, error) {
	var v models.Verification
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get verification %q: %w", id, err)
	}
	return &v, nil
}

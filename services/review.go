package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
)

type ReviewService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReviewService(db *gorm.DB, log *zap.Logger) *ReviewService {
	return &ReviewService{db: db, log: log}
}

type AddReviewInput struct {
	UserID    string
	ProductID uint
	Rating    int
	Title     string
	Comment   string
}

// AddReview creates one review per (user, product). The existence check gives
// a friendly message; the composite unique index catches the race two
// concurrent submissions would otherwise win together.
func (s *ReviewService) AddReview(ctx context.Context, in AddReviewInput) (*models.Review, *Error) {
	if in.UserID == "" {
		return nil, errf(KindUnauthenticated, "you must be logged in to review")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, errf(KindInvalid, "rating must be between 1 and 5")
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, in.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindNotFound, "product not found")
		}
		return nil, internal(s.log, "add review: load product", err)
	}

	var existing models.Review
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", in.UserID, in.ProductID).
		First(&existing).Error
	if err == nil {
		return nil, errf(KindConflict, "you have already reviewed this product")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal(s.log, "add review: existence check", err)
	}

	review := &models.Review{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errf(KindConflict, "you have already reviewed this product")
		}
		return nil, internal(s.log, "add review: create", err)
	}
	return review, nil
}

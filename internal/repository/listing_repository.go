package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cultofdrive/internal/model"
)

// ListingFilter narrows marketplace queries. Zero values mean "no filter".
type ListingFilter struct {
	Type     model.ListingType
	Status   model.ListingStatus
	SellerID *uuid.UUID
	Search   string
	Limit    int
	Offset   int
}

// ListingRepository defines marketplace listing persistence operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.MarketplaceListing) error
	Update(ctx context.Context, listing *model.MarketplaceListing) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MarketplaceListing, error)
	List(ctx context.Context, filter ListingFilter) ([]model.MarketplaceListing, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.MarketplaceListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) Update(ctx context.Context, listing *model.MarketplaceListing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MarketplaceListing, error) {
	var listing model.MarketplaceListing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter) ([]model.MarketplaceListing, error) {
	var listings []model.MarketplaceListing
	q := r.db.WithContext(ctx).Model(&model.MarketplaceListing{})
	if filter.Type != "" {
		q = q.Where("listing_type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SellerID != nil {
		q = q.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// IncrementViews bumps the view counter in place so concurrent readers never lose a count.
func (r *listingRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MarketplaceListing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MarketplaceListing{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

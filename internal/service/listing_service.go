package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

const (
	minTitleLen              = 3
	maxTitleLen              = 120
	maxListingDescriptionLen = 5000
	defaultCurrency          = "USD"
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ListingInput is the marketplace listing payload. Absent fields are left untouched on update.
type ListingInput struct {
	ListingType  *string          `json:"listing_type"`
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price" swaggertype:"number"`
	Currency     *string          `json:"currency"`
	Location     *string          `json:"location"`
	ContactEmail *string          `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string          `json:"contact_phone" validate:"omitempty,max=40"`
	ImageURL     *string          `json:"image_url"`
	Status       *string          `json:"status"`
	CarID        *uuid.UUID       `json:"car_id" swaggertype:"string"`
}

// ListingResponse is a listing with its image resolved and its seller attached.
type ListingResponse struct {
	model.MarketplaceListing
	Seller *UserSummary `json:"seller,omitempty"`
}

// ListingService handles the marketplace.
type ListingService interface {
	List(ctx context.Context, filter repository.ListingFilter) ([]ListingResponse, error)
	// Get returns a listing visible to the public and counts the view.
	Get(ctx context.Context, id uuid.UUID) (*ListingResponse, error)
	Create(ctx context.Context, sellerID uuid.UUID, in ListingInput) (*ListingResponse, error)
	Update(ctx context.Context, id, sellerID uuid.UUID, in ListingInput) (*ListingResponse, error)
	// Remove hides a listing by marking it removed.
	Remove(ctx context.Context, id, sellerID uuid.UUID) error
	AdminUpdate(ctx context.Context, id uuid.UUID, in ListingInput) (*ListingResponse, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type listingService struct {
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
	resolver    *media.Resolver
}

// NewListingService creates a new listing service.
func NewListingService(listingRepo repository.ListingRepository, profileRepo repository.ProfileRepository, resolver *media.Resolver) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		resolver:    resolver,
	}
}

func (s *listingService) List(ctx context.Context, filter repository.ListingFilter) ([]ListingResponse, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, errors.Invalid("Invalid listing type")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errors.Invalid("Invalid status")
	}
	listings, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return s.respond(ctx, listings)
}

func (s *listingService) Get(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status == model.ListingStatusRemoved {
		return nil, errors.ErrListingNotFound
	}
	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("count view: %w", err)
	}
	listing.Views++
	return s.respondOne(ctx, listing)
}

func (s *listingService) Create(ctx context.Context, sellerID uuid.UUID, in ListingInput) (*ListingResponse, error) {
	listing := &model.MarketplaceListing{
		SellerID: sellerID,
		Currency: defaultCurrency,
		Price:    decimal.Zero,
	}
	in.Status = nil
	applyListingInput(listing, in)
	listing.Status = model.ListingStatusActive
	if err := validateListing(listing); err != nil {
		return nil, err
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return s.respondOne(ctx, listing)
}

// Update lets a seller edit a listing. Sellers may move it between active and sold only.
// Removed listings are gone for the seller, and expired ones keep their status.
func (s *listingService) Update(ctx context.Context, id, sellerID uuid.UUID, in ListingInput) (*ListingResponse, error) {
	if in.Status != nil {
		switch model.ListingStatus(strings.TrimSpace(*in.Status)) {
		case model.ListingStatusActive, model.ListingStatusSold:
		default:
			return nil, errors.Invalid("Invalid status")
		}
	}
	return s.update(ctx, id, &sellerID, in)
}

func (s *listingService) AdminUpdate(ctx context.Context, id uuid.UUID, in ListingInput) (*ListingResponse, error) {
	return s.update(ctx, id, nil, in)
}

func (s *listingService) update(ctx context.Context, id uuid.UUID, sellerID *uuid.UUID, in ListingInput) (*ListingResponse, error) {
	listing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if sellerID != nil {
		if listing.SellerID != *sellerID {
			return nil, errors.ErrUnauthorized
		}
		switch listing.Status {
		case model.ListingStatusRemoved:
			return nil, errors.ErrListingNotFound
		case model.ListingStatusExpired:
			if in.Status != nil {
				return nil, errors.Invalid("Expired listings cannot be reactivated")
			}
		}
	}
	applyListingInput(listing, in)
	if err := validateListing(listing); err != nil {
		return nil, err
	}
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return s.respondOne(ctx, listing)
}

func (s *listingService) Remove(ctx context.Context, id, sellerID uuid.UUID) error {
	listing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID {
		return errors.ErrUnauthorized
	}
	listing.Status = model.ListingStatusRemoved
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return fmt.Errorf("remove listing: %w", err)
	}
	return nil
}

func (s *listingService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.listingRepo.Delete(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			return errors.ErrListingNotFound
		}
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

func (s *listingService) find(ctx context.Context, id uuid.UUID) (*model.MarketplaceListing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrListingNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return listing, nil
}

func (s *listingService) respondOne(ctx context.Context, listing *model.MarketplaceListing) (*ListingResponse, error) {
	out, err := s.respond(ctx, []model.MarketplaceListing{*listing})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *listingService) respond(ctx context.Context, listings []model.MarketplaceListing) ([]ListingResponse, error) {
	ids := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.SellerID)
	}
	sellers, err := lookupPeople(ctx, s.profileRepo, s.resolver, ids)
	if err != nil {
		return nil, fmt.Errorf("load sellers: %w", err)
	}

	out := make([]ListingResponse, 0, len(listings))
	for _, l := range listings {
		l.ImageURL = s.resolver.ResolveImageSource(l.ImageURL)
		out = append(out, ListingResponse{MarketplaceListing: l, Seller: sellers[l.SellerID]})
	}
	return out, nil
}

func applyListingInput(l *model.MarketplaceListing, in ListingInput) {
	if in.ListingType != nil {
		l.ListingType = model.ListingType(strings.ToLower(strings.TrimSpace(*in.ListingType)))
	}
	if in.Title != nil {
		l.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		l.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		l.Price = in.Price.Round(2)
	}
	if in.Currency != nil {
		l.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.Location != nil {
		l.Location = strings.TrimSpace(*in.Location)
	}
	if in.ContactEmail != nil {
		l.ContactEmail = strings.TrimSpace(*in.ContactEmail)
	}
	if in.ContactPhone != nil {
		l.ContactPhone = strings.TrimSpace(*in.ContactPhone)
	}
	if in.ImageURL != nil {
		l.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Status != nil {
		l.Status = model.ListingStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
	}
	if in.CarID != nil {
		if *in.CarID == uuid.Nil {
			l.CarID = nil
		} else {
			id := *in.CarID
			l.CarID = &id
		}
	}
}

func validateListing(l *model.MarketplaceListing) error {
	if !l.ListingType.Valid() {
		return errors.Invalid("Listing type must be car or part")
	}
	if n := utf8.RuneCountInString(l.Title); n < minTitleLen || n > maxTitleLen {
		return errors.Invalid("Title must be between 3 and 120 characters")
	}
	if utf8.RuneCountInString(l.Description) > maxListingDescriptionLen {
		return errors.Invalid("Description must be 5000 characters or fewer")
	}
	if l.Price.IsNegative() {
		return errors.Invalid("Price must be zero or more")
	}
	if !currencyRegex.MatchString(l.Currency) {
		return errors.Invalid("Invalid currency")
	}
	if !l.Status.Valid() {
		return errors.Invalid("Invalid status")
	}
	return nil
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestListingService_Create(t *testing.T) {
	sellerID := uuid.New()

	tests := []struct {
		name    string
		input   ListingInput
		wantErr string
	}{
		{
			name:  "valid car listing",
			input: ListingInput{ListingType: strPtr("Car"), Title: strPtr("E30 325i"), Price: decPtr("12500.499"), Currency: strPtr("eur")},
		},
		{
			name:    "unknown type",
			input:   ListingInput{ListingType: strPtr("boat"), Title: strPtr("Boat")},
			wantErr: "Listing type must be car or part",
		},
		{
			name:    "short title",
			input:   ListingInput{ListingType: strPtr("part"), Title: strPtr("ab")},
			wantErr: "Title must be between 3 and 120 characters",
		},
		{
			name:    "long description",
			input:   ListingInput{ListingType: strPtr("part"), Title: strPtr("Seats"), Description: strPtr(strings.Repeat("x", 5001))},
			wantErr: "Description must be 5000 characters or fewer",
		},
		{
			name:    "negative price",
			input:   ListingInput{ListingType: strPtr("part"), Title: strPtr("Wheels"), Price: decPtr("-1")},
			wantErr: "Price must be zero or more",
		},
		{
			name:    "bad currency",
			input:   ListingInput{ListingType: strPtr("part"), Title: strPtr("Wheels"), Currency: strPtr("dollars")},
			wantErr: "Invalid currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listingRepo := new(MockListingRepository)
			profileRepo := new(MockProfileRepository)
			svc := NewListingService(listingRepo, profileRepo, media.NewResolver(nil))
			listingRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.MarketplaceListing")).Return(nil)
			profileRepo.On("FindByIDs", mock.Anything, []uuid.UUID{sellerID}).Return([]model.Profile{}, nil)

			resp, err := svc.Create(context.Background(), sellerID, tt.input)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				listingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.ListingTypeCar, resp.ListingType)
			assert.Equal(t, model.ListingStatusActive, resp.Status)
			assert.Equal(t, "EUR", resp.Currency)
			assert.Equal(t, "12500.5", resp.Price.String())
			assert.Equal(t, sellerID, resp.SellerID)
		})
	}
}

func TestListingService_CreateIgnoresStatus(t *testing.T) {
	listingRepo := new(MockListingRepository)
	profileRepo := new(MockProfileRepository)
	svc := NewListingService(listingRepo, profileRepo, media.NewResolver(nil))
	listingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	profileRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Profile{}, nil)

	resp, err := svc.Create(context.Background(), uuid.New(), ListingInput{
		ListingType: strPtr("part"),
		Title:       strPtr("Recaro seats"),
		Status:      strPtr("sold"),
	})

	require.NoError(t, err)
	assert.Equal(t, model.ListingStatusActive, resp.Status)
	assert.Equal(t, "USD", resp.Currency)
}

func TestListingService_Update(t *testing.T) {
	sellerID := uuid.New()
	listingID := uuid.New()
	existing := func(status model.ListingStatus) *model.MarketplaceListing {
		if status == "" {
			status = model.ListingStatusActive
		}
		return &model.MarketplaceListing{
			ID: listingID, SellerID: sellerID, ListingType: model.ListingTypePart,
			Title: "BBS RS", Currency: "USD", Status: status,
		}
	}

	tests := []struct {
		name       string
		stored     model.ListingStatus
		actor      uuid.UUID
		input      ListingInput
		expectErr  error
		wantMsg    string
		wantStatus model.ListingStatus
	}{
		{name: "seller marks sold", actor: sellerID, input: ListingInput{Status: strPtr("sold")}, wantStatus: model.ListingStatusSold},
		{name: "seller cannot remove via update", actor: sellerID, input: ListingInput{Status: strPtr("removed")}, wantMsg: "Invalid status"},
		{name: "not the seller", actor: uuid.New(), input: ListingInput{Title: strPtr("Mine now")}, expectErr: errors.ErrUnauthorized},
		{name: "removed listing cannot be reactivated", stored: model.ListingStatusRemoved, actor: sellerID, input: ListingInput{Status: strPtr("active")}, expectErr: errors.ErrListingNotFound},
		{name: "removed listing cannot be edited", stored: model.ListingStatusRemoved, actor: sellerID, input: ListingInput{Title: strPtr("Back again")}, expectErr: errors.ErrListingNotFound},
		{name: "expired listing keeps its status", stored: model.ListingStatusExpired, actor: sellerID, input: ListingInput{Status: strPtr("active")}, wantMsg: "Expired listings cannot be reactivated"},
		{name: "expired listing fields can change", stored: model.ListingStatusExpired, actor: sellerID, input: ListingInput{Title: strPtr("BBS RS 17in")}, wantStatus: model.ListingStatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listingRepo := new(MockListingRepository)
			profileRepo := new(MockProfileRepository)
			svc := NewListingService(listingRepo, profileRepo, media.NewResolver(nil))
			listingRepo.On("FindByID", mock.Anything, listingID).Return(existing(tt.stored), nil)
			listingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
			profileRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Profile{}, nil)

			resp, err := svc.Update(context.Background(), listingID, tt.actor, tt.input)

			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			case tt.wantMsg != "":
				assert.EqualError(t, err, tt.wantMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, resp.Status)
				return
			}
			listingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestListingService_AdminUpdateRestoresRemoved(t *testing.T) {
	listingRepo := new(MockListingRepository)
	profileRepo := new(MockProfileRepository)
	svc := NewListingService(listingRepo, profileRepo, media.NewResolver(nil))

	id := uuid.New()
	listingRepo.On("FindByID", mock.Anything, id).Return(&model.MarketplaceListing{
		ID: id, SellerID: uuid.New(), ListingType: model.ListingTypeCar,
		Title: "E28 M5", Currency: "USD", Status: model.ListingStatusRemoved,
	}, nil)
	listingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	profileRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Profile{}, nil)

	resp, err := svc.AdminUpdate(context.Background(), id, ListingInput{Status: strPtr("active")})

	require.NoError(t, err)
	assert.Equal(t, model.ListingStatusActive, resp.Status)
}

func TestListingService_GetCountsViewsAndHidesRemoved(t *testing.T) {
	listingRepo := new(MockListingRepository)
	profileRepo := new(MockProfileRepository)
	svc := NewListingService(listingRepo, profileRepo, media.NewResolver(nil))

	visible := uuid.New()
	removed := uuid.New()
	missing := uuid.New()
	listingRepo.On("FindByID", mock.Anything, visible).
		Return(&model.MarketplaceListing{ID: visible, Status: model.ListingStatusActive, Views: 9}, nil)
	listingRepo.On("FindByID", mock.Anything, removed).
		Return(&model.MarketplaceListing{ID: removed, Status: model.ListingStatusRemoved}, nil)
	listingRepo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)
	listingRepo.On("IncrementViews", mock.Anything, visible).Return(nil)
	profileRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]model.Profile{}, nil)

	resp, err := svc.Get(context.Background(), visible)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Views)

	_, err = svc.Get(context.Background(), removed)
	assert.ErrorIs(t, err, errors.ErrListingNotFound)

	_, err = svc.Get(context.Background(), missing)
	assert.ErrorIs(t, err, errors.ErrListingNotFound)
	listingRepo.AssertNumberOfCalls(t, "IncrementViews", 1)
}

func TestListingService_Remove(t *testing.T) {
	sellerID := uuid.New()
	listingID := uuid.New()
	listingRepo := new(MockListingRepository)
	svc := NewListingService(listingRepo, new(MockProfileRepository), media.NewResolver(nil))
	listingRepo.On("FindByID", mock.Anything, listingID).
		Return(&model.MarketplaceListing{ID: listingID, SellerID: sellerID, Status: model.ListingStatusActive}, nil)
	listingRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *model.MarketplaceListing) bool {
		return l.Status == model.ListingStatusRemoved
	})).Return(nil)

	assert.ErrorIs(t, svc.Remove(context.Background(), listingID, uuid.New()), errors.ErrUnauthorized)
	assert.NoError(t, svc.Remove(context.Background(), listingID, sellerID))
	listingRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestListingService_ListRejectsUnknownFilters(t *testing.T) {
	svc := NewListingService(new(MockListingRepository), new(MockProfileRepository), media.NewResolver(nil))

	_, err := svc.List(context.Background(), repository.ListingFilter{Type: "boat"})
	assert.True(t, errors.IsValidation(err))

	_, err = svc.List(context.Background(), repository.ListingFilter{Status: "archived"})
	assert.EqualError(t, err, "Invalid status")
}

package storage

import (
	"context"
	"errors"

	"fundraise-platform/internal/models"
	"fundraise-platform/internal/session"
)

// ErrDuplicateUsername is returned by CreateUser when the username is already
// taken. The check happens inside the store's write lock, so it holds under
// concurrent registrations, not just for the handler's optimistic pre-check.
var ErrDuplicateUsername = errors.New("username already exists")

// Storage is the ledger of users, charities and donations. Lookups return
// (nil, nil) for a missing entity; only infrastructure failures produce an
// error. Handlers translate absence into not-found responses.
type Storage interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*models.User, error)
	CreateUser(ctx context.Context, insert models.InsertUser) (*models.User, error)

	GetAllCharities(ctx context.Context) ([]models.Charity, error)
	GetCharity(ctx context.Context, id int) (*models.Charity, error)
	CreateCharity(ctx context.Context, insert models.InsertCharity) (*models.Charity, error)

	// CreateDonation performs no foreign-key validation; callers must resolve
	// the referral code and charity first.
	CreateDonation(ctx context.Context, insert models.InsertDonation) (*models.Donation, error)
	GetDonationsByReferralCode(ctx context.Context, code string) ([]models.Donation, error)
	GetTotalDonationsByReferralCode(ctx context.Context, code string) (int, error)

	// Sessions returns the session store owned by this storage; the web
	// session middleware resolves tokens against it.
	Sessions() *session.Store

	Close() error
}

// SeedCharities is the fixed list every fresh store is initialized with.
func SeedCharities() []models.InsertCharity {
	return []models.InsertCharity{
		{
			Name:        "Children's Education Fund",
			Description: "Supporting education for underprivileged children",
			ImageURL:    "https://images.unsplash.com/photo-1509062522246-3755977927d7",
			Category:    "Education",
		},
		{
			Name:        "Food for All",
			Description: "Providing meals to those in need",
			ImageURL:    "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c",
			Category:    "Food Security",
		},
		{
			Name:        "Healthcare for All",
			Description: "Making healthcare accessible to everyone",
			ImageURL:    "https://images.unsplash.com/photo-1576091160399-112ba8d25d1d",
			Category:    "Healthcare",
		},
	}
}

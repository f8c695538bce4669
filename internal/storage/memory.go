package storage

import (
	"context"
	"sync"
	"time"

	"fundraise-platform/internal/models"
	"fundraise-platform/internal/session"
)

// MemStorage keeps the whole ledger in process memory; everything is lost on
// restart. A single mutex guards all operations so check-then-write sequences
// (username uniqueness, id allocation, referral-code generation) are atomic
// under concurrent requests.
type MemStorage struct {
	mu sync.Mutex

	users     map[int]models.User
	charities map[int]models.Charity
	donations map[int]models.Donation

	// insertion order, since map iteration order is random
	charityIDs  []int
	donationIDs []int

	nextUserID     int
	nextCharityID  int
	nextDonationID int

	sessions *session.Store
}

// NewMemStorage creates an empty store, seeds the fixed charity list and
// starts the session store it owns.
func NewMemStorage() *MemStorage {
	s := &MemStorage{
		users:          make(map[int]models.User),
		charities:      make(map[int]models.Charity),
		donations:      make(map[int]models.Donation),
		nextUserID:     1,
		nextCharityID:  1,
		nextDonationID: 1,
		sessions:       session.NewStore(session.DefaultTTL),
	}

	for _, c := range SeedCharities() {
		if _, err := s.CreateCharity(context.Background(), c); err != nil {
			panic("seed charities: " + err.Error())
		}
	}

	return s
}

func (s *MemStorage) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findUser(func(u models.User) bool { return u.Username == username }), nil
}

func (s *MemStorage) GetUserByReferralCode(_ context.Context, code string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findUser(func(u models.User) bool { return u.ReferralCode == code }), nil
}

// findUser must be called with the lock held. At most one user matches, by
// the uniqueness invariants.
func (s *MemStorage) findUser(match func(models.User) bool) *models.User {
	for _, u := range s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (s *MemStorage) CreateUser(_ context.Context, insert models.InsertUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUser(func(u models.User) bool { return u.Username == insert.Username }) != nil {
		return nil, ErrDuplicateUsername
	}

	// regenerate until unique, so the referral-code invariant holds rather
	// than relying on collision probability
	code := newReferralCode()
	for s.findUser(func(u models.User) bool { return u.ReferralCode == code }) != nil {
		code = newReferralCode()
	}

	user := models.User{
		ID:           s.nextUserID,
		Username:     insert.Username,
		PasswordHash: insert.PasswordHash,
		FullName:     insert.FullName,
		ReferralCode: code,
		GoalAmount:   1000,
	}
	s.nextUserID++
	s.users[user.ID] = user

	return &user, nil
}

func (s *MemStorage) GetAllCharities(_ context.Context) ([]models.Charity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	charities := make([]models.Charity, 0, len(s.charityIDs))
	for _, id := range s.charityIDs {
		charities = append(charities, s.charities[id])
	}
	return charities, nil
}

func (s *MemStorage) GetCharity(_ context.Context, id int) (*models.Charity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if charity, ok := s.charities[id]; ok {
		return &charity, nil
	}
	return nil, nil
}

func (s *MemStorage) CreateCharity(_ context.Context, insert models.InsertCharity) (*models.Charity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	charity := models.Charity{
		ID:          s.nextCharityID,
		Name:        insert.Name,
		Description: insert.Description,
		ImageURL:    insert.ImageURL,
		Category:    insert.Category,
	}
	s.nextCharityID++
	s.charities[charity.ID] = charity
	s.charityIDs = append(s.charityIDs, charity.ID)

	return &charity, nil
}

func (s *MemStorage) CreateDonation(_ context.Context, insert models.InsertDonation) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	donation := models.Donation{
		ID:              s.nextDonationID,
		Amount:          insert.Amount,
		DonorName:       insert.DonorName,
		ReferralCode:    insert.ReferralCode,
		Message:         insert.Message,
		CharityID:       insert.CharityID,
		StripePaymentID: insert.StripePaymentID,
		CreatedAt:       time.Now(),
	}
	s.nextDonationID++
	s.donations[donation.ID] = donation
	s.donationIDs = append(s.donationIDs, donation.ID)

	return &donation, nil
}

func (s *MemStorage) GetDonationsByReferralCode(_ context.Context, code string) ([]models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	donations := make([]models.Donation, 0)
	for _, id := range s.donationIDs {
		if d := s.donations[id]; d.ReferralCode == code {
			donations = append(donations, d)
		}
	}
	return donations, nil
}

// GetTotalDonationsByReferralCode recomputes the sum on every call; there is
// no cached aggregate to go stale.
func (s *MemStorage) GetTotalDonationsByReferralCode(_ context.Context, code string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, d := range s.donations {
		if d.ReferralCode == code {
			total += d.Amount
		}
	}
	return total, nil
}

func (s *MemStorage) Sessions() *session.Store {
	return s.sessions
}

func (s *MemStorage) Close() error {
	s.sessions.Close()
	return nil
}

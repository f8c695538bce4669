package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"fundraise-platform/internal/models"
	"fundraise-platform/internal/session"
)

// pgUniqueViolation is the Postgres error code for unique-constraint breaks.
const pgUniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		referral_code TEXT NOT NULL UNIQUE,
		goal_amount INTEGER NOT NULL DEFAULT 1000
	)`,
	`CREATE TABLE IF NOT EXISTS charities (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT NOT NULL,
		category TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS donations (
		id SERIAL PRIMARY KEY,
		amount INTEGER NOT NULL,
		donor_name TEXT NOT NULL,
		referral_code TEXT NOT NULL,
		message TEXT,
		charity_id INTEGER NOT NULL,
		stripe_payment_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// PostgresStorage implements Storage over Postgres via sqlx. It is selected
// at startup when a DSN is configured; MemStorage stays the default.
// Sessions remain in memory either way.
type PostgresStorage struct {
	db       *sqlx.DB
	sessions *session.Store
}

// NewPostgresStorage applies the schema and seeds the charity table if it is
// empty, so a fresh database serves the same three charities as a fresh
// in-memory store.
func NewPostgresStorage(ctx context.Context, db *sqlx.DB) (*PostgresStorage, error) {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	s := &PostgresStorage{
		db:       db,
		sessions: session.NewStore(session.DefaultTTL),
	}

	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM charities`); err != nil {
		return nil, fmt.Errorf("count charities: %w", err)
	}
	if count == 0 {
		for _, c := range SeedCharities() {
			if _, err := s.CreateCharity(ctx, c); err != nil {
				return nil, fmt.Errorf("seed charities: %w", err)
			}
		}
	}

	return s, nil
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	return oneOrAbsent(&user, err)
}

func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE username = $1`, username)
	return oneOrAbsent(&user, err)
}

func (s *PostgresStorage) GetUserByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE referral_code = $1`, code)
	return oneOrAbsent(&user, err)
}

func (s *PostgresStorage) CreateUser(ctx context.Context, insert models.InsertUser) (*models.User, error) {
	query := `INSERT INTO users (username, password_hash, full_name, referral_code, goal_amount)
	          VALUES ($1, $2, $3, $4, 1000)
	          RETURNING *`

	// The unique constraints back the retry: a referral-code collision or a
	// concurrent registration of the same username both surface as 23505.
	for {
		var user models.User
		err := s.db.GetContext(ctx, &user, query,
			insert.Username, insert.PasswordHash, insert.FullName, newReferralCode())
		if err == nil {
			return &user, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if pgErr.ConstraintName == "users_referral_code_key" {
				continue
			}
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
}

func (s *PostgresStorage) GetAllCharities(ctx context.Context) ([]models.Charity, error) {
	charities := make([]models.Charity, 0)
	if err := s.db.SelectContext(ctx, &charities, `SELECT * FROM charities ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select charities: %w", err)
	}
	return charities, nil
}

func (s *PostgresStorage) GetCharity(ctx context.Context, id int) (*models.Charity, error) {
	var charity models.Charity
	err := s.db.GetContext(ctx, &charity, `SELECT * FROM charities WHERE id = $1`, id)
	return oneOrAbsent(&charity, err)
}

func (s *PostgresStorage) CreateCharity(ctx context.Context, insert models.InsertCharity) (*models.Charity, error) {
	var charity models.Charity
	query := `INSERT INTO charities (name, description, image_url, category)
	          VALUES ($1, $2, $3, $4)
	          RETURNING *`
	err := s.db.GetContext(ctx, &charity, query,
		insert.Name, insert.Description, insert.ImageURL, insert.Category)
	if err != nil {
		return nil, fmt.Errorf("insert charity: %w", err)
	}
	return &charity, nil
}

func (s *PostgresStorage) CreateDonation(ctx context.Context, insert models.InsertDonation) (*models.Donation, error) {
	var donation models.Donation
	query := `INSERT INTO donations (amount, donor_name, referral_code, message, charity_id, stripe_payment_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING *`
	err := s.db.GetContext(ctx, &donation, query,
		insert.Amount, insert.DonorName, insert.ReferralCode, insert.Message,
		insert.CharityID, insert.StripePaymentID)
	if err != nil {
		return nil, fmt.Errorf("insert donation: %w", err)
	}
	return &donation, nil
}

func (s *PostgresStorage) GetDonationsByReferralCode(ctx context.Context, code string) ([]models.Donation, error) {
	donations := make([]models.Donation, 0)
	query := `SELECT * FROM donations WHERE referral_code = $1 ORDER BY id`
	if err := s.db.SelectContext(ctx, &donations, query, code); err != nil {
		return nil, fmt.Errorf("select donations: %w", err)
	}
	return donations, nil
}

func (s *PostgresStorage) GetTotalDonationsByReferralCode(ctx context.Context, code string) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE referral_code = $1`
	if err := s.db.GetContext(ctx, &total, query, code); err != nil {
		return 0, fmt.Errorf("sum donations: %w", err)
	}
	return total, nil
}

func (s *PostgresStorage) Sessions() *session.Store {
	return s.sessions
}

func (s *PostgresStorage) Close() error {
	s.sessions.Close()
	return s.db.Close()
}

// oneOrAbsent maps sql.ErrNoRows to the (nil, nil) absence contract.
func oneOrAbsent[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

package models

import "time"

// We use 'db' tags for sqlx to automatically map the database column names
// (snake_case) to our Go fields, and 'json' tags for the camelCase API
// responses the frontend expects.

// User represents a fundraiser's account and shareable referral identity.
type User struct {
	ID           int    `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	FullName     string `db:"full_name" json:"fullName"`
	ReferralCode string `db:"referral_code" json:"referralCode"`
	GoalAmount   int    `db:"goal_amount" json:"goalAmount"`
}

// Charity represents one of the predefined donation targets.
type Charity struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	ImageURL    string `db:"image_url" json:"imageUrl"`
	Category    string `db:"category" json:"category"`
}

// Donation represents a single confirmed contribution, attributed to a
// fundraiser's referral code and a charity.
type Donation struct {
	ID              int       `db:"id" json:"id"`
	Amount          int       `db:"amount" json:"amount"`
	DonorName       string    `db:"donor_name" json:"donorName"`
	ReferralCode    string    `db:"referral_code" json:"referralCode"`
	Message         *string   `db:"message" json:"message"`
	CharityID       int       `db:"charity_id" json:"charityId"`
	StripePaymentID string    `db:"stripe_payment_id" json:"stripePaymentId"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// InsertUser holds the caller-supplied fields for a new User. The password
// must already be hashed before it reaches the store.
type InsertUser struct {
	Username     string
	PasswordHash string
	FullName     string
}

// InsertCharity holds the caller-supplied fields for a new Charity.
type InsertCharity struct {
	Name        string
	Description string
	ImageURL    string
	Category    string
}

// InsertDonation holds the caller-supplied fields for a new Donation.
// Referral code and charity existence are the caller's responsibility.
type InsertDonation struct {
	Amount          int
	DonorName       string
	ReferralCode    string
	Message         *string
	CharityID       int
	StripePaymentID string
}

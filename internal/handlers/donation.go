package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fundraise-platform/internal/models"
	"fundraise-platform/internal/payments"
	"fundraise-platform/internal/storage"
	ws "fundraise-platform/internal/websocket"
)

// minDonationAmount is enforced at the boundary before any payment intent is
// created.
const minDonationAmount = 50

type DonationHandler struct {
	Store    storage.Storage
	Payments payments.PaymentIntents
	Hub      *ws.Hub
	Currency string
}

func NewDonationHandler(store storage.Storage, intents payments.PaymentIntents, hub *ws.Hub, currency string) *DonationHandler {
	return &DonationHandler{
		Store:    store,
		Payments: intents,
		Hub:      hub,
		Currency: currency,
	}
}

type CreatePaymentIntentRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// CreatePaymentIntent asks the payment collaborator for an intent. The
// referral code is deliberately not validated here; only the eventual
// donation write checks it.
func (h *DonationHandler) CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	if req.Amount < minDonationAmount {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Minimum donation amount is ₹50"})
		return
	}

	// convert to minor units (paise) at the collaborator boundary
	intent, err := h.Payments.CreateIntent(c.Request.Context(), int64(req.Amount)*100, h.Currency)
	if err != nil {
		log.Println("Failed to create payment intent:", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

type CreateDonationRequest struct {
	Amount          int     `json:"amount" binding:"required,gt=0"`
	DonorName       string  `json:"donorName" binding:"required"`
	ReferralCode    string  `json:"referralCode" binding:"required"`
	Message         *string `json:"message"`
	CharityID       int     `json:"charityId" binding:"required"`
	StripePaymentID string  `json:"stripePaymentId" binding:"required"`
}

// Create records a confirmed donation. The payment id is stored verbatim;
// nothing re-verifies it against the gateway.
func (h *DonationHandler) Create(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.Store.GetUserByReferralCode(c.Request.Context(), req.ReferralCode)
	if err != nil {
		log.Println("Failed to look up referral code:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Fundraiser not found"})
		return
	}

	charity, err := h.Store.GetCharity(c.Request.Context(), req.CharityID)
	if err != nil {
		log.Println("Failed to look up charity:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}
	if charity == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Charity not found"})
		return
	}

	donation, err := h.Store.CreateDonation(c.Request.Context(), models.InsertDonation{
		Amount:          req.Amount,
		DonorName:       req.DonorName,
		ReferralCode:    req.ReferralCode,
		Message:         req.Message,
		CharityID:       req.CharityID,
		StripePaymentID: req.StripePaymentID,
	})
	if err != nil {
		log.Println("Failed to create donation:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastAlert <- ws.DonationAlert{
			TargetReferralCode: donation.ReferralCode,
			DonorName:          donation.DonorName,
			Amount:             donation.Amount,
			Message:            donation.Message,
			CharityID:          donation.CharityID,
		}
	}

	c.JSON(http.StatusCreated, donation)
}

// ListByReferralCode returns all donations for a code; an unknown code yields
// an empty list, not a 404.
func (h *DonationHandler) ListByReferralCode(c *gin.Context) {
	donations, err := h.Store.GetDonationsByReferralCode(c.Request.Context(), c.Param("referralCode"))
	if err != nil {
		log.Println("Failed to list donations:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, donations)
}

// GetFundraiser returns the fundraiser's public record plus their running
// total.
func (h *DonationHandler) GetFundraiser(c *gin.Context) {
	user, err := h.Store.GetUserByReferralCode(c.Request.Context(), c.Param("referralCode"))
	if err != nil {
		log.Println("Failed to look up referral code:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Fundraiser not found"})
		return
	}

	total, err := h.Store.GetTotalDonationsByReferralCode(c.Request.Context(), user.ReferralCode)
	if err != nil {
		log.Println("Failed to total donations:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "total": total})
}

package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"project/database"
	"project/middleware"
	"project/models"
	"project/services"
	"project/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfferAttachmentRequest struct {
	URL  string `json:"url" validate:"required"`
	Name string `json:"name"`
}

type OfferRequest struct {
	StartupID     uint                     `json:"startup_id"`
	InvestorID    uint                     `json:"investor_id"`
	Title         string                   `json:"title"`
	Amount        int64                    `json:"amount"`
	EquityPercent float64                  `json:"equity_percent"`
	Type          string                   `json:"type" validate:"oneof=offer|term-sheet"`
	Visibility    string                   `json:"visibility" validate:"oneof=private|public"`
	Status        string                   `json:"status" validate:"oneof=sent|accepted|rejected|countered"`
	Note          string                   `json:"note"`
	Attachments   []OfferAttachmentRequest `json:"attachments"`
}

type OfferStatusRequest struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

func OfferListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	db := database.DB.Model(&models.Offer{}).Preload("Attachments")
	if v := q.Get("startupId"); v != "" {
		db = db.Where("startup_id = ?", v)
	}
	if v := q.Get("investorId"); v != "" {
		db = db.Where("investor_id = ?", v)
	}
	if v := q.Get("status"); v != "" {
		db = db.Where("status = ?", v)
	}
	if v := q.Get("visibility"); v != "" {
		db = db.Where("visibility = ?", v)
	}

	var offers []models.Offer
	if err := db.Order("created_at DESC").Find(&offers).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, offers)
}

func OfferGetHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var offer models.Offer
	if err := database.DB.Preload("Attachments").First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Offer")
			return
		}
		serverError(w)
		return
	}
	ok(w, offer)
}

func OfferCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req OfferRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.StartupID == 0 || req.InvestorID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "startup_id and investor_id are required"})
		return
	}
	if req.Amount < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "amount must not be negative"})
		return
	}
	if req.Status == "" {
		req.Status = services.StatusSent
	}

	offer := models.Offer{
		StartupID:     req.StartupID,
		InvestorID:    req.InvestorID,
		Title:         req.Title,
		Amount:        req.Amount,
		EquityPercent: req.EquityPercent,
		Type:          req.Type,
		Visibility:    req.Visibility,
		Status:        req.Status,
		Note:          req.Note,
	}
	for _, a := range req.Attachments {
		offer.Attachments = append(offer.Attachments, models.OfferAttachment{URL: a.URL, Name: a.Name})
	}
	if err := database.DB.Create(&offer).Error; err != nil {
		log.Printf("[offers] create failed: %v", err)
		serverError(w)
		return
	}
	created(w, offer)
}

// OfferUpdateHandler replaces the editable fields of an offer. Status changes
// go through the dedicated status endpoint so the acceptance workflow cannot
// be bypassed.
func OfferUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var req OfferRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Amount < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "amount must not be negative"})
		return
	}

	var offer models.Offer
	if err := database.DB.Preload("Attachments").First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Offer")
			return
		}
		serverError(w)
		return
	}

	offer.Title = req.Title
	offer.Amount = req.Amount
	offer.EquityPercent = req.EquityPercent
	if req.Type != "" {
		offer.Type = req.Type
	}
	if req.Visibility != "" {
		offer.Visibility = req.Visibility
	}
	offer.Note = req.Note

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&offer).Error; err != nil {
			return err
		}
		if req.Attachments == nil {
			return nil
		}
		if err := tx.Where("offer_id = ?", offer.ID).Delete(&models.OfferAttachment{}).Error; err != nil {
			return err
		}
		offer.Attachments = offer.Attachments[:0]
		for _, a := range req.Attachments {
			offer.Attachments = append(offer.Attachments, models.OfferAttachment{OfferID: offer.ID, URL: a.URL, Name: a.Name})
		}
		if len(offer.Attachments) == 0 {
			return nil
		}
		return tx.Create(&offer.Attachments).Error
	})
	if err != nil {
		log.Printf("[offers] update failed: %v", err)
		serverError(w)
		return
	}
	ok(w, offer)
}

func OfferDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Offer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("offer_id = ?", id).Delete(&models.OfferAttachment{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Offer")
			return
		}
		serverError(w)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Offer deleted"})
}

// OfferStatusHandler drives the offer lifecycle. Accepting an offer also
// records the investment and refreshes the startup valuation in the same
// transaction.
func OfferStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var req OfferStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	offer, err := offerService().UpdateStatus(r.Context(), id, services.StatusUpdate{Status: req.Status, Note: req.Note})
	switch {
	case err == nil:
		ok(w, offer)
	case errors.Is(err, services.ErrNotFound):
		notFound(w, "Offer")
	case errors.Is(err, services.ErrInvalidStatus):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown offer status"})
	case errors.Is(err, services.ErrInvalidTransition):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Offer cannot change to that status"})
	case errors.Is(err, services.ErrVersionConflict):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Startup was updated concurrently, please retry"})
	default:
		log.Printf("[offers] status update failed: %v", err)
		serverError(w)
	}
}

package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"project/database"
	"project/middleware"
	"project/models"
	"project/repository"
	"project/utils"

	"gorm.io/gorm"
)

type InvestmentRequest struct {
	StartupID          uint     `json:"startup_id"`
	InvestorID         uint     `json:"investor_id"`
	Amount             int64    `json:"amount"`
	Currency           string   `json:"currency"`
	EquityPercent      float64  `json:"equity_percent"`
	ValuationPostMoney *float64 `json:"valuation_post_money"`
	Status             string   `json:"status" validate:"oneof=active|exited|written-off"`
	Note               string   `json:"note"`
}

func InvestmentListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	db := database.DB.Model(&models.Investment{})
	if v := q.Get("startupId"); v != "" {
		db = db.Where("startup_id = ?", v)
	}
	if v := q.Get("investorId"); v != "" {
		db = db.Where("investor_id = ?", v)
	}
	if v := q.Get("status"); v != "" {
		db = db.Where("status = ?", v)
	}

	var investments []models.Investment
	if err := db.Order("created_at DESC").Find(&investments).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, investments)
}

func InvestmentGetHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var inv models.Investment
	if err := database.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Investment")
			return
		}
		serverError(w)
		return
	}
	ok(w, inv)
}

func InvestmentsByInvestorHandler(w http.ResponseWriter, r *http.Request) {
	investorID, valid := pathID(w, r, "investorId")
	if !valid {
		return
	}
	var investments []models.Investment
	if err := database.DB.Where("investor_id = ?", investorID).Order("created_at DESC").Find(&investments).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, investments)
}

func InvestmentsByStartupHandler(w http.ResponseWriter, r *http.Request) {
	startupID, valid := pathID(w, r, "startupId")
	if !valid {
		return
	}
	var investments []models.Investment
	if err := database.DB.Where("startup_id = ?", startupID).Order("created_at DESC").Find(&investments).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, investments)
}

// InvestmentCreateHandler records an investment directly, outside the offer
// workflow (off-platform deals, historical backfill). Such rows carry no
// offer reference.
func InvestmentCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req InvestmentRequest
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
		req.Status = "active"
	}

	inv := models.Investment{
		StartupID:          req.StartupID,
		InvestorID:         req.InvestorID,
		Amount:             req.Amount,
		Currency:           req.Currency,
		EquityPercent:      req.EquityPercent,
		ValuationPostMoney: req.ValuationPostMoney,
		Status:             req.Status,
		Note:               req.Note,
	}
	if err := database.DB.Create(&inv).Error; err != nil {
		log.Printf("[investments] create failed: %v", err)
		serverError(w)
		return
	}
	created(w, inv)
}

func InvestmentUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	var fields InvestmentRequest
	if err := remarshal(raw, &fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}
	if err := utils.ValidateStruct(&fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	var inv models.Investment
	if err := database.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Investment")
			return
		}
		serverError(w)
		return
	}

	// Linkage and amount are immutable once recorded; only bookkeeping
	// fields can change.
	if _, set := raw["currency"]; set {
		inv.Currency = fields.Currency
	}
	if _, set := raw["status"]; set {
		inv.Status = fields.Status
	}
	if _, set := raw["note"]; set {
		inv.Note = fields.Note
	}

	if err := database.DB.Save(&inv).Error; err != nil {
		if repository.IsDuplicateKey(err) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Investment conflicts with an existing record"})
			return
		}
		log.Printf("[investments] update failed: %v", err)
		serverError(w)
		return
	}
	ok(w, inv)
}

func InvestmentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	res := database.DB.Delete(&models.Investment{}, id)
	if res.Error != nil {
		serverError(w)
		return
	}
	if res.RowsAffected == 0 {
		notFound(w, "Investment")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment deleted"})
}

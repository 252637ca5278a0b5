package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InvestorRequest struct {
	UserID              uint     `json:"user_id"`
	LegalName           string   `json:"legal_name"`
	Type                string   `json:"type" validate:"oneof=angel|vc|corporate"`
	MinCheck            int64    `json:"min_check"`
	MaxCheck            int64    `json:"max_check"`
	PreferredIndustries []string `json:"preferred_industries"`
	PreferredStages     []string `json:"preferred_stages"`
	Description         string   `json:"description"`
	Website             string   `json:"website"`
}

// InvestorListHandler lists investors, optionally filtered by type, preferred
// industry/stage (JSON array membership) and check-size overlap.
func InvestorListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	db := database.DB.Model(&models.Investor{})
	if v := q.Get("type"); v != "" {
		db = db.Where("type = ?", v)
	}
	if v := q.Get("industry"); v != "" {
		db = db.Where(datatypes.JSONArrayQuery("preferred_industries").Contains(v))
	}
	if v := q.Get("stage"); v != "" {
		db = db.Where(datatypes.JSONArrayQuery("preferred_stages").Contains(v))
	}
	if v := q.Get("minCheck"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			db = db.Where("max_check >= ?", n)
		}
	}
	if v := q.Get("maxCheck"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			db = db.Where("min_check <= ?", n)
		}
	}

	var investors []models.Investor
	if err := db.Order("created_at DESC").Find(&investors).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, investors)
}

func InvestorGetHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var inv models.Investor
	if err := database.DB.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Investor")
			return
		}
		serverError(w)
		return
	}
	ok(w, inv)
}

func InvestorGetByUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, valid := pathID(w, r, "userId")
	if !valid {
		return
	}
	var inv models.Investor
	if err := database.DB.Where("user_id = ?", userID).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Investor")
			return
		}
		serverError(w)
		return
	}
	ok(w, inv)
}

func InvestorCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req InvestorRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.UserID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "user_id is required"})
		return
	}
	if req.MinCheck < 0 || req.MaxCheck < 0 || (req.MaxCheck > 0 && req.MinCheck > req.MaxCheck) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid check range"})
		return
	}

	inv := models.Investor{
		UserID:      req.UserID,
		LegalName:   req.LegalName,
		Type:        req.Type,
		MinCheck:    req.MinCheck,
		MaxCheck:    req.MaxCheck,
		Description: req.Description,
		Website:     req.Website,
	}
	var err error
	if inv.PreferredIndustries, err = marshalJSONList(req.PreferredIndustries); err != nil {
		serverError(w)
		return
	}
	if inv.PreferredStages, err = marshalJSONList(req.PreferredStages); err != nil {
		serverError(w)
		return
	}
	if err := database.DB.Create(&inv).Error; err != nil {
		log.Printf("[investors] create failed: %v", err)
		serverError(w)
		return
	}
	created(w, inv)
}

func InvestorUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	investorUpdate(w, r, "id = ?", id)
}

func InvestorUpdateByUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, valid := pathID(w, r, "userId")
	if !valid {
		return
	}
	investorUpdate(w, r, "user_id = ?", userID)
}

func investorUpdate(w http.ResponseWriter, r *http.Request, cond string, arg uint) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	var fields InvestorRequest
	if err := remarshal(raw, &fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}
	if err := utils.ValidateStruct(&fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	var inv models.Investor
	if err := database.DB.Where(cond, arg).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Investor")
			return
		}
		serverError(w)
		return
	}

	if _, set := raw["legal_name"]; set {
		inv.LegalName = fields.LegalName
	}
	if _, set := raw["type"]; set {
		inv.Type = fields.Type
	}
	if _, set := raw["min_check"]; set {
		inv.MinCheck = fields.MinCheck
	}
	if _, set := raw["max_check"]; set {
		inv.MaxCheck = fields.MaxCheck
	}
	if _, set := raw["description"]; set {
		inv.Description = fields.Description
	}
	if _, set := raw["website"]; set {
		inv.Website = fields.Website
	}
	var err error
	if _, set := raw["preferred_industries"]; set {
		if inv.PreferredIndustries, err = marshalJSONList(fields.PreferredIndustries); err != nil {
			serverError(w)
			return
		}
	}
	if _, set := raw["preferred_stages"]; set {
		if inv.PreferredStages, err = marshalJSONList(fields.PreferredStages); err != nil {
			serverError(w)
			return
		}
	}
	if inv.MinCheck < 0 || inv.MaxCheck < 0 || (inv.MaxCheck > 0 && inv.MinCheck > inv.MaxCheck) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid check range"})
		return
	}

	if err := database.DB.Save(&inv).Error; err != nil {
		log.Printf("[investors] update failed: %v", err)
		serverError(w)
		return
	}
	ok(w, inv)
}

func InvestorDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	res := database.DB.Delete(&models.Investor{}, id)
	if res.Error != nil {
		serverError(w)
		return
	}
	if res.RowsAffected == 0 {
		notFound(w, "Investor")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investor deleted"})
}

func marshalJSONList(items []string) (datatypes.JSON, error) {
	if items == nil {
		return nil, nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

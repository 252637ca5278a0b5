package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"project/database"
	"project/middleware"
	"project/models"
	"project/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StartupMetricRequest struct {
	StartupID          uint                   `json:"startup_id"`
	Date               time.Time              `json:"date"`
	Mrr                *float64               `json:"mrr"`
	ActiveUsers        *int                   `json:"active_users"`
	BurnRate           *float64               `json:"burn_rate"`
	ValuationPreMoney  *float64               `json:"valuation_pre_money"`
	ValuationPostMoney *float64               `json:"valuation_post_money"`
	Other              map[string]interface{} `json:"other"`
}

// StartupMetricListHandler returns a metrics series, newest first. Accepts
// startupId plus an optional from/to RFC3339 date range.
func StartupMetricListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	db := database.DB.Model(&models.StartupMetric{})
	if v := q.Get("startupId"); v != "" {
		db = db.Where("startup_id = ?", v)
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "from must be an RFC3339 timestamp"})
			return
		}
		db = db.Where("date >= ?", t)
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "to must be an RFC3339 timestamp"})
			return
		}
		db = db.Where("date <= ?", t)
	}

	var metrics []models.StartupMetric
	if err := db.Order("date DESC").Find(&metrics).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, metrics)
}

func StartupMetricGetHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var metric models.StartupMetric
	if err := database.DB.First(&metric, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Metric")
			return
		}
		serverError(w)
		return
	}
	ok(w, metric)
}

func StartupMetricCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req StartupMetricRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.StartupID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "startup_id is required"})
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	metric := models.StartupMetric{
		StartupID:          req.StartupID,
		Date:               req.Date,
		Mrr:                req.Mrr,
		ActiveUsers:        req.ActiveUsers,
		BurnRate:           req.BurnRate,
		ValuationPreMoney:  req.ValuationPreMoney,
		ValuationPostMoney: req.ValuationPostMoney,
	}
	if req.Other != nil {
		raw, err := json.Marshal(req.Other)
		if err != nil {
			serverError(w)
			return
		}
		metric.Other = datatypes.JSON(raw)
	}
	if err := database.DB.Create(&metric).Error; err != nil {
		log.Printf("[metrics] create failed: %v", err)
		serverError(w)
		return
	}
	created(w, metric)
}

func StartupMetricUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	var fields StartupMetricRequest
	if err := remarshal(raw, &fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	var metric models.StartupMetric
	if err := database.DB.First(&metric, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Metric")
			return
		}
		serverError(w)
		return
	}

	if _, set := raw["date"]; set && !fields.Date.IsZero() {
		metric.Date = fields.Date
	}
	if _, set := raw["mrr"]; set {
		metric.Mrr = fields.Mrr
	}
	if _, set := raw["active_users"]; set {
		metric.ActiveUsers = fields.ActiveUsers
	}
	if _, set := raw["burn_rate"]; set {
		metric.BurnRate = fields.BurnRate
	}
	if _, set := raw["valuation_pre_money"]; set {
		metric.ValuationPreMoney = fields.ValuationPreMoney
	}
	if _, set := raw["valuation_post_money"]; set {
		metric.ValuationPostMoney = fields.ValuationPostMoney
	}
	if _, set := raw["other"]; set {
		buf, err := json.Marshal(fields.Other)
		if err != nil {
			serverError(w)
			return
		}
		metric.Other = datatypes.JSON(buf)
	}

	if err := database.DB.Save(&metric).Error; err != nil {
		log.Printf("[metrics] update failed: %v", err)
		serverError(w)
		return
	}
	ok(w, metric)
}

func StartupMetricDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	res := database.DB.Delete(&models.StartupMetric{}, id)
	if res.Error != nil {
		serverError(w)
		return
	}
	if res.RowsAffected == 0 {
		notFound(w, "Metric")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Metric deleted"})
}

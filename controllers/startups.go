package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"project/database"
	"project/middleware"
	"project/models"
	"project/repository"
	"project/services"
	"project/utils"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// maxSlugAttempts bounds the suffix retry loop when a generated slug is
// already taken.
const maxSlugAttempts = 5

type StartupRequest struct {
	Name            string                  `json:"name"`
	Slug            string                  `json:"slug"`
	FounderID       uint                    `json:"founder_id"`
	Stage           string                  `json:"stage" validate:"oneof=idea|incubation|seed|growth"`
	Industry        string                  `json:"industry"`
	ShortPitch      string                  `json:"short_pitch"`
	Description     string                  `json:"description"`
	Website         string                  `json:"website"`
	LogoURL         string                  `json:"logo_url"`
	MetricsSnapshot *models.MetricsSnapshot `json:"metrics_snapshot"`
	Attachments     []string                `json:"attachments"`
	Visibility      string                  `json:"visibility" validate:"oneof=public|private"`
}

func StartupListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	db := database.DB.Model(&models.Startup{})
	if v := q.Get("stage"); v != "" {
		db = db.Where("stage = ?", v)
	}
	if v := q.Get("industry"); v != "" {
		db = db.Where("industry = ?", v)
	}
	if v := q.Get("visibility"); v != "" {
		db = db.Where("visibility = ?", v)
	}
	if v := q.Get("q"); v != "" {
		like := "%" + v + "%"
		db = db.Where("name LIKE ? OR short_pitch LIKE ?", like, like)
	}

	var startups []models.Startup
	if err := db.Order("created_at DESC").Find(&startups).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, startups)
}

func StartupGetHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var startup models.Startup
	if err := database.DB.First(&startup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Startup")
			return
		}
		serverError(w)
		return
	}
	ok(w, startup)
}

func StartupGetBySlugHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	var startup models.Startup
	if err := database.DB.Where("slug = ?", slug).First(&startup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Startup")
			return
		}
		serverError(w)
		return
	}
	ok(w, startup)
}

func StartupCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req StartupRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "name is required"})
		return
	}

	startup := models.Startup{
		Name:            req.Name,
		FounderID:       req.FounderID,
		Stage:           req.Stage,
		Industry:        req.Industry,
		ShortPitch:      req.ShortPitch,
		Description:     req.Description,
		Website:         req.Website,
		LogoURL:         req.LogoURL,
		MetricsSnapshot: req.MetricsSnapshot,
		Visibility:      req.Visibility,
	}
	if req.Attachments != nil {
		raw, err := json.Marshal(req.Attachments)
		if err != nil {
			serverError(w)
			return
		}
		startup.Attachments = datatypes.JSON(raw)
	}

	base := req.Slug
	if base == "" {
		base = utils.MakeSlug(req.Name)
	}
	startup.Slug = base

	// The unique index owns slug uniqueness; on collision retry with a
	// numeric suffix a bounded number of times.
	for attempt := 1; ; attempt++ {
		err := database.DB.Create(&startup).Error
		if err == nil {
			break
		}
		if !repository.IsDuplicateKey(err) {
			log.Printf("[startups] create failed: %v", err)
			serverError(w)
			return
		}
		if attempt >= maxSlugAttempts {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Slug is already taken"})
			return
		}
		startup.ID = 0
		startup.Slug = fmt.Sprintf("%s-%d", base, attempt+1)
	}
	created(w, startup)
}

// StartupUpdateHandler applies a partial update. The write goes through the
// versioned store so a concurrent editor gets a 409 instead of silently
// losing fields.
func StartupUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var req map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	var startup models.Startup
	if err := database.DB.First(&startup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "Startup")
			return
		}
		serverError(w)
		return
	}

	var fields StartupRequest
	if err := remarshal(req, &fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}
	if err := utils.ValidateStruct(&fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	if _, set := req["name"]; set {
		if fields.Name == "" {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "name must not be empty"})
			return
		}
		startup.Name = fields.Name
	}
	if _, set := req["slug"]; set && fields.Slug != "" {
		startup.Slug = fields.Slug
	}
	if _, set := req["founder_id"]; set {
		startup.FounderID = fields.FounderID
	}
	if _, set := req["stage"]; set {
		startup.Stage = fields.Stage
	}
	if _, set := req["industry"]; set {
		startup.Industry = fields.Industry
	}
	if _, set := req["short_pitch"]; set {
		startup.ShortPitch = fields.ShortPitch
	}
	if _, set := req["description"]; set {
		startup.Description = fields.Description
	}
	if _, set := req["website"]; set {
		startup.Website = fields.Website
	}
	if _, set := req["logo_url"]; set {
		startup.LogoURL = fields.LogoURL
	}
	if _, set := req["metrics_snapshot"]; set {
		startup.MetricsSnapshot = fields.MetricsSnapshot
	}
	if _, set := req["attachments"]; set {
		raw, err := json.Marshal(fields.Attachments)
		if err != nil {
			serverError(w)
			return
		}
		startup.Attachments = datatypes.JSON(raw)
	}
	if _, set := req["visibility"]; set {
		startup.Visibility = fields.Visibility
	}

	err := repository.NewStores(database.DB).Startups().Save(r.Context(), &startup)
	switch {
	case err == nil:
		ok(w, startup)
	case errors.Is(err, services.ErrVersionConflict):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Startup was updated concurrently, please retry"})
	case repository.IsDuplicateKey(err):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Slug is already taken"})
	default:
		log.Printf("[startups] update failed: %v", err)
		serverError(w)
	}
}

func StartupDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	res := database.DB.Delete(&models.Startup{}, id)
	if res.Error != nil {
		serverError(w)
		return
	}
	if res.RowsAffected == 0 {
		notFound(w, "Startup")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Startup deleted"})
}

// remarshal decodes a partial-update payload into the typed request struct.
func remarshal(raw map[string]json.RawMessage, dst interface{}) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return errors.New("Invalid field value in request body")
	}
	return nil
}

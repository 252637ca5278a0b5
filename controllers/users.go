package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"project/database"
	"project/middleware"
	"project/models"
	"project/repository"
	"project/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwdmin"`
	Role     string `json:"role" validate:"oneof=founder|investor"`
	Name     string `json:"name" validate:"required,nameok"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type UserUpdateRequest struct {
	Name      string `json:"name" validate:"nameok"`
	Company   string `json:"company"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.Role == "" {
		req.Role = "founder"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w)
		return
	}
	user := models.User{
		Email:    email,
		Password: string(hashed),
		Role:     req.Role,
		Name:     req.Name,
		Company:  req.Company,
		Phone:    req.Phone,
		Location: req.Location,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if repository.IsDuplicateKey(err) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Email is already registered"})
			return
		}
		log.Printf("[users] register failed: %v", err)
		serverError(w)
		return
	}
	created(w, user)
}

func UserListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB.Model(&models.User{})
	if v := r.URL.Query().Get("role"); v != "" {
		db = db.Where("role = ?", v)
	}
	var users []models.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		serverError(w)
		return
	}
	ok(w, users)
}

func UserGetHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "User")
			return
		}
		serverError(w)
		return
	}
	ok(w, user)
}

// MeHandler returns the profile of the authenticated user.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	uid, found := utils.GetUserID(r)
	if !found {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var user models.User
	if err := database.DB.First(&user, uid).Error; err != nil {
		notFound(w, "User")
		return
	}
	ok(w, user)
}

func UserUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	var fields UserUpdateRequest
	if err := remarshal(raw, &fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}
	if err := utils.ValidateStruct(&fields); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(w, "User")
			return
		}
		serverError(w)
		return
	}

	if _, set := raw["name"]; set && fields.Name != "" {
		user.Name = fields.Name
	}
	if _, set := raw["company"]; set {
		user.Company = fields.Company
	}
	if _, set := raw["bio"]; set {
		user.Bio = fields.Bio
	}
	if _, set := raw["avatar_url"]; set {
		user.AvatarURL = fields.AvatarURL
	}
	if _, set := raw["phone"]; set {
		user.Phone = fields.Phone
	}
	if _, set := raw["location"]; set {
		user.Location = fields.Location
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("[users] update failed: %v", err)
		serverError(w)
		return
	}
	ok(w, user)
}

func UserDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	res := database.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		serverError(w)
		return
	}
	if res.RowsAffected == 0 {
		notFound(w, "User")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User deleted"})
}

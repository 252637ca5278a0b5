package controllers

import (
	"net/http"
	"strconv"

	"project/database"
	"project/repository"
	"project/services"
	"project/utils"

	"github.com/gorilla/mux"
)

// offerService builds the status workflow service over the live database.
// Tests swap this out for a fake-backed service.
var offerService = func() *services.OfferService {
	return services.NewOfferService(repository.NewStores(database.DB))
}

// pathID reads a numeric {id}-style route variable. Writes a 400 and returns
// false when the value is missing or not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request, key string) (uint, bool) {
	raw := mux.Vars(r)[key]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid " + key})
		return 0, false
	}
	return uint(id), true
}

func serverError(w http.ResponseWriter) {
	utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
}

func notFound(w http.ResponseWriter, what string) {
	utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: what + " not found"})
}

func ok(w http.ResponseWriter, data interface{}) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: data})
}

func created(w http.ResponseWriter, data interface{}) {
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Created", Data: data})
}

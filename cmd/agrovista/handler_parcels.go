package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/agrovista/agrovista/pkg/models"
)

type ParcelListResponse struct {
	Success bool            `json:"success"`
	Parcels []models.Parcel `json:"parcels"`
	Message string          `json:"message,omitempty"`
}

type DeletedParcelListResponse struct {
	Success bool                   `json:"success"`
	Parcels []models.DeletedParcel `json:"parcels"`
	Message string                 `json:"message,omitempty"`
}

type ParcelActionResponse struct {
	Success bool           `json:"success"`
	Parcel  *models.Parcel `json:"parcel,omitempty"`
	Message string         `json:"message,omitempty"`
}

// statusForRepoError maps repository error codes to HTTP status codes
func statusForRepoError(err error) int {
	switch models.CodeOf(err) {
	case models.ErrNotFound:
		return http.StatusNotFound
	case models.ErrConflict:
		return http.StatusConflict
	case models.ErrTransportFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// getParcelsHandler lists active parcels, optionally filtered by a
// case-insensitive search over name and crop
func (rm *RouteManager) getParcelsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		parcels []models.Parcel
		err     error
	)

	if term := r.URL.Query().Get("q"); term != "" {
		parcels, err = rm.dbManager.SearchParcels(r.Context(), term)
	} else {
		parcels, err = rm.dbManager.ListParcels(r.Context())
	}

	if err != nil {
		log.Printf("❌ Failed to list parcels: %v", err)
		writeJSON(w, statusForRepoError(err), ParcelListResponse{
			Success: false,
			Message: "Error al cargar las parcelas",
		})
		return
	}

	writeJSON(w, http.StatusOK, ParcelListResponse{
		Success: true,
		Parcels: parcels,
	})
}

func (rm *RouteManager) getParcelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseParcelID(w, r)
	if !ok {
		return
	}

	parcel, err := rm.dbManager.GetParcel(r.Context(), id)
	if err != nil {
		writeJSON(w, statusForRepoError(err), ParcelActionResponse{
			Success: false,
			Message: "Parcela no encontrada",
		})
		return
	}

	writeJSON(w, http.StatusOK, ParcelActionResponse{
		Success: true,
		Parcel:  parcel,
	})
}

func (rm *RouteManager) createParcelHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateParcelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ParcelActionResponse{
			Success: false,
			Message: "Cuerpo de solicitud inválido",
		})
		return
	}

	parcel, err := rm.dbManager.CreateParcel(r.Context(), user.Email, req)
	if err != nil {
		log.Printf("❌ Failed to create parcel: %v", err)
		writeJSON(w, statusForRepoError(err), ParcelActionResponse{
			Success: false,
			Message: "Error al crear la parcela",
		})
		return
	}

	writeJSON(w, http.StatusCreated, ParcelActionResponse{
		Success: true,
		Parcel:  parcel,
		Message: "Parcela creada exitosamente",
	})
}

func (rm *RouteManager) updateParcelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseParcelID(w, r)
	if !ok {
		return
	}

	var req models.UpdateParcelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ParcelActionResponse{
			Success: false,
			Message: "Cuerpo de solicitud inválido",
		})
		return
	}

	parcel, err := rm.dbManager.UpdateParcel(r.Context(), id, req)
	if err != nil {
		log.Printf("❌ Failed to update parcel %s: %v", id, err)
		writeJSON(w, statusForRepoError(err), ParcelActionResponse{
			Success: false,
			Message: "Error al actualizar la parcela",
		})
		return
	}

	writeJSON(w, http.StatusOK, ParcelActionResponse{
		Success: true,
		Parcel:  parcel,
		Message: "Parcela actualizada exitosamente",
	})
}

// deleteParcelHandler moves a parcel into the deleted collection and
// returns the refreshed active list
func (rm *RouteManager) deleteParcelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseParcelID(w, r)
	if !ok {
		return
	}

	if err := rm.dbManager.SoftDeleteParcel(r.Context(), id); err != nil {
		log.Printf("❌ Failed to delete parcel %s: %v", id, err)
		writeJSON(w, statusForRepoError(err), ParcelListResponse{
			Success: false,
			Message: "Error al eliminar la parcela",
		})
		return
	}

	parcels, err := rm.dbManager.ListParcels(r.Context())
	if err != nil {
		parcels = []models.Parcel{}
	}

	writeJSON(w, http.StatusOK, ParcelListResponse{
		Success: true,
		Parcels: parcels,
		Message: "Parcela eliminada exitosamente",
	})
}

func (rm *RouteManager) getDeletedParcelsHandler(w http.ResponseWriter, r *http.Request) {
	parcels, err := rm.dbManager.ListDeletedParcels(r.Context())
	if err != nil {
		log.Printf("❌ Failed to list deleted parcels: %v", err)
		writeJSON(w, statusForRepoError(err), DeletedParcelListResponse{
			Success: false,
			Message: "Error al cargar las parcelas eliminadas",
		})
		return
	}

	writeJSON(w, http.StatusOK, DeletedParcelListResponse{
		Success: true,
		Parcels: parcels,
	})
}

// restoreParcelHandler moves a deleted parcel back to the active
// collection and returns the refreshed deleted list
func (rm *RouteManager) restoreParcelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseParcelID(w, r)
	if !ok {
		return
	}

	parcel, err := rm.dbManager.RestoreParcel(r.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to restore parcel %s: %v", id, err)
		writeJSON(w, statusForRepoError(err), ParcelActionResponse{
			Success: false,
			Message: "Error al restaurar la parcela",
		})
		return
	}

	writeJSON(w, http.StatusOK, ParcelActionResponse{
		Success: true,
		Parcel:  parcel,
		Message: "Parcela restaurada exitosamente",
	})
}

func (rm *RouteManager) permanentlyDeleteParcelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseParcelID(w, r)
	if !ok {
		return
	}

	if err := rm.dbManager.PermanentlyDeleteParcel(r.Context(), id); err != nil {
		log.Printf("❌ Failed to permanently delete parcel %s: %v", id, err)
		writeJSON(w, statusForRepoError(err), DeletedParcelListResponse{
			Success: false,
			Message: "Error al eliminar la parcela",
		})
		return
	}

	parcels, err := rm.dbManager.ListDeletedParcels(r.Context())
	if err != nil {
		parcels = []models.DeletedParcel{}
	}

	writeJSON(w, http.StatusOK, DeletedParcelListResponse{
		Success: true,
		Parcels: parcels,
		Message: "Parcela eliminada permanentemente",
	})
}

func (rm *RouteManager) getCropStatsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := rm.dbManager.CountParcelsByCrop(r.Context())
	if err != nil {
		log.Printf("❌ Failed to count parcels by crop: %v", err)
		http.Error(w, "Failed to count parcels by crop", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(counts)
}

func (rm *RouteManager) getGeoParcelsHandler(w http.ResponseWriter, r *http.Request) {
	parcels, err := rm.dbManager.ListGeolocatedParcels(r.Context())
	if err != nil {
		log.Printf("❌ Failed to list geolocated parcels: %v", err)
		writeJSON(w, statusForRepoError(err), ParcelListResponse{
			Success: false,
			Message: "Error al cargar las parcelas",
		})
		return
	}

	writeJSON(w, http.StatusOK, ParcelListResponse{
		Success: true,
		Parcels: parcels,
	})
}

// parseParcelID extracts and validates the {id} route variable
func parseParcelID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid parcel ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

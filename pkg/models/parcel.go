package models

import (
	"time"

	"github.com/google/uuid"
)

// Parcel is a user-owned plot of agricultural land. Latitude, longitude and
// crop are independently nullable.
type Parcel struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Crop      *string   `json:"crop"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeletedParcel is a parcel row in the parcels_deleted collection. A parcel
// is never in both collections at once.
type DeletedParcel struct {
	Parcel
	DeletedAt time.Time `json:"deleted_at"`
}

// CreateParcelRequest carries the fields of the new-parcel form.
type CreateParcelRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Crop      *string  `json:"crop,omitempty"`
}

// UpdateParcelRequest carries the editable fields of an existing parcel.
// Nil fields are left unchanged.
type UpdateParcelRequest struct {
	Name      *string  `json:"name,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Crop      *string  `json:"crop,omitempty"`
}

// CropCount is one slice of the crop distribution chart.
type CropCount struct {
	Crop  string `json:"crop"`
	Count int    `json:"count"`
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/agrovista/agrovista/pkg/models"
)

const parcelColumns = "id, name, latitude, longitude, crop, owner, created_at, updated_at"

func scanParcel(row interface{ Scan(...interface{}) error }, p *models.Parcel) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Latitude,
		&p.Longitude,
		&p.Crop,
		&p.Owner,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// ListParcels returns all active parcels, newest first
func (dm *Manager) ListParcels(ctx context.Context) ([]models.Parcel, error) {
	query := `
        SELECT ` + parcelColumns + `
        FROM parcels
        ORDER BY created_at DESC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query)
	if err != nil {
		return nil, models.NewRepoError(models.ErrTransportFailure, err)
	}
	defer rows.Close()

	parcels := []models.Parcel{}
	for rows.Next() {
		var p models.Parcel
		if err := scanParcel(rows, &p); err != nil {
			log.Printf("Failed to scan parcel: %v", err)
			continue
		}
		parcels = append(parcels, p)
	}

	return parcels, rows.Err()
}

// GetParcel retrieves a single active parcel by ID
func (dm *Manager) GetParcel(ctx context.Context, id uuid.UUID) (*models.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE id = $1`

	var p models.Parcel
	err := scanParcel(dm.QueryRowWithHealthCheck(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewRepoError(models.ErrNotFound, fmt.Errorf("parcel %s", id))
		}
		return nil, models.NewRepoError(models.ErrUnknown, err)
	}

	return &p, nil
}

// CreateParcel inserts a new parcel owned by the given user
func (dm *Manager) CreateParcel(ctx context.Context, owner string, req models.CreateParcelRequest) (*models.Parcel, error) {
	if req.Name == "" {
		return nil, models.NewRepoError(models.ErrUnknown, errors.New("parcel name is required"))
	}

	query := `
        INSERT INTO parcels (name, latitude, longitude, crop, owner)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + parcelColumns + `
    `

	var p models.Parcel
	err := scanParcel(dm.QueryRowWithHealthCheck(ctx, query,
		req.Name,
		req.Latitude,
		req.Longitude,
		req.Crop,
		owner,
	), &p)
	if err != nil {
		return nil, models.NewRepoError(models.ErrUnknown, err)
	}

	return &p, nil
}

// UpdateParcel applies the non-nil fields of req and re-stamps updated_at
func (dm *Manager) UpdateParcel(ctx context.Context, id uuid.UUID, req models.UpdateParcelRequest) (*models.Parcel, error) {
	query := `
        UPDATE parcels
        SET name = COALESCE($1, name),
            latitude = COALESCE($2, latitude),
            longitude = COALESCE($3, longitude),
            crop = COALESCE($4, crop),
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $5
        RETURNING ` + parcelColumns + `
    `

	var p models.Parcel
	err := scanParcel(dm.QueryRowWithHealthCheck(ctx, query,
		req.Name,
		req.Latitude,
		req.Longitude,
		req.Crop,
		id,
	), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewRepoError(models.ErrNotFound, fmt.Errorf("parcel %s", id))
		}
		return nil, models.NewRepoError(models.ErrUnknown, err)
	}

	return &p, nil
}

// SearchParcels matches the term case-insensitively as a substring of the
// parcel name or crop, newest first
func (dm *Manager) SearchParcels(ctx context.Context, term string) ([]models.Parcel, error) {
	query := `
        SELECT ` + parcelColumns + `
        FROM parcels
        WHERE name ILIKE '%' || $1 || '%' OR crop ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query, term)
	if err != nil {
		return nil, models.NewRepoError(models.ErrTransportFailure, err)
	}
	defer rows.Close()

	parcels := []models.Parcel{}
	for rows.Next() {
		var p models.Parcel
		if err := scanParcel(rows, &p); err != nil {
			log.Printf("Failed to scan parcel: %v", err)
			continue
		}
		parcels = append(parcels, p)
	}

	return parcels, rows.Err()
}

// SoftDeleteParcel moves a parcel from the active collection to
// parcels_deleted in a single transaction, stamping the deletion time.
// The parcel keeps its ID across the move.
func (dm *Manager) SoftDeleteParcel(ctx context.Context, id uuid.UUID) error {
	tx, err := dm.db.BeginTx(ctx, nil)
	if err != nil {
		return models.NewRepoError(models.ErrTransportFailure, err)
	}
	defer tx.Rollback()

	copyQuery := `
        INSERT INTO parcels_deleted (id, name, latitude, longitude, crop, owner, created_at, updated_at)
        SELECT id, name, latitude, longitude, crop, owner, created_at, updated_at
        FROM parcels
        WHERE id = $1
    `
	res, err := tx.ExecContext(ctx, copyQuery, id)
	if err != nil {
		return models.NewRepoError(models.ErrUnknown, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.NewRepoError(models.ErrNotFound, fmt.Errorf("parcel %s", id))
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM parcels WHERE id = $1`, id); err != nil {
		return models.NewRepoError(models.ErrUnknown, err)
	}

	if err := tx.Commit(); err != nil {
		return models.NewRepoError(models.ErrUnknown, err)
	}

	return nil
}

// ListDeletedParcels returns all soft-deleted parcels, most recently
// deleted first
func (dm *Manager) ListDeletedParcels(ctx context.Context) ([]models.DeletedParcel, error) {
	query := `
        SELECT ` + parcelColumns + `, deleted_at
        FROM parcels_deleted
        ORDER BY deleted_at DESC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query)
	if err != nil {
		return nil, models.NewRepoError(models.ErrTransportFailure, err)
	}
	defer rows.Close()

	parcels := []models.DeletedParcel{}
	for rows.Next() {
		var p models.DeletedParcel
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Latitude,
			&p.Longitude,
			&p.Crop,
			&p.Owner,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.DeletedAt,
		)
		if err != nil {
			log.Printf("Failed to scan deleted parcel: %v", err)
			continue
		}
		parcels = append(parcels, p)
	}

	return parcels, rows.Err()
}

// RestoreParcel moves a parcel from parcels_deleted back to the active
// collection in a single transaction. If any step fails the deleted row is
// left untouched.
func (dm *Manager) RestoreParcel(ctx context.Context, id uuid.UUID) (*models.Parcel, error) {
	tx, err := dm.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, models.NewRepoError(models.ErrTransportFailure, err)
	}
	defer tx.Rollback()

	restoreQuery := `
        INSERT INTO parcels (id, name, latitude, longitude, crop, owner, created_at, updated_at)
        SELECT id, name, latitude, longitude, crop, owner, created_at, updated_at
        FROM parcels_deleted
        WHERE id = $1
        RETURNING ` + parcelColumns + `
    `

	var p models.Parcel
	err = scanParcel(tx.QueryRowContext(ctx, restoreQuery, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewRepoError(models.ErrNotFound, fmt.Errorf("deleted parcel %s", id))
		}
		return nil, models.NewRepoError(models.ErrConflict, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM parcels_deleted WHERE id = $1`, id); err != nil {
		return nil, models.NewRepoError(models.ErrUnknown, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, models.NewRepoError(models.ErrUnknown, err)
	}

	return &p, nil
}

// PermanentlyDeleteParcel removes a parcel from parcels_deleted for good
func (dm *Manager) PermanentlyDeleteParcel(ctx context.Context, id uuid.UUID) error {
	res, err := dm.ExecWithHealthCheck(ctx, `DELETE FROM parcels_deleted WHERE id = $1`, id)
	if err != nil {
		return models.NewRepoError(models.ErrTransportFailure, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return models.NewRepoError(models.ErrNotFound, fmt.Errorf("deleted parcel %s", id))
	}

	return nil
}

// CountParcelsByCrop returns the crop distribution of active parcels.
// Parcels without a crop are grouped under "Sin cultivo".
func (dm *Manager) CountParcelsByCrop(ctx context.Context) ([]models.CropCount, error) {
	query := `
        SELECT COALESCE(crop, 'Sin cultivo') AS crop, COUNT(*) AS count
        FROM parcels
        GROUP BY COALESCE(crop, 'Sin cultivo')
        ORDER BY count DESC, crop ASC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query)
	if err != nil {
		return nil, models.NewRepoError(models.ErrTransportFailure, err)
	}
	defer rows.Close()

	counts := []models.CropCount{}
	for rows.Next() {
		var c models.CropCount
		if err := rows.Scan(&c.Crop, &c.Count); err != nil {
			log.Printf("Failed to scan crop count: %v", err)
			continue
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// ListGeolocatedParcels returns active parcels that have both coordinates,
// for the map view
func (dm *Manager) ListGeolocatedParcels(ctx context.Context) ([]models.Parcel, error) {
	query := `
        SELECT ` + parcelColumns + `
        FROM parcels
        WHERE latitude IS NOT NULL AND longitude IS NOT NULL
        ORDER BY created_at DESC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query)
	if err != nil {
		return nil, models.NewRepoError(models.ErrTransportFailure, err)
	}
	defer rows.Close()

	parcels := []models.Parcel{}
	for rows.Next() {
		var p models.Parcel
		if err := scanParcel(rows, &p); err != nil {
			log.Printf("Failed to scan parcel: %v", err)
			continue
		}
		parcels = append(parcels, p)
	}

	return parcels, rows.Err()
}

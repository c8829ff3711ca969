package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/garnizeh/estimator/pkg/models"
	"github.com/garnizeh/estimator/pkg/repository"
)

func (r *SQLiteRepo) ListEstimates(ctx context.Context) ([]models.Estimate, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, client_name, project_name, total_amount, created_at, updated_at FROM estimates ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}

	out := []models.Estimate{}
	for rows.Next() {
		var e models.Estimate
		if err := rows.Scan(&e.ID, &e.ClientName, &e.ProjectName, &e.TotalAmount, &e.CreatedAt, &e.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}

	// headers are fully materialized before the per-estimate item reads so
	// the cursor does not hold the connection across them
	for i := range out {
		items, err := r.itemsFor(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}

	return out, nil
}

func (r *SQLiteRepo) GetEstimate(ctx context.Context, id int64) (*models.Estimate, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, client_name, project_name, total_amount, created_at, updated_at FROM estimates WHERE id = ?`, id)
	var e models.Estimate
	if err := row.Scan(&e.ID, &e.ClientName, &e.ProjectName, &e.TotalAmount, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("get estimate: %w", err)
	}

	items, err := r.itemsFor(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Items = items

	return &e, nil
}

// SaveEstimate inserts the header and all items in one transaction so a
// failed item insert never leaves a header behind.
func (r *SQLiteRepo) SaveEstimate(ctx context.Context, e *models.Estimate) (int64, error) {
	if err := validate(e); err != nil {
		return 0, err
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	res, err := tx.ExecContext(ctx, `INSERT INTO estimates (client_name, project_name, total_amount, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`, e.ClientName, e.ProjectName, e.TotalAmount, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("insert estimate: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("estimate id: %w", err)
	}

	if err := insertItems(ctx, tx, id, e.Items); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}

	e.ID = id
	e.CreatedAt = ts
	e.UpdatedAt = ts
	r.logger.Debug("estimate saved", "id", id, "items", len(e.Items))

	return id, nil
}

// UpdateEstimate rewrites the header and replaces the whole item set in one
// transaction. Partial item updates are not supported: callers always supply
// the complete desired set.
func (r *SQLiteRepo) UpdateEstimate(ctx context.Context, e *models.Estimate) error {
	if err := validate(e); err != nil {
		return err
	}
	if e.ID == 0 {
		return fmt.Errorf("%w: missing id", repository.ErrInvalidEstimate)
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	res, err := tx.ExecContext(ctx, `UPDATE estimates SET client_name = ?, project_name = ?, total_amount = ?, updated_at = ? WHERE id = ?`, e.ClientName, e.ProjectName, e.TotalAmount, ts, e.ID)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", repository.ErrNotFound, e.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM estimate_items WHERE estimate_id = ?`, e.ID); err != nil {
		return fmt.Errorf("delete estimate items: %w", err)
	}
	if err := insertItems(ctx, tx, e.ID, e.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}

	e.UpdatedAt = ts
	r.logger.Debug("estimate updated", "id", e.ID, "items", len(e.Items))

	return nil
}

// DeleteEstimate removes the header row; the foreign-key cascade removes the
// item rows. A missing id deletes zero rows and is not an error.
func (r *SQLiteRepo) DeleteEstimate(ctx context.Context, id int64) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM estimates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}

	r.logger.Debug("estimate deleted", "id", id)
	return nil
}

// itemsFor reads the items of one estimate ordered by rowid, which is their
// insertion order.
func (r *SQLiteRepo) itemsFor(ctx context.Context, estimateID int64) ([]models.EstimateItem, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT description, quantity, unit_price, amount FROM estimate_items WHERE estimate_id = ? ORDER BY id`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("list estimate items: %w", err)
	}
	defer rows.Close()

	var items []models.EstimateItem
	for rows.Next() {
		var it models.EstimateItem
		if err := rows.Scan(&it.Description, &it.Quantity, &it.UnitPrice, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan estimate item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list estimate items: %w", err)
	}

	return items, nil
}

func insertItems(ctx context.Context, tx *sql.Tx, estimateID int64, items []models.EstimateItem) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO estimate_items (estimate_id, description, quantity, unit_price, amount) VALUES (?, ?, ?, ?, ?)`, estimateID, it.Description, it.Quantity, it.UnitPrice, it.Amount); err != nil {
			return fmt.Errorf("insert estimate item: %w", err)
		}
	}
	return nil
}

func validate(e *models.Estimate) error {
	if e == nil {
		return fmt.Errorf("%w: estimate is nil", repository.ErrInvalidEstimate)
	}
	if strings.TrimSpace(e.ClientName) == "" {
		return fmt.Errorf("%w: client_name is required", repository.ErrInvalidEstimate)
	}
	if strings.TrimSpace(e.ProjectName) == "" {
		return fmt.Errorf("%w: project_name is required", repository.ErrInvalidEstimate)
	}
	return nil
}

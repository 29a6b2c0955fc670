package repository

import (
	"context"
	"fmt"

	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Diagnoses struct {
	db *pgxpool.Pool
}

func NewDiagnoses(db *pgxpool.Pool) *Diagnoses {
	return &Diagnoses{db: db}
}

// Insert records one completed analysis and returns its public reference.
func (r *Diagnoses) Insert(ctx context.Context, d *domain.Diagnosis) (uuid.UUID, error) {
	ref := uuid.New()
	err := r.db.QueryRow(ctx, `
		INSERT INTO diagnoses (ref, grower_id, disease, confidence, severity, severity_percent, annotated_image_ref, latency_ms, interpretation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		ref, d.GrowerID, d.Disease, d.Confidence, string(d.Severity), d.SeverityPercent,
		d.AnnotatedImageRef, d.LatencyMS, d.Interpretation,
	).Scan(&d.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert diagnosis: %w", err)
	}
	d.Ref = ref
	return ref, nil
}

// ListRecent returns the grower's latest diagnoses, newest first.
func (r *Diagnoses) ListRecent(ctx context.Context, growerID int64, limit int) ([]domain.Diagnosis, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, ref, grower_id, disease, confidence, severity, severity_percent, annotated_image_ref, latency_ms, interpretation, created_at
		FROM diagnoses
		WHERE grower_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, growerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list diagnoses: %w", err)
	}
	defer rows.Close()

	var out []domain.Diagnosis
	for rows.Next() {
		var d domain.Diagnosis
		var severity string
		if err := rows.Scan(&d.ID, &d.Ref, &d.GrowerID, &d.Disease, &d.Confidence, &severity,
			&d.SeverityPercent, &d.AnnotatedImageRef, &d.LatencyMS, &d.Interpretation, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan diagnosis: %w", err)
		}
		d.Severity = domain.SeverityBand(severity)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Diagnoses) CountByGrower(ctx context.Context, growerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM diagnoses WHERE grower_id = $1", growerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count diagnoses: %w", err)
	}
	return count, nil
}

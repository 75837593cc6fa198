package repositories

import (
	"database/sql"

	intconfig "schooltrip/internal/config"
	"schooltrip/internal/domain/models"
)

// Audit note target types.
const (
	TargetTrip  = "trip"
	TargetEvent = "event"
)

// AuditRepository appends free-text notes to a record's activity log.
// Callers treat note posting as best-effort: a failed insert is logged by
// the caller and never rolls back the primary write.
type AuditRepository struct {
	DB *sql.DB
}

func (r AuditRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AuditRepository) PostNote(targetType string, targetID int64, body string) error {
	_, err := r.db().Exec(`
		INSERT INTO audit_notes (target_type, target_id, body)
		VALUES (?, ?, ?)
	`, targetType, targetID, body)
	return err
}

func (r AuditRepository) ListNotes(targetType string, targetID int64) ([]models.AuditNote, error) {
	rows, err := r.db().Query(`
		SELECT id, target_type, target_id, body,
		       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM audit_notes
		WHERE target_type = ? AND target_id = ?
		ORDER BY id DESC
	`, targetType, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AuditNote{}
	for rows.Next() {
		var n models.AuditNote
		if err := rows.Scan(&n.ID, &n.TargetType, &n.TargetID, &n.Body, &n.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

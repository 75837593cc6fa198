package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "schooltrip/internal/config"
	"schooltrip/internal/domain/models"
)

type SchoolRepository struct {
	DB *sql.DB
}

func (r SchoolRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SchoolRepository) List(q string) ([]models.School, error) {
	query := `SELECT id, name FROM schools WHERE 1=1`
	args := []any{}
	if q != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.School{}
	for rows.Next() {
		var s models.School
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// NamesByIDs returns the names of the given schools in id order.
func (r SchoolRepository) NamesByIDs(ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db().Query(
		fmt.Sprintf(`SELECT name FROM schools WHERE id IN (%s) ORDER BY id`, placeholders),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return out, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

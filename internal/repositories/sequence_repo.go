package repositories

import (
	"database/sql"
	"fmt"

	intconfig "schooltrip/internal/config"
)

// SequenceCodeTrip is the counter used for trip request numbering.
const SequenceCodeTrip = "school.trip.request"

// SequenceRepository hands out the next code from a named monotonic
// counter. Next must run inside the caller's transaction so the row lock
// serializes concurrent consumers.
type SequenceRepository struct {
	DB *sql.DB
}

func (r SequenceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SequenceRepository) Next(tx *sql.Tx, code string) (string, error) {
	var (
		prefix  string
		padding int
		number  int64
	)
	err := tx.QueryRow(`
		SELECT prefix, padding, next_number
		FROM sequences
		WHERE code = ?
		FOR UPDATE
	`, code).Scan(&prefix, &padding, &number)
	if err != nil {
		return "", fmt.Errorf("sequence %s: %w", code, err)
	}

	if _, err := tx.Exec(`UPDATE sequences SET next_number = next_number + 1 WHERE code = ?`, code); err != nil {
		return "", fmt.Errorf("sequence %s: %w", code, err)
	}

	return fmt.Sprintf("%s%0*d", prefix, padding, number), nil
}

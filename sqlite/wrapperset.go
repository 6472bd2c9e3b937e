package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/swi"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ swi.WrapperSetService = (*WrapperSetService)(nil)

// WrapperSetService implements swi.WrapperSetService using SQLite.
// Each wrapper is stored as its JSON record next to a hash of that record,
// so saving a retrained set only rewrites the labels that changed.
type WrapperSetService struct {
	db *DB
}

// NewWrapperSetService creates a new WrapperSetService.
func NewWrapperSetService(db *DB) *WrapperSetService {
	return &WrapperSetService{db: db}
}

// SaveWrapperSet creates the set or replaces an existing set of the same name.
func (s *WrapperSetService) SaveWrapperSet(ctx context.Context, set *swi.WrapperSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var id, createdAt string
	err = tx.QueryRowContext(ctx, "SELECT id, created_at FROM wrapper_sets WHERE name = ?", set.Name).
		Scan(&id, &createdAt)
	switch {
	case err == sql.ErrNoRows:
		set.ID = uuid.New().String()
		set.CreatedAt = now
		set.UpdatedAt = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO wrapper_sets (id, name, examples, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, set.ID, set.Name, set.Examples, set.CreatedAt.Format(time.RFC3339), set.UpdatedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		set.ID = id
		if set.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return err
		}
		set.UpdatedAt = now
		_, err = tx.ExecContext(ctx, `
			UPDATE wrapper_sets SET examples = ?, updated_at = ? WHERE id = ?
		`, set.Examples, set.UpdatedAt.Format(time.RFC3339), set.ID)
		if err != nil {
			return err
		}
	}

	if err := saveWrappers(ctx, tx, set); err != nil {
		return err
	}
	return tx.Commit()
}

// saveWrappers upserts the wrappers whose definition changed and removes
// labels that are no longer part of the set.
func saveWrappers(ctx context.Context, tx *sql.Tx, set *swi.WrapperSet) error {
	stored, err := storedHashes(ctx, tx, set.ID)
	if err != nil {
		return err
	}

	for _, label := range set.Wrappers.Labels() {
		record := swi.NewWrapperRecord(set.Wrappers[label])
		definition, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode wrapper %q: %w", label, err)
		}
		hash := hashDefinition(definition)

		prev, ok := stored[label]
		delete(stored, label)
		if ok && prev == hash {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO wrappers (set_id, label, kind, definition, definition_hash)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (set_id, label) DO UPDATE SET
				kind = excluded.kind,
				definition = excluded.definition,
				definition_hash = excluded.definition_hash
		`, set.ID, label, string(record.Kind), string(definition), hash)
		if err != nil {
			return err
		}
	}

	for label := range stored {
		if _, err := tx.ExecContext(ctx, "DELETE FROM wrappers WHERE set_id = ? AND label = ?", set.ID, label); err != nil {
			return err
		}
	}
	return nil
}

func storedHashes(ctx context.Context, tx *sql.Tx, setID string) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT label, definition_hash FROM wrappers WHERE set_id = ?", setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var label, hash string
		if err := rows.Scan(&label, &hash); err != nil {
			return nil, err
		}
		hashes[label] = hash
	}
	return hashes, rows.Err()
}

// FindWrapperSet retrieves a set by name.
func (s *WrapperSetService) FindWrapperSet(ctx context.Context, name string) (*swi.WrapperSet, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, examples, created_at, updated_at
		FROM wrapper_sets
		WHERE name = ?
	`, name)

	set, err := scanWrapperSet(row)
	if err == sql.ErrNoRows {
		return nil, swi.Errorf(swi.ENOTFOUND, "wrapper set %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	if set.Wrappers, err = s.findWrappers(ctx, set.ID); err != nil {
		return nil, err
	}
	return set, nil
}

// FindWrapperSets retrieves all sets ordered by name.
func (s *WrapperSetService) FindWrapperSets(ctx context.Context) ([]*swi.WrapperSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, examples, created_at, updated_at
		FROM wrapper_sets
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []*swi.WrapperSet
	for rows.Next() {
		set, err := scanWrapperSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, set := range sets {
		if set.Wrappers, err = s.findWrappers(ctx, set.ID); err != nil {
			return nil, err
		}
	}
	return sets, nil
}

// DeleteWrapperSet permanently removes a set and its wrappers.
func (s *WrapperSetService) DeleteWrapperSet(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM wrapper_sets WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return swi.Errorf(swi.ENOTFOUND, "wrapper set %q not found", name)
	}

	return nil
}

func (s *WrapperSetService) findWrappers(ctx context.Context, setID string) (swi.WrapperTable, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT label, definition FROM wrappers WHERE set_id = ?", setID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := swi.WrapperTable{}
	for rows.Next() {
		var label, definition string
		if err := rows.Scan(&label, &definition); err != nil {
			return nil, err
		}
		var record swi.WrapperRecord
		if err := json.Unmarshal([]byte(definition), &record); err != nil {
			return nil, fmt.Errorf("failed to decode wrapper %q: %w", label, err)
		}
		w, err := record.Wrapper()
		if err != nil {
			return nil, err
		}
		table[label] = w
	}
	return table, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWrapperSet(row scanner) (*swi.WrapperSet, error) {
	var set swi.WrapperSet
	var createdAt, updatedAt string
	if err := row.Scan(&set.ID, &set.Name, &set.Examples, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if set.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if set.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &set, nil
}

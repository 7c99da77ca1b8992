package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
	apperrors "github.com/structure-inspection/internal/pkg/errors"
)

type structureRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStructureRepository создает репозиторий структур
func NewStructureRepository(db *DB) repository.StructureRepository {
	return &structureRepository{
		db:     db,
		logger: db.logger,
	}
}

// structureRow - строка таблицы structures; дерево этажей лежит в document
type structureRow struct {
	UID            uuid.UUID      `db:"uid"`
	OwnerID        uuid.UUID      `db:"owner_id"`
	IdentityNumber sql.NullString `db:"identity_number"`
	Status         string         `db:"status"`
	Geohash        sql.NullString `db:"geohash"`
	Document       []byte         `db:"document"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

const structureColumns = `uid, owner_id, identity_number, status, geohash, document, created_at, updated_at`

func toRow(s *domain.Structure) (*structureRow, error) {
	doc, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal structure document: %w", err)
	}

	row := &structureRow{
		UID:       s.UID,
		OwnerID:   s.OwnerID,
		Status:    string(s.Status),
		Document:  doc,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if n := s.Identity.IdentityNumber; n != "" {
		row.IdentityNumber = sql.NullString{String: n, Valid: true}
	}
	if s.Location != nil && s.Location.Geohash != "" {
		row.Geohash = sql.NullString{String: s.Location.Geohash, Valid: true}
	}
	return row, nil
}

func (row *structureRow) toDomain() (*domain.Structure, error) {
	var s domain.Structure
	if err := json.Unmarshal(row.Document, &s); err != nil {
		return nil, fmt.Errorf("unmarshal structure %s: %w", row.UID, err)
	}
	// колонки - источник истины для индексируемых полей
	s.UID = row.UID
	s.OwnerID = row.OwnerID
	s.Status = domain.StructureStatus(row.Status)
	s.CreatedAt = row.CreatedAt
	s.UpdatedAt = row.UpdatedAt
	if s.Floors == nil {
		s.Floors = []domain.Floor{}
	}
	return &s, nil
}

// Create сохраняет новую структуру
func (r *structureRepository) Create(ctx context.Context, s *domain.Structure) error {
	row, err := toRow(s)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO structures (` + structureColumns + `)
		VALUES (:uid, :owner_id, :identity_number, :status, :geohash, :document, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateIdentity.WithDetails(map[string]interface{}{
				"identity_number": s.Identity.IdentityNumber,
			})
		}
		r.logger.Error("failed to create structure", zap.String("uid", s.UID.String()), zap.Error(err))
		return fmt.Errorf("create structure: %w", err)
	}

	return nil
}

// GetByID возвращает структуру по UID
func (r *structureRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Structure, error) {
	query := `SELECT ` + structureColumns + ` FROM structures WHERE uid = $1`

	var row structureRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrStructureNotFound
		}
		return nil, fmt.Errorf("get structure %s: %w", id, err)
	}

	return row.toDomain()
}

// Save перезаписывает документ целиком одним UPDATE
func (r *structureRepository) Save(ctx context.Context, s *domain.Structure) error {
	row, err := toRow(s)
	if err != nil {
		return err
	}

	query := `
		UPDATE structures
		SET identity_number = :identity_number,
			status = :status,
			geohash = :geohash,
			document = :document,
			updated_at = :updated_at
		WHERE uid = :uid
	`

	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateIdentity.WithDetails(map[string]interface{}{
				"identity_number": s.Identity.IdentityNumber,
			})
		}
		r.logger.Error("failed to save structure", zap.String("uid", s.UID.String()), zap.Error(err))
		return fmt.Errorf("save structure: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save structure rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStructureNotFound
	}

	return nil
}

// Delete удаляет структуру
func (r *structureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM structures WHERE uid = $1`, id)
	if err != nil {
		return fmt.Errorf("delete structure %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete structure rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStructureNotFound
	}

	return nil
}

// List возвращает структуры владельца, новые первыми
func (r *structureRepository) List(ctx context.Context, filter repository.StructureFilter) ([]*domain.Structure, int, error) {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, st := range filter.Statuses {
		statuses = append(statuses, string(st))
	}

	where := `WHERE owner_id = $1 AND (cardinality($2::text[]) = 0 OR status = ANY($2::text[]))`

	var total int
	countQuery := `SELECT COUNT(*) FROM structures ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, filter.OwnerID, pq.Array(statuses)); err != nil {
		return nil, 0, fmt.Errorf("count structures: %w", err)
	}

	query := `SELECT ` + structureColumns + ` FROM structures ` + where + `
		ORDER BY updated_at DESC
		LIMIT $3 OFFSET $4`

	var rows []structureRow
	err := r.db.SelectContext(ctx, &rows, query,
		filter.OwnerID, pq.Array(statuses), normalizeLimit(filter.Limit), max(filter.Offset, 0))
	if err != nil {
		return nil, 0, fmt.Errorf("list structures: %w", err)
	}

	result, err := rowsToDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// ExistsIdentityNumber проверяет занятость номера среди всех владельцев
func (r *structureRepository) ExistsIdentityNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM structures WHERE identity_number = $1)`
	if err := r.db.GetContext(ctx, &exists, query, number); err != nil {
		return false, fmt.Errorf("check identity number: %w", err)
	}
	return exists, nil
}

// ListIdentityNumbersByPrefix возвращает все номера с данным префиксом локации
func (r *structureRepository) ListIdentityNumbersByPrefix(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT identity_number
		FROM structures
		WHERE identity_number LIKE $1 || '%' ESCAPE '\'
		ORDER BY identity_number
	`

	var numbers []string
	if err := r.db.SelectContext(ctx, &numbers, query, escapeLike(prefix)); err != nil {
		return nil, fmt.Errorf("list identity numbers by prefix %q: %w", prefix, err)
	}
	return numbers, nil
}

// ListByGeohashPrefixes возвращает структуры владельца, чей geohash начинается с любого из префиксов
func (r *structureRepository) ListByGeohashPrefixes(ctx context.Context, ownerID uuid.UUID, prefixes []string, limit int) ([]*domain.Structure, error) {
	if len(prefixes) == 0 {
		return []*domain.Structure{}, nil
	}

	patterns := make([]string, len(prefixes))
	for i, p := range prefixes {
		patterns[i] = escapeLike(p) + "%"
	}

	query := `SELECT ` + structureColumns + ` FROM structures
		WHERE owner_id = $1 AND geohash LIKE ANY($2::text[])
		ORDER BY geohash
		LIMIT $3`

	var rows []structureRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID, pq.Array(patterns), normalizeLimit(limit)); err != nil {
		return nil, fmt.Errorf("list structures by geohash: %w", err)
	}

	return rowsToDomain(rows)
}

func rowsToDomain(rows []structureRow) ([]*domain.Structure, error) {
	result := make([]*domain.Structure, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

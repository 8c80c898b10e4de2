package infrastructure

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/pfinance/WalletManager/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// escapeLike neutralizes LIKE pattern metacharacters in user input so a
// search term containing % or _ matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *CategoryRepository) FindAll() ([]domain.Category, error) {
	rows, err := r.db.Query("SELECT id, name, transaction_type, user_id FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (r *CategoryRepository) FindByID(id string) (*domain.Category, error) {
	query := "SELECT id, name, transaction_type, user_id FROM categories WHERE id = $1"

	var category domain.Category
	err := r.db.QueryRow(query, id).Scan(&category.ID, &category.Name, &category.TransactionType, &category.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByNameContaining(name string) ([]domain.Category, error) {
	query := `
		SELECT id, name, transaction_type, user_id
		FROM categories
		WHERE UPPER(name) LIKE UPPER($1) ESCAPE '\'
		ORDER BY name
	`
	rows, err := r.db.Query(query, "%"+escapeLike(name)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

func (r *CategoryRepository) FindByNameAndUser(name, userID string) (*domain.Category, error) {
	query := "SELECT id, name, transaction_type, user_id FROM categories WHERE name = $1 AND user_id = $2"

	var category domain.Category
	err := r.db.QueryRow(query, name, userID).Scan(&category.ID, &category.Name, &category.TransactionType, &category.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(category *domain.Category) error {
	query := `
		INSERT INTO categories (name, transaction_type, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(query, category.Name, category.TransactionType, category.UserID).Scan(&category.ID)
}

func (r *CategoryRepository) Update(category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $1, transaction_type = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(query, category.Name, category.TransactionType, category.ID)
	return err
}

func (r *CategoryRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM categories WHERE id = $1", id)
	return err
}

func scanCategories(rows *sql.Rows) ([]domain.Category, error) {
	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.TransactionType, &category.UserID); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

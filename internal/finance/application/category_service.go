package application

import (
	"fmt"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories() ([]domain.Category, error) {
	return s.repo.FindAll()
}

// GetCategoryByID returns (nil, nil) when the id does not exist; absence is
// not an error here, callers decide what it means.
func (s *CategoryService) GetCategoryByID(id string) (*domain.Category, error) {
	return s.repo.FindByID(id)
}

func (s *CategoryService) GetCategoriesByName(name string) ([]domain.Category, error) {
	return s.repo.FindByNameContaining(name)
}

func (s *CategoryService) CreateCategory(category *domain.Category) (*domain.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByNameAndUser(category.Name, category.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, financeErrors.NewDuplicateName(fmt.Sprintf("This user already has a category named %s", category.Name))
	}

	if err := s.repo.Create(category); err != nil {
		return nil, financeErrors.NewCreationFailed("Could not create category")
	}
	return category, nil
}

// UpdateCategory overwrites name and transaction type only; ownership never
// changes. Name uniqueness is checked against the caller's other categories.
func (s *CategoryService) UpdateCategory(id, userID, name, transactionType string) (*domain.Category, error) {
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, financeErrors.NewNotFound("Category not found")
	}

	existing, err := s.repo.FindByNameAndUser(name, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != category.ID {
		return nil, financeErrors.NewDuplicateName(fmt.Sprintf("This user already has a category named %s", name))
	}

	category.Name = name
	category.TransactionType = transactionType
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(id string) error {
	category, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return financeErrors.NewNotFound("Category not found")
	}
	return s.repo.Delete(id)
}

func validateCategory(category *domain.Category) error {
	if category.Name == "" {
		return financeErrors.NewValidationError("Category name must not be empty")
	}
	if category.TransactionType != "income" && category.TransactionType != "expense" {
		return financeErrors.NewValidationError("Transaction type must be 'income' or 'expense'")
	}
	return nil
}

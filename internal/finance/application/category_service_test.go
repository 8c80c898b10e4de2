package application

import (
	"testing"

	"github.com/pfinance/WalletManager/internal/finance/domain"
	financeErrors "github.com/pfinance/WalletManager/internal/finance/errors"
	"github.com/pfinance/WalletManager/internal/finance/infrastructure"
	"github.com/stretchr/testify/assert"
)

func TestCreateCategory_DuplicateNameSameUser(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "c1", Name: "Groceries", TransactionType: "expense", UserID: "u1"},
		},
	}
	service := NewCategoryService(repo)

	_, err := service.CreateCategory(&domain.Category{Name: "Groceries", TransactionType: "expense", UserID: "u1"})
	assert.True(t, financeErrors.IsDuplicateName(err))
	assert.Len(t, repo.Categories, 1, "no second record may be created")
}

func TestCreateCategory_SameNameDifferentUser(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "c1", Name: "Groceries", TransactionType: "expense", UserID: "u1"},
		},
	}
	service := NewCategoryService(repo)

	created, err := service.CreateCategory(&domain.Category{Name: "Groceries", TransactionType: "expense", UserID: "u2"})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, repo.Categories, 2)
}

func TestCreateCategory_InvalidTransactionType(t *testing.T) {
	service := NewCategoryService(&infrastructure.MockCategoryRepository{})

	_, err := service.CreateCategory(&domain.Category{Name: "Misc", TransactionType: "transfer", UserID: "u1"})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestUpdateCategory_NotFound(t *testing.T) {
	service := NewCategoryService(&infrastructure.MockCategoryRepository{})

	_, err := service.UpdateCategory("missing", "u1", "Food", "expense")
	assert.True(t, financeErrors.IsNotFound(err))
}

func TestUpdateCategory_NameCollision(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "c1", Name: "Groceries", TransactionType: "expense", UserID: "u1"},
			{ID: "c2", Name: "Rent", TransactionType: "expense", UserID: "u1"},
		},
	}
	service := NewCategoryService(repo)

	_, err := service.UpdateCategory("c2", "u1", "Groceries", "expense")
	assert.True(t, financeErrors.IsDuplicateName(err))
}

func TestUpdateCategory_KeepingOwnNameIsNotACollision(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "c1", Name: "Groceries", TransactionType: "expense", UserID: "u1"},
		},
	}
	service := NewCategoryService(repo)

	updated, err := service.UpdateCategory("c1", "u1", "Groceries", "income")
	assert.NoError(t, err)
	assert.Equal(t, "income", updated.TransactionType)
}

func TestDeleteCategory_NotFoundPerformsNoMutation(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "c1", Name: "Groceries", TransactionType: "expense", UserID: "u1"},
		},
	}
	service := NewCategoryService(repo)

	err := service.DeleteCategory("missing")
	assert.True(t, financeErrors.IsNotFound(err))
	assert.Len(t, repo.Categories, 1)
}

func TestDeleteCategory_RemovesRecord(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "c1", Name: "Groceries", TransactionType: "expense", UserID: "u1"},
		},
	}
	service := NewCategoryService(repo)

	assert.NoError(t, service.DeleteCategory("c1"))
	assert.Empty(t, repo.Categories)
}

func TestGetCategoriesByName_CaseInsensitiveSubstring(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "c1", Name: "Groceries", TransactionType: "expense", UserID: "u1"},
			{ID: "c2", Name: "Gross income", TransactionType: "income", UserID: "u2"},
			{ID: "c3", Name: "Rent", TransactionType: "expense", UserID: "u1"},
		},
	}
	service := NewCategoryService(repo)

	matched, err := service.GetCategoriesByName("gro")
	assert.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestGetCategoryByID_AbsenceIsNotAnError(t *testing.T) {
	service := NewCategoryService(&infrastructure.MockCategoryRepository{})

	category, err := service.GetCategoryByID("missing")
	assert.NoError(t, err)
	assert.Nil(t, category)
}

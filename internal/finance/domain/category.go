package domain

type Category struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TransactionType string `json:"transaction_type"` // "income" or "expense"
	UserID          string `json:"user_id"`
}

type CategoryRepository interface {
	FindAll() ([]Category, error)
	FindByID(id string) (*Category, error)
	FindByNameContaining(name string) ([]Category, error)
	FindByNameAndUser(name, userID string) (*Category, error)
	Create(category *Category) error
	Update(category *Category) error
	Delete(id string) error
}

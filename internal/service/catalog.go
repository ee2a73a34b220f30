package service

import (
	"github.com/avdeyev/liblend/internal/domain"
	"github.com/avdeyev/liblend/internal/errors"

	"github.com/microcosm-cc/bluemonday"
)

// to mock service in tests
type CatalogService interface {
	Add(name string, price float64) (domain.Book, error)
	List() ([]domain.Book, error)
}

type CatalogStorage interface {
	SaveBook(book domain.Book) (domain.Book, error)
	Books() ([]domain.Book, error)
}

type Catalog struct {
	storage   CatalogStorage
	sanitizer *bluemonday.Policy
}

func NewCatalog(storage CatalogStorage) *Catalog {
	return &Catalog{storage, bluemonday.StrictPolicy()}
}

func (c *Catalog) Add(name string, price float64) (domain.Book, error) {
	name = c.sanitizer.Sanitize(name)
	if name == "" {
		return domain.Book{}, errors.New(errors.InvalidInput, "Name is required")
	}
	if price < 0 {
		return domain.Book{}, errors.New(errors.InvalidInput, "Price must not be negative")
	}
	return c.storage.SaveBook(domain.Book{Name: name, Price: price})
}

func (c *Catalog) List() ([]domain.Book, error) {
	return c.storage.Books()
}

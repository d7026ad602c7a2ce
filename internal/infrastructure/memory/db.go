// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory en desarrollo y como doble de pruebas.
// El orden de los slices es el de inserción, que es el orden "nativo" del store.
package memory

import (
	"sync"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// DB estado compartido por los repositorios en memoria.
type DB struct {
	mu       sync.RWMutex
	users    []*entity.User
	products []*entity.Product
}

// NewDB crea un store vacío.
func NewDB() *DB {
	return &DB{}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

// Package sqlite implements the pkg/repository contracts on a
// gorm-managed sqlite database.
package sqlite

import (
	"gorm.io/gorm"

	"github.com/garnizeh/skillsnap/internal/db"
)

// Repo implements every repository interface declared in
// pkg/repository. Reads return (nil, nil) for absent records; write
// failures come back tagged with a pkg/errs kind.
type Repo struct {
	db *gorm.DB
}

func New(d *db.DB) *Repo {
	return &Repo{db: d.Conn()}
}

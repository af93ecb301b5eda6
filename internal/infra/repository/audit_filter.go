package repository

import (
	"time"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type AuditFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (f AuditFilter) matches(e models.AuditLog) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.Entity != "" && e.Entity != f.Entity {
		return false
	}
	if f.From != nil && e.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func (f AuditFilter) offset() int {
	page := f.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * f.limit()
}

func (f AuditFilter) limit() int {
	if f.Limit <= 0 || f.Limit > 200 {
		return 50
	}
	return f.Limit
}

// window devolve os limites da página dentro de n itens.
func (f AuditFilter) window(n int) (int, int) {
	start := f.offset()
	if start > n {
		start = n
	}
	end := start + f.limit()
	if end > n {
		end = n
	}
	return start, end
}

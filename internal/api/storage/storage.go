package storage

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cuongbtq/job-board/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

// ApplicationUniqueConstraint enforces one application per (job, user)
const ApplicationUniqueConstraint = "applications_job_id_user_id_key"

type Storage struct {
	pg *postgresql.Client
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		pg: pg,
		db: pg.GetDB(),
	}
}

// Migrate creates the tables and indexes when they do not exist yet
func (s *Storage) Migrate(ctx context.Context) error {
	if err := s.pg.Migrate(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Page is a 1-indexed page request
type Page struct {
	Page  int
	Limit int
}

func (p Page) offset() int {
	return (p.Page - 1) * p.Limit
}

// whereBuilder accumulates positional-argument predicates
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(format string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

// addContains adds a case-insensitive substring match on each column, OR-ed
func (w *whereBuilder) addContains(term string, columns ...string) {
	w.args = append(w.args, "%"+escapeLike(term)+"%")
	idx := len(w.args)

	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, col, idx)
	}
	if len(parts) == 1 {
		w.clauses = append(w.clauses, parts[0])
		return
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *whereBuilder) next() int {
	return len(w.args) + 1
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/chakrahealing/admin_api/internal/utils"
)

// notFound maps sql.ErrNoRows onto the shared not-found error.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrNotFound
	}
	return err
}

// expectAffected turns a zero-row write into a not-found error.
func expectAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// selectIn runs a query with a single "IN (?)" list bound to args.
func selectIn(ctx context.Context, q sqlx.QueryerContext, dest interface{}, query string, list interface{}) error {
	expanded, args, err := sqlx.In(query, list)
	if err != nil {
		return fmt.Errorf("expand in-list: %w", err)
	}
	return sqlx.SelectContext(ctx, q, dest, sqlx.Rebind(sqlx.DOLLAR, expanded), args...)
}

// nullString converts an empty or blank string into NULL.
func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return v
}

// setClause accumulates "column = $n" assignments for partial updates.
type setClause struct {
	parts []string
	args  []interface{}
}

func (s *setClause) add(column string, value interface{}) {
	s.args = append(s.args, value)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setClause) empty() bool {
	return len(s.parts) == 0
}

// build returns "UPDATE table SET ... , updated_at = NOW() WHERE id = $n".
func (s *setClause) build(table string, id interface{}, touchUpdatedAt bool) (string, []interface{}) {
	parts := s.parts
	if touchUpdatedAt {
		parts = append(parts, "updated_at = NOW()")
	}
	args := append(s.args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(parts, ", "), len(args)), args
}

func uniqueStrings(values []*string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil || *v == "" {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		out = append(out, *v)
	}
	return out
}

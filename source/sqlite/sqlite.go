// Package sqlite provides a Source backed by a SQLite database via
// modernc.org/sqlite (pure Go, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/unkn0wn-root/heavyselect"
	"github.com/unkn0wn-root/heavyselect/source"
)

type Source struct {
	db     *sql.DB
	ownsDB bool
}

var _ source.Source = (*Source)(nil)

// Open opens the database at path and wraps it as a Source.
// Close releases the connection.
func Open(path string) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return &Source{db: db, ownsDB: true}, nil
}

// New wraps an existing handle. The caller keeps ownership of db.
func New(db *sql.DB) *Source {
	return &Source{db: db}
}

func (s *Source) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// identRe bounds what the structural query may name. Snapshot contents come
// from a shared cache, so identifiers are validated, never interpolated raw.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var condOps = map[string]string{
	"=": "=", "!=": "!=", "<": "<", "<=": "<=", ">": ">", ">=": ">=", "like": "LIKE",
}

func quoteIdent(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", fmt.Errorf("sqlite source: unsafe identifier %q", name)
	}
	return `"` + name + `"`, nil
}

// escapeLike escapes LIKE wildcards in a user-supplied term.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

func (s *Source) Search(ctx context.Context, q heavyselect.Query, term string, fields []string, limit, offset int) ([]source.Result, bool, error) {
	if limit <= 0 || offset < 0 {
		return nil, false, nil
	}
	if q.Collection == "" {
		return nil, false, fmt.Errorf("sqlite source: query has no collection")
	}
	if len(fields) == 0 {
		return nil, false, fmt.Errorf("sqlite source: no search fields")
	}

	table, err := quoteIdent(q.Collection)
	if err != nil {
		return nil, false, err
	}
	idCol, err := quoteIdent(coalesce(q.IDField, "id"))
	if err != nil {
		return nil, false, err
	}
	textCol, err := quoteIdent(coalesce(q.TextField, fields[0]))
	if err != nil {
		return nil, false, err
	}

	var (
		where []string
		args  []any
	)

	if term = strings.TrimSpace(term); term != "" {
		likes := make([]string, 0, len(fields))
		pat := "%" + escapeLike(term) + "%"
		for _, f := range fields {
			col, err := quoteIdent(f)
			if err != nil {
				return nil, false, err
			}
			likes = append(likes, col+` LIKE ? ESCAPE '\'`)
			args = append(args, pat)
		}
		where = append(where, "("+strings.Join(likes, " OR ")+")")
	}

	for _, c := range q.Where {
		op, ok := condOps[c.Op]
		if !ok {
			return nil, false, fmt.Errorf("sqlite source: unsupported op %q", c.Op)
		}
		col, err := quoteIdent(c.Field)
		if err != nil {
			return nil, false, err
		}
		where = append(where, col+" "+op+" ?")
		args = append(args, c.Value)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s, %s FROM %s", idCol, textCol, table)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	order := q.OrderBy
	if len(order) == 0 {
		order = []string{coalesce(q.TextField, fields[0])}
	}
	obs := make([]string, 0, len(order))
	for _, o := range order {
		dir := " ASC"
		if strings.HasPrefix(o, "-") {
			o = o[1:]
			dir = " DESC"
		}
		col, err := quoteIdent(o)
		if err != nil {
			return nil, false, err
		}
		obs = append(obs, col+dir)
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(obs, ", "))

	// limit+1 to learn whether another page exists
	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, limit+1, offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, false, fmt.Errorf("sqlite source: search %s: %w", q.Collection, err)
	}
	defer rows.Close()

	var out []source.Result
	for rows.Next() {
		var (
			id   any
			text string
		)
		if err := rows.Scan(&id, &text); err != nil {
			return nil, false, fmt.Errorf("sqlite source: scan: %w", err)
		}
		out = append(out, source.Result{ID: id, Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("sqlite source: rows: %w", err)
	}

	more := len(out) > limit
	if more {
		out = out[:limit]
	}
	return out, more, nil
}

func coalesce(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

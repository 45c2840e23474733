package generated

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var (
	queryNameRe = regexp.MustCompile(`(?m)^-- name: (\w+) (:\w+)`)
	namedArgRe  = regexp.MustCompile(`sqlc\.n?arg\('(\w+)'\)`)
)

type namedQuery struct {
	name string
	kind string
	sql  string
}

// splitQueries returns the named blocks of a queries/*.sql file.
func splitQueries(src string) []namedQuery {
	locs := queryNameRe.FindAllStringSubmatchIndex(src, -1)
	queries := make([]namedQuery, 0, len(locs))
	for i, loc := range locs {
		end := len(src)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		queries = append(queries, namedQuery{
			name: src[loc[2]:loc[3]],
			kind: src[loc[4]:loc[5]],
			sql:  src[loc[0]:end],
		})
	}
	return queries
}

// numberNamedArgs rewrites sqlc.arg/sqlc.narg references to ?N placeholders
// numbered by first appearance.
func numberNamedArgs(sql string) string {
	seen := map[string]int{}
	return namedArgRe.ReplaceAllStringFunc(sql, func(m string) string {
		name := namedArgRe.FindStringSubmatch(m)[1]
		n, ok := seen[name]
		if !ok {
			n = len(seen) + 1
			seen[name] = n
		}
		return "?" + strconv.Itoa(n)
	})
}

func normalizeSQL(sql string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(sql, ";", " ")), " ")
}

// goQueryConsts collects the query text constants declared in a .sql.go file.
func goQueryConsts(t *testing.T, path string) map[string]namedQuery {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), path, nil, 0)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	consts := map[string]namedQuery{}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			for _, value := range spec.(*ast.ValueSpec).Values {
				lit, ok := value.(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}
				text, err := strconv.Unquote(lit.Value)
				if err != nil {
					t.Fatalf("unquote in %s: %v", path, err)
				}
				for _, q := range splitQueries(text) {
					consts[q.name] = q
				}
			}
		}
	}
	return consts
}

func TestQueriesMatchSQLFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "queries", "*.sql"))
	if err != nil {
		t.Fatalf("glob queries: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no query files found")
	}

	queriesType := reflect.TypeOf(&Queries{})
	total := 0
	for _, path := range files {
		base := filepath.Base(path)
		t.Run(base, func(t *testing.T) {
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			want := splitQueries(string(raw))
			got := goQueryConsts(t, base+".go")
			if len(got) != len(want) {
				t.Fatalf("%s declares %d queries, %s.go has %d", base, len(want), base, len(got))
			}
			for _, q := range want {
				total++
				gq, ok := got[q.name]
				if !ok {
					t.Fatalf("query %s missing from %s.go", q.name, base)
				}
				if gq.kind != q.kind {
					t.Fatalf("query %s kind = %s, want %s", q.name, gq.kind, q.kind)
				}
				if normalizeSQL(gq.sql) != normalizeSQL(numberNamedArgs(q.sql)) {
					t.Fatalf("query %s text drifted from %s:\n got %s\nwant %s", q.name, base, gq.sql, q.sql)
				}
				if _, ok := queriesType.MethodByName(q.name); !ok {
					t.Fatalf("Queries has no method %s", q.name)
				}
			}
		})
	}

	// Every exported method besides WithTx is backed by a named query.
	if got, want := queriesType.NumMethod(), total+1; got != want {
		t.Fatalf("Queries has %d methods, want %d named queries plus WithTx", got, want)
	}
}

func TestNumberNamedArgs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "repeated_narg",
			in:   "WHERE (sqlc.narg('d') IS NULL OR x = sqlc.narg('d')) AND y = sqlc.arg('c')",
			want: "WHERE (?1 IS NULL OR x = ?1) AND y = ?2",
		},
		{
			name: "no_named_args",
			in:   "SELECT id FROM courts WHERE id = ?",
			want: "SELECT id FROM courts WHERE id = ?",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := numberNamedArgs(test.in); got != test.want {
				t.Fatalf("numberNamedArgs(%q) = %q, want %q", test.in, got, test.want)
			}
		})
	}
}

package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/query"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
)

// args collects bound parameters; identical text values share a placeholder.
type args struct {
	values []any
	texts  map[string]string
}

func (a *args) add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

func (a *args) text(s string) string {
	if a.texts == nil {
		a.texts = make(map[string]string)
	}
	if p, ok := a.texts[s]; ok {
		return p
	}
	p := a.add(s) + "::text"
	a.texts[s] = p
	return p
}

// matcher renders predicate leaves and relevance terms for one strategy.
type matcher interface {
	match(a *args, m predicate.Match, expr string) string
	// relevance returns a float8 expression, or "" when the token cannot contribute.
	relevance(a *args, token string, exprs []string) string
}

func newMatchers(schema Schema) map[strategy.Strategy]matcher {
	return map[strategy.Strategy]matcher{
		strategy.Substring: substringMatcher{},
		strategy.Prefix:    prefixMatcher{cfg: schema.regconfig()},
		strategy.Fuzzy:     fuzzyMatcher{},
	}
}

type substringMatcher struct{}

func (substringMatcher) match(a *args, m predicate.Match, expr string) string {
	return expr + " ILIKE " + a.text("%"+escapeLike(m.Token())+"%")
}

func (substringMatcher) relevance(a *args, token string, exprs []string) string {
	p := a.text("%" + escapeLike(token) + "%")
	terms := make([]string, len(exprs))
	for i, e := range exprs {
		terms[i] = "(" + e + " ILIKE " + p + ")::int"
	}
	return "(" + strings.Join(terms, " + ") + ")::float8"
}

// escapeLike neutralizes LIKE wildcards using the default backslash escape.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type prefixMatcher struct {
	cfg string
}

func (pm prefixMatcher) match(a *args, m predicate.Match, expr string) string {
	q := prefixQuery(m.Token())
	if q == "" {
		return "FALSE"
	}
	return fmt.Sprintf("to_tsvector(%s, %s) @@ to_tsquery(%s, %s)", pm.cfg, expr, pm.cfg, a.text(q))
}

func (pm prefixMatcher) relevance(a *args, token string, exprs []string) string {
	q := prefixQuery(token)
	if q == "" {
		return ""
	}
	return fmt.Sprintf("ts_rank(to_tsvector(%s, concat_ws(' ', %s)), to_tsquery(%s, %s))::float8",
		pm.cfg, strings.Join(exprs, ", "), pm.cfg, a.text(q))
}

// prefixQuery turns a token into a tsquery requiring every alphanumeric part as a prefix.
// Only letters and digits survive, so the result never contains tsquery operators.
func prefixQuery(token string) string {
	parts := strings.FieldsFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, p := range parts {
		parts[i] = p + ":*"
	}
	return strings.Join(parts, " & ")
}

// fuzzyMatcher uses the <% operator so a gin_trgm_ops index on the column can
// serve it. The cut-off is pg_trgm.word_similarity_threshold, which the store
// sets per transaction from the predicate threshold.
type fuzzyMatcher struct{}

func (fuzzyMatcher) match(a *args, m predicate.Match, expr string) string {
	return fmt.Sprintf("%s <%% %s", a.text(m.Token()), expr)
}

func (fuzzyMatcher) relevance(a *args, token string, exprs []string) string {
	p := a.text(token)
	terms := make([]string, len(exprs))
	for i, e := range exprs {
		terms[i] = "word_similarity(" + p + ", " + e + ")"
	}
	return "GREATEST(" + strings.Join(terms, ", ") + ")::float8"
}

type renderer struct {
	schema   Schema
	matchers map[strategy.Strategy]matcher
}

// field renders the matched expression for f, wrapped in unaccent() when the
// predicate folds accents (requires the unaccent extension).
func (r renderer) field(p predicate.Predicate, f catalog.Field) string {
	expr := text(r.schema.column(f))
	if p.FoldsAccents() {
		return "unaccent(" + expr + ")"
	}
	return expr
}

// where renders the predicate as AND of parenthesized OR groups.
func (r renderer) where(a *args, p predicate.Predicate) (string, error) {
	if p.IsEmpty() {
		return "FALSE", nil
	}
	clauses := make([]string, 0, len(p.Clauses()))
	for _, c := range p.Clauses() {
		ors := make([]string, 0, len(c.Matches()))
		for _, m := range c.Matches() {
			mt, ok := r.matchers[m.Strategy()]
			if !ok {
				return "", fmt.Errorf("unsupported strategy %q", m.Strategy())
			}
			ors = append(ors, mt.match(a, m, r.field(p, m.Field())))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	return strings.Join(clauses, " AND "), nil
}

func (r renderer) relevance(a *args, p predicate.Predicate) string {
	exprs := make([]string, len(p.Fields()))
	for i, f := range p.Fields() {
		exprs[i] = r.field(p, f)
	}
	var terms []string
	for _, st := range p.Strategies() {
		mt, ok := r.matchers[st]
		if !ok {
			continue
		}
		for _, tok := range p.Tokens() {
			if t := mt.relevance(a, tok, exprs); t != "" {
				terms = append(terms, t)
			}
		}
	}
	if len(terms) == 0 {
		return "0::float8"
	}
	return strings.Join(terms, " + ")
}

// catalogSQL renders the ranked, windowed search with the total in every row.
func (r renderer) catalogSQL(q *db.CatalogQuery) (string, []any, error) {
	a := &args{}
	c := r.schema.Columns

	fullMatch := "FALSE"
	if q.Phrase != "" {
		title, phrase := text(c.Title), q.Phrase
		if q.Predicate.FoldsAccents() {
			title, phrase = "unaccent("+title+")", query.FoldAccents(phrase)
		}
		fullMatch = fmt.Sprintf("strpos(lower(%s), lower(%s)) > 0", title, a.text(phrase))
	}
	demoted := "FALSE"
	if c.Category != "" && len(q.Demoted) > 0 {
		demoted = fmt.Sprintf("%s = ANY(%s::text[])", text(c.Category), a.add(q.Demoted))
	}
	relevance := r.relevance(a, q.Predicate)
	where, err := r.where(a, q.Predicate)
	if err != nil {
		return "", nil, err
	}
	price := "NULL::text"
	if c.Price != "" {
		price = ident(c.Price) + "::text"
	}

	var b strings.Builder
	b.WriteString("SELECT id, title, handle, url, category, tags, sku, price, image_url, ")
	b.WriteString("full_match, demoted, relevance, COUNT(*) OVER () AS total FROM (SELECT ")
	fmt.Fprintf(&b, "%s AS id, %s AS title, %s AS handle, %s AS url, %s AS category, %s AS tags, %s AS sku, %s AS price, %s AS image_url, ",
		text(c.ID), text(c.Title), text(c.Handle), text(c.URL), text(c.Category), text(c.Tags), text(c.SKU), price, text(c.ImageURL))
	fmt.Fprintf(&b, "(%s) AS full_match, (%s) AS demoted, (%s) AS relevance ", fullMatch, demoted, relevance)
	fmt.Fprintf(&b, "FROM %s WHERE %s) AS m ", ident(r.schema.Table), where)
	b.WriteString(`ORDER BY full_match DESC, demoted ASC, relevance DESC, title COLLATE "C" ASC, id COLLATE "C" ASC `)
	fmt.Fprintf(&b, "LIMIT %s OFFSET %s", a.add(q.Limit), a.add(q.Offset))
	return b.String(), a.values, nil
}

// countSQL renders the unpaginated match count for the same predicate.
func (r renderer) countSQL(p predicate.Predicate) (string, []any, error) {
	a := &args{}
	where, err := r.where(a, p)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", ident(r.schema.Table), where), a.values, nil
}

// dictionarySQL renders the top-k similarity lookup; zero-similarity terms are excluded.
func (r renderer) dictionarySQL(q *db.DictionaryQuery) (string, []any) {
	a := &args{}
	col := ident(r.schema.DictionaryColumn)
	tok := a.text(q.Token)
	sql := fmt.Sprintf(
		`SELECT %s::text AS term, similarity(%s::text, %s)::float8 AS score FROM %s `+
			`WHERE %s IS NOT NULL AND similarity(%s::text, %s) > 0 `+
			`ORDER BY score DESC, %s::text COLLATE "C" ASC LIMIT %s`,
		col, col, tok, ident(r.schema.DictionaryTable), col, col, tok, col, a.add(q.K))
	return sql, a.values
}

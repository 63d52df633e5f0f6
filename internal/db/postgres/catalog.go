package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
)

// querier is the part of pgx.Tx a catalog search uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ querier = pgx.Tx(nil)

// setWordSimilarityThreshold scopes the <% cut-off to the current transaction.
const setWordSimilarityThreshold = `SELECT set_config('pg_trgm.word_similarity_threshold', $1, true)`

// SearchCatalog runs the ranked search and returns one window plus the total match count.
// Both statements share one read-only transaction on a single connection.
func (s *Store) SearchCatalog(ctx context.Context, q *db.CatalogQuery) (*db.SearchResult, error) {
	if q == nil {
		return nil, &db.Error{Op: db.OpSearchCatalog, Err: errors.New("nil query")}
	}

	conn, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, classify(db.OpSearchCatalog, err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	return s.render.searchCatalog(ctx, tx, q)
}

func (r renderer) searchCatalog(ctx context.Context, qr querier, q *db.CatalogQuery) (*db.SearchResult, error) {
	sql, args, err := r.catalogSQL(q)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearchCatalog, Err: err}
	}

	if q.Predicate.Strategies().Has(strategy.Fuzzy) {
		threshold := strconv.FormatFloat(q.Predicate.Threshold(), 'f', -1, 64)
		if _, err := qr.Exec(ctx, setWordSimilarityThreshold, threshold); err != nil {
			return nil, classify(db.OpSearchCatalog, err)
		}
	}

	res, err := scanCatalog(ctx, qr, sql, args)
	if err != nil {
		return nil, err
	}

	// An empty window says nothing about the total unless it started at zero.
	if len(res.Entries) == 0 && (q.Offset > 0 || q.Limit == 0) {
		countSQL, countArgs, err := r.countSQL(q.Predicate)
		if err != nil {
			return nil, &db.Error{Op: db.OpCountCatalog, Err: err}
		}
		var total int64
		if err := qr.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, classify(db.OpCountCatalog, err)
		}
		res.Total = int(total)
	}
	return res, nil
}

func scanCatalog(ctx context.Context, qr querier, sql string, args []any) (*db.SearchResult, error) {
	rows, err := qr.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(db.OpSearchCatalog, err)
	}
	defer rows.Close()

	res := &db.SearchResult{}
	for rows.Next() {
		var (
			id, title, handle, url, category, tags, sku, imageURL string
			price                                                 *string
			fullMatch, demoted                                    bool
			relevance                                             float64
			total                                                 int64
		)
		if err := rows.Scan(&id, &title, &handle, &url, &category, &tags, &sku, &price, &imageURL,
			&fullMatch, &demoted, &relevance, &total); err != nil {
			return nil, classify(db.OpSearchCatalog, err)
		}
		fields := map[string]string{
			db.FieldTitle:    title,
			db.FieldHandle:   handle,
			db.FieldURL:      url,
			db.FieldCategory: category,
			db.FieldTags:     tags,
			db.FieldSKU:      sku,
			db.FieldImageURL: imageURL,
		}
		if price != nil {
			fields[db.FieldPrice] = *price
		}
		res.Total = int(total)
		res.Entries = append(res.Entries, db.SearchEntry{
			Key:       id,
			Score:     relevance,
			FullMatch: fullMatch,
			Demoted:   demoted,
			Fields:    fields,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, classify(db.OpSearchCatalog, err)
	}
	return res, nil
}

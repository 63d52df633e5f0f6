package postgres

import (
	"context"
	"errors"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

// SearchDictionary returns up to K terms by descending trigram similarity to the token.
func (s *Store) SearchDictionary(ctx context.Context, q *db.DictionaryQuery) (*db.SearchResult, error) {
	if q == nil || q.K <= 0 {
		return nil, &db.Error{Op: db.OpSearchDictionary, Err: errors.New("k must be positive")}
	}
	sql, args := s.render.dictionarySQL(q)

	conn, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, classify(db.OpSearchDictionary, err)
	}
	defer rows.Close()

	res := &db.SearchResult{}
	for rows.Next() {
		var e db.SearchEntry
		if err := rows.Scan(&e.Key, &e.Score); err != nil {
			return nil, classify(db.OpSearchDictionary, err)
		}
		res.Entries = append(res.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(db.OpSearchDictionary, err)
	}
	res.Total = len(res.Entries)
	return res, nil
}

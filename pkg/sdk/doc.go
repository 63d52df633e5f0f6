// Package shopsearch embeds the shopsearch product search engine in a Go program.
//
// The client owns its catalog store (PostgreSQL with pg_trgm, or an in-memory
// catalog loaded from a YAML fixture) and an optional suggestion cache.
//
//	client, _ := shopsearch.New(ctx,
//	    shopsearch.WithPostgres("postgres://shop@localhost/shop"),
//	    shopsearch.WithStrategies("prefix", "fuzzy"),
//	)
//	defer client.Close()
//
//	page, _ := client.Search(ctx, "iphone 14", 0, 20)
//	for _, p := range page.Results {
//	    fmt.Println(p.Title, p.Score)
//	}
//	if page.DidYouMean != nil {
//	    // zero matches: spelling suggestions per token
//	}
package shopsearch

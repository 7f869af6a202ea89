// Package solrkit is a client for Solr-compatible search engines. Queries
// are composed from typed components (facets, highlighting, spellcheck,
// grouping, more-like-this, stats, debug, dismax, spatial) and the
// responses, whose named lists may arrive as flat alternating arrays or as
// objects, are parsed back into typed results.
//
// # Composing a query
//
//	client, _ := solrkit.New(
//	    solrkit.WithURL("http://localhost:8983/solr"),
//	    solrkit.WithCore("techproducts"),
//	)
//	q := solrkit.NewQuery("memory")
//	q.CreateFilter("stock", "inStock:true", "st")
//	f, _ := q.FacetSet().CreateField("cats", "cat")
//	f.AddExclude("st")
//	q.Highlighting().AddFields("name", "features")
//	res, _ := client.Select(ctx, q)
//	for _, c := range res.FacetSet().Field("cats").Values() {
//	    fmt.Println(c.Value, c.Count)
//	}
//
// # Fluent search
//
//	res, _ := client.Search("places").
//	    Where("country", "NO").
//	    Near("location", 59.91, 10.75).Km(25).
//	    Limit(20).
//	    Do(ctx)
//	hits, _ := solrkit.Hits[Place](res)
package solrkit

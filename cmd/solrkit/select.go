package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/solrkit"
)

func selectCommand() *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Run one select query and print the parsed result as JSON",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "core", Usage: "Core to query (default: solr.default_core)"},
			&cli.StringSliceFlag{Name: "fq", Usage: "Filter query, repeatable"},
			&cli.StringSliceFlag{Name: "fl", Usage: "Returned field, repeatable"},
			&cli.StringSliceFlag{Name: "sort", Usage: "Sort clause \"field [asc|desc]\", repeatable"},
			&cli.StringSliceFlag{Name: "facet", Usage: "Field to facet on, repeatable"},
			&cli.StringFlag{Name: "pivot", Usage: "Comma-separated fields of a pivot facet"},
			&cli.StringFlag{Name: "hl", Usage: "Comma-separated fields to highlight"},
			&cli.StringFlag{Name: "mlt", Usage: "Comma-separated more-like-this fields"},
			&cli.IntFlag{Name: "rows", Usage: "Number of documents", Value: 10},
			&cli.IntFlag{Name: "start", Usage: "Offset of the first document"},
			&cli.StringFlag{Name: "knn-field", Usage: "Dense vector field for a KNN query"},
			&cli.StringFlag{Name: "knn-text", Usage: "Text embedded into the KNN query vector"},
			&cli.IntFlag{Name: "top-k", Usage: "KNN neighbours", Value: 10},
			&cli.BoolFlag{Name: "params", Usage: "Print the request parameters instead of sending them"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := newApp(ctx, c)
			if err != nil {
				return err
			}
			defer a.close()

			q, err := queryFromFlags(c)
			if err != nil {
				return err
			}
			return a.runSelect(ctx, os.Stdout, c.String("core"), q, c.Bool("params"))
		},
	}
}

func queryFromFlags(c *cli.Command) (*solrkit.Query, error) {
	q := solrkit.NewQuery(strings.Join(c.Args().Slice(), " "))
	rows, start := c.Int("rows"), c.Int("start")
	q.Rows, q.Start = &rows, &start
	q.Fields = c.StringSlice("fl")

	for _, s := range c.StringSlice("sort") {
		field, order, err := parseSort(s)
		if err != nil {
			return nil, err
		}
		q.AddSort(field, order)
	}
	for i, fq := range c.StringSlice("fq") {
		if _, err := q.CreateFilter("fq"+strconv.Itoa(i), fq); err != nil {
			return nil, fmt.Errorf("filter %q: %w", fq, err)
		}
	}
	for _, field := range c.StringSlice("facet") {
		if _, err := q.FacetSet().CreateField(field, field); err != nil {
			return nil, fmt.Errorf("facet %q: %w", field, err)
		}
	}
	if fields := c.String("pivot"); fields != "" {
		p, err := q.FacetSet().CreatePivot("pivot")
		if err != nil {
			return nil, fmt.Errorf("pivot %q: %w", fields, err)
		}
		p.SetFields(fields)
	}
	if fields := c.String("hl"); fields != "" {
		q.Highlighting().SetFields(fields)
	}
	if fields := c.String("mlt"); fields != "" {
		q.MoreLikeThis().SetFields(fields)
	}
	if field := c.String("knn-field"); field != "" {
		q.KNN = &solrkit.KNN{Field: field, TopK: c.Int("top-k"), Text: c.String("knn-text")}
	}
	return q, nil
}

func parseSort(s string) (string, solrkit.Order, error) {
	parts := strings.Fields(s)
	switch len(parts) {
	case 1:
		return parts[0], solrkit.Asc, nil
	case 2:
		return parts[0], solrkit.Order(strings.ToLower(parts[1])), nil
	default:
		return "", "", fmt.Errorf("invalid sort clause %q", s)
	}
}

func (a *app) runSelect(ctx context.Context, out io.Writer, core string, q *solrkit.Query, paramsOnly bool) error {
	if paramsOnly {
		req, err := a.client.Build(q)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		_, err = fmt.Fprintln(out, req.String())
		return err
	}

	var (
		res *solrkit.Result
		err error
	)
	if core != "" {
		res, err = a.client.SelectCore(ctx, core, q)
	} else {
		res, err = a.client.Select(ctx, q)
	}
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

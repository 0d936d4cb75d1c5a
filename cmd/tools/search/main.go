// One-shot search from the terminal: same pipeline as the web UI, results
// printed as a console table.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/david/sam-finder/internal/config"
	"github.com/david/sam-finder/internal/sam"
	"github.com/david/sam-finder/internal/transform"
)

func main() {
	from := flag.String("from", "", "posted-from date (YYYY-MM-DD, required)")
	to := flag.String("to", "", "posted-to date (YYYY-MM-DD, required)")
	limit := flag.Int("limit", 100, "result limit (1-1000)")
	naicsOnly := flag.Bool("naics", false, "keep only construction NAICS codes")
	setAsides := flag.String("set-asides", "", "comma-separated set-aside codes ('blank' matches unset)")
	deadline := flag.String("deadline-after", "", "keep only deadlines on or after this date (YYYY-MM-DD)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	catalog, err := config.LoadCatalog()
	if err != nil {
		log.Fatalf("Catalog error: %v", err)
	}

	postedFrom, err := time.Parse("2006-01-02", *from)
	if err != nil {
		log.Fatal("Both -from and -to dates are required (YYYY-MM-DD).")
	}
	postedTo, err := time.Parse("2006-01-02", *to)
	if err != nil {
		log.Fatal("Both -from and -to dates are required (YYYY-MM-DD).")
	}

	opts := transform.Options{}
	if *naicsOnly {
		opts.NAICSPrefix = catalog.NAICSPrefix
	}
	for _, code := range strings.Split(*setAsides, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if !catalog.ValidSetAside(code) {
			log.Fatalf("Unknown set-aside code: %s", code)
		}
		opts.SetAsides = append(opts.SetAsides, code)
	}
	if *deadline != "" {
		d, err := time.Parse("2006-01-02", *deadline)
		if err != nil {
			log.Fatalf("Invalid -deadline-after date: %s", *deadline)
		}
		opts.DeadlineMin = &d
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := sam.New(cfg.BaseURL, cfg.APIKey, nil)
	result, err := client.Search(ctx, sam.SearchParams{
		PostedFrom: postedFrom,
		PostedTo:   postedTo,
		Limit:      *limit,
		PType:      "o",
	})
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	res := transform.Run(result.Opportunities, opts)
	for _, w := range res.Warnings {
		log.Printf("Warning: %s", w)
	}
	if res.NoMatches {
		log.Println("No results found.")
		return
	}

	tbl := transform.BuildDisplay(res.Visible, catalog.DisplayFields, transform.LinksRaw)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	header := make(table.Row, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range tbl.Rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = v
		}
		t.AppendRow(r)
	}
	t.Render()
	log.Printf("%d of %d opportunities shown", len(res.Visible), result.TotalRecords)
}

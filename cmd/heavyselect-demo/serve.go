package main

import (
	"database/sql"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/unkn0wn-root/heavyselect"
	"github.com/unkn0wn-root/heavyselect/endpoint"
	zladapter "github.com/unkn0wn-root/heavyselect/log/zerolog"
	"github.com/unkn0wn-root/heavyselect/promhooks"
	"github.com/unkn0wn-root/heavyselect/provider/bigcache"
	"github.com/unkn0wn-root/heavyselect/source"
	sqlitesource "github.com/unkn0wn-root/heavyselect/source/sqlite"
	"github.com/unkn0wn-root/heavyselect/widget"
)

func serveCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo form and the autocomplete endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(addr, dbPath)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", ":memory:", "sqlite database path")
	return cmd
}

var seedAlbums = []string{
	"Abbey Road", "Blue Train", "Harvest", "Headhunters",
	"Horses", "Kind of Blue", "Loveless", "Low",
	"Maggot Brain", "Remain in Light",
}

func seed(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS albums (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("migrate demo db: %w", err)
	}
	for _, title := range seedAlbums {
		if _, err := db.Exec(`INSERT INTO albums (title) VALUES (?)`, title); err != nil {
			return fmt.Errorf("seed demo db: %w", err)
		}
	}
	return nil
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<title>heavyselect demo</title>
{{range .Media.CSS}}<link rel="stylesheet" href="{{.}}">
{{end}}{{range .Media.JS}}<script src="{{.}}"></script>
{{end}}</head>
<body>
<form>
<label for="album">Album</label>
{{.Widget}}
</form>
</body>
</html>
`))

func serve(addr, dbPath string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := seed(db); err != nil {
		return err
	}

	sources := source.NewRegistry()
	sources.Register("albums", sqlitesource.New(db))

	prov, err := bigcache.New(bigcache.Config{LifeWindow: time.Hour})
	if err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	cache, err := heavyselect.New(heavyselect.Options{
		Namespace:  "demo",
		Provider:   prov,
		Logger:     zladapter.Logger{L: logger},
		Hooks:      promhooks.Hooks{},
		DefaultTTL: time.Hour,
	})
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	albumSelect, err := widget.NewModelSelect(cache, heavyselect.Config{
		Source:       "albums",
		Query:        heavyselect.Query{Collection: "albums", TextField: "title"},
		SearchFields: []string{"title"},
		MaxResults:   20,
	}, widget.WithPlaceholder("Pick an album"))
	if err != nil {
		return fmt.Errorf("widget: %w", err)
	}

	mux := http.NewServeMux()
	pattern, err := endpoint.RegisterRoutes(mux, "/",
		endpoint.WithCache(cache),
		endpoint.WithSources(sources),
		endpoint.WithLogger(zladapter.Logger{L: logger}),
	)
	if err != nil {
		return err
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		markup, err := albumSelect.Render(r.Context(), "album")
		if err != nil {
			logger.Error().Err(err).Msg("render failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pageTmpl.Execute(w, struct {
			Widget template.HTML
			Media  widget.Media
		}{Widget: markup, Media: albumSelect.Media()})
	})

	logger.Info().Str("addr", addr).Str("endpoint", pattern).Msg("serving")
	return http.ListenAndServe(addr, mux)
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/lumentrace/lumen/pkg/history"
	"github.com/lumentrace/lumen/pkg/observability"
)

// galleryCommand creates the gallery command, a read-only HTTP server over
// finished renders. It never renders anything itself.
func (c *CLI) galleryCommand() *cobra.Command {
	var (
		addr string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Serve finished renders over HTTP",
		Long: `Gallery serves the PNG images in a directory plus the run history as a
small read-only website. It serves only completed files; rendering always
happens through the render command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.NewFileStore("")
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           galleryRouter(dir, store),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				_ = srv.Close()
			}()

			printInfo("Serving %s on http://localhost%s", dir, addr)
			err = srv.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory of finished renders")

	return cmd
}

// galleryRouter builds the chi router for the gallery.
func galleryRouter(dir string, store history.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(galleryHooks)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		images, err := listImages(dir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = galleryTemplate.Execute(w, images)
	})

	r.Get("/images/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		// Only serve flat PNG names; no traversal into subdirectories.
		if name != filepath.Base(name) || !strings.HasSuffix(name, ".png") {
			http.NotFound(w, req)
			return
		}
		http.ServeFile(w, req, filepath.Join(dir, name))
	})

	r.Get("/api/runs", func(w http.ResponseWriter, req *http.Request) {
		records, err := store.List(req.Context(), 0)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	})

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	return r
}

// galleryHooks reports requests to the observability registry.
func galleryHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		observability.Gallery().OnRequest(req.Context(), req.Method, req.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		observability.Gallery().OnResponse(req.Context(), req.Method, req.URL.Path,
			ww.Status(), time.Since(start))
	})
}

// galleryImage is one entry on the index page.
type galleryImage struct {
	Name     string
	Modified time.Time
}

// listImages returns the PNG files in dir, newest first.
func listImages(dir string) ([]galleryImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []galleryImage
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		images = append(images, galleryImage{Name: e.Name(), Modified: info.ModTime()})
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].Modified.After(images[j].Modified)
	})
	return images, nil
}

var galleryTemplate = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html>
<head>
<title>lumen gallery</title>
<style>
body { background: #111; color: #ddd; font-family: sans-serif; margin: 2rem; }
h1 { font-weight: normal; }
.grid { display: flex; flex-wrap: wrap; gap: 1rem; }
.card { background: #1a1a1a; padding: 0.5rem; border-radius: 4px; }
.card img { max-width: 320px; display: block; }
.card p { margin: 0.4rem 0 0; font-size: 0.8rem; color: #888; }
</style>
</head>
<body>
<h1>lumen gallery</h1>
<div class="grid">
{{range .}}<div class="card">
<a href="/images/{{.Name}}"><img src="/images/{{.Name}}" alt="{{.Name}}"></a>
<p>{{.Name}}</p>
</div>
{{else}}<p>No renders yet.</p>
{{end}}</div>
</body>
</html>
`))

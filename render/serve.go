package render

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/grailbio/base/log"

	"github.com/megjohnson1999/contig-coverage-viewer/coverage"
)

// NewHandler routes "/" to the rendered viewer page and "/artifact.json"
// to the raw artifact, for browsing results without writing files.
func NewHandler(art *coverage.Artifact, page Page) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := Write(w, art, page); err != nil {
			log.Error.Printf("render: serving page: %v", err)
		}
	}).Methods(http.MethodGet)
	r.HandleFunc("/artifact.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := art.EncodeJSON(w); err != nil {
			log.Error.Printf("render: serving artifact: %v", err)
		}
	}).Methods(http.MethodGet)
	return r
}

// Serve blocks serving the viewer on addr.
func Serve(addr string, art *coverage.Artifact, page Page) error {
	log.Printf("render: serving coverage viewer on http://%s/", addr)
	return http.ListenAndServe(addr, NewHandler(art, page))
}

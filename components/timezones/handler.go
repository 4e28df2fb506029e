package timezones

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/goliatone/go-formval/pkg/form"
)

// HandlerConfig tunes the search endpoint.
type HandlerConfig struct {
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Zones        []string
}

func (c HandlerConfig) withDefaults() HandlerConfig {
	if c.SearchParam == "" {
		c.SearchParam = "q"
	}
	if c.LimitParam == "" {
		c.LimitParam = "limit"
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 50
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = 200
	}
	return c
}

type searchResponse struct {
	Results []form.Choice `json:"results"`
}

// Handler serves GET ?q=<query>&limit=<n> as a JSON option list for
// typeahead pickers. A zero config uses the embedded zone list.
func Handler(cfg HandlerConfig) http.Handler {
	cfg = cfg.withDefaults()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		zones := cfg.Zones
		if zones == nil {
			var err error
			zones, err = DefaultZones()
			if err != nil {
				http.Error(w, "zone list unavailable", http.StatusInternalServerError)
				return
			}
		}

		limit := cfg.DefaultLimit
		if raw := r.URL.Query().Get(cfg.LimitParam); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			if n > 0 {
				limit = n
			}
		}
		if limit > cfg.MaxLimit {
			limit = cfg.MaxLimit
		}

		results := Search(zones, r.URL.Query().Get(cfg.SearchParam), limit)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(searchResponse{Results: Choices(results)}); err != nil {
			http.Error(w, "encode response", http.StatusInternalServerError)
		}
	})
}

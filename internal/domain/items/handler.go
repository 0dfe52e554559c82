package items

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/items", listItemsHandler(svc))
}

// itemResponse representa un item del catálogo.
type itemResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	MappingKey string  `json:"mapping_key"`
}

// listItemsHandler godoc
// @Summary Listar catálogo de items
// @Description Devuelve los items que se pueden cargar en una registración, en orden de catálogo.
// @Tags items
// @Produce json
// @Success 200 {array} itemResponse
// @Failure 500 {string} string "internal error"
// @Router /items [get]
func listItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := svc.Catalog(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		list := cat.Items()
		out := make([]itemResponse, 0, len(list))
		for _, it := range list {
			out = append(out, itemResponse{
				ID:         it.ID,
				Name:       it.Name,
				Price:      it.Price,
				MappingKey: it.MappingKey,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}

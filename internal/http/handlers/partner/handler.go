package partner

import (
	"github.com/partnerconnector/internal/provider"
)

// Handler carries partner-facing HTTP handlers.
type Handler struct {
	*provider.Container
}

// New creates a partner handler set.
func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

package service

import (
	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/repository"
)

// ChainEntry is one level of a partner's upline chain.
type ChainEntry struct {
	UserID uint `json:"user_id"`
	Level  int  `json:"level"`
}

// HierarchyService resolves partner upline chains.
type HierarchyService struct {
	userRepo repository.UserRepository
}

// NewHierarchyService creates a hierarchy service.
func NewHierarchyService(userRepo repository.UserRepository) *HierarchyService {
	return &HierarchyService{userRepo: userRepo}
}

// ResolveChain walks parent links starting from the given partner. Level 0 is
// the partner itself, followed by at most two upline hops. A missing parent
// ends the walk; a cycle in the parent links stops the walk with a warning and
// returns whatever was collected.
func (s *HierarchyService) ResolveChain(userID uint) ([]ChainEntry, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	chain := []ChainEntry{{UserID: user.ID, Level: 0}}
	visited := map[uint]bool{user.ID: true}

	current := user
	for level := 1; level <= constants.MaxUplineHops; level++ {
		if current.ParentPartnerID == nil || *current.ParentPartnerID == 0 {
			break
		}
		parentID := *current.ParentPartnerID
		if visited[parentID] {
			logger.Warnw("partner_hierarchy_cycle_detected",
				"user_id", userID,
				"cycle_at", parentID,
				"level", level,
			)
			break
		}
		parent, err := s.userRepo.GetByID(parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			// Dangling parent reference, treat the chain as ended.
			logger.Warnw("partner_hierarchy_parent_missing",
				"user_id", userID,
				"parent_id", parentID,
				"level", level,
			)
			break
		}
		chain = append(chain, ChainEntry{UserID: parent.ID, Level: level})
		visited[parent.ID] = true
		current = parent
	}
	return chain, nil
}

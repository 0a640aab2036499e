package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupHierarchyServiceTest(t *testing.T) (*HierarchyService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:hierarchy_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewHierarchyService(repository.NewUserRepository(db)), db
}

func createHierarchyTestPartner(t *testing.T, db *gorm.DB, email string, parentID *uint, level int) models.User {
	t.Helper()

	row := models.User{
		Email:           email,
		PasswordHash:    "hash",
		DisplayName:     "tester",
		Status:          constants.UserStatusActive,
		ParentPartnerID: parentID,
		PartnerLevel:    level,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}
	return row
}

func TestResolveChainThreeLevels(t *testing.T) {
	svc, db := setupHierarchyServiceTest(t)

	grandparent := createHierarchyTestPartner(t, db, "gp@example.com", nil, 1)
	parent := createHierarchyTestPartner(t, db, "p@example.com", &grandparent.ID, 2)
	child := createHierarchyTestPartner(t, db, "c@example.com", &parent.ID, 3)

	chain, err := svc.ResolveChain(child.ID)
	if err != nil {
		t.Fatalf("resolve chain failed: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d", len(chain))
	}
	expected := []struct {
		userID uint
		level  int
	}{
		{child.ID, 0},
		{parent.ID, 1},
		{grandparent.ID, 2},
	}
	for i, want := range expected {
		if chain[i].UserID != want.userID || chain[i].Level != want.level {
			t.Fatalf("entry %d: expected user %d level %d, got user %d level %d",
				i, want.userID, want.level, chain[i].UserID, chain[i].Level)
		}
	}
}

func TestResolveChainTruncatesDeepUpline(t *testing.T) {
	svc, db := setupHierarchyServiceTest(t)

	top := createHierarchyTestPartner(t, db, "top@example.com", nil, 1)
	mid1 := createHierarchyTestPartner(t, db, "mid1@example.com", &top.ID, 2)
	mid2 := createHierarchyTestPartner(t, db, "mid2@example.com", &mid1.ID, 3)
	leaf := createHierarchyTestPartner(t, db, "leaf@example.com", &mid2.ID, 3)

	chain, err := svc.ResolveChain(leaf.ID)
	if err != nil {
		t.Fatalf("resolve chain failed: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("expected chain capped at 3 entries, got %d", len(chain))
	}
	if chain[2].UserID != mid1.ID {
		t.Fatalf("expected deepest entry %d, got %d", mid1.ID, chain[2].UserID)
	}
}

func TestResolveChainSingleLevel(t *testing.T) {
	svc, db := setupHierarchyServiceTest(t)

	solo := createHierarchyTestPartner(t, db, "solo@example.com", nil, 1)

	chain, err := svc.ResolveChain(solo.ID)
	if err != nil {
		t.Fatalf("resolve chain failed: %v", err)
	}
	if len(chain) != 1 {
		t.Fatalf("expected 1 chain entry, got %d", len(chain))
	}
	if chain[0].UserID != solo.ID || chain[0].Level != 0 {
		t.Fatalf("unexpected entry %+v", chain[0])
	}
}

func TestResolveChainStopsOnCycle(t *testing.T) {
	svc, db := setupHierarchyServiceTest(t)

	a := createHierarchyTestPartner(t, db, "cycle-a@example.com", nil, 1)
	b := createHierarchyTestPartner(t, db, "cycle-b@example.com", &a.ID, 2)
	if err := db.Model(&models.User{}).Where("id = ?", a.ID).Update("parent_partner_id", b.ID).Error; err != nil {
		t.Fatalf("create cycle failed: %v", err)
	}

	chain, err := svc.ResolveChain(b.ID)
	if err != nil {
		t.Fatalf("resolve chain failed: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected cycle to stop the walk at 2 entries, got %d", len(chain))
	}
	if chain[0].UserID != b.ID || chain[1].UserID != a.ID {
		t.Fatalf("unexpected chain %+v", chain)
	}
}

func TestResolveChainStopsOnDanglingParent(t *testing.T) {
	svc, db := setupHierarchyServiceTest(t)

	missing := uint(99999)
	orphan := createHierarchyTestPartner(t, db, "orphan@example.com", &missing, 2)

	chain, err := svc.ResolveChain(orphan.ID)
	if err != nil {
		t.Fatalf("resolve chain failed: %v", err)
	}
	if len(chain) != 1 {
		t.Fatalf("expected walk to stop at the orphan, got %d entries", len(chain))
	}
}

func TestResolveChainUnknownUser(t *testing.T) {
	svc, _ := setupHierarchyServiceTest(t)

	if _, err := svc.ResolveChain(123456); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

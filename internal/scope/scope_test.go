package scope

import (
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"forms_portal/internal/models"
)

// dryRunDB opens a gorm handle that renders SQL without executing it.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return gdb
}

func renderSQL(t *testing.T, db *gorm.DB) (string, []interface{}) {
	t.Helper()
	var rows []models.FormResponse
	stmt := db.Find(&rows).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestUserScopeRestrictsToSelf(t *testing.T) {
	restrict, err := ForIdentity(models.Identity{UserID: 42, Role: models.RoleUser})
	if err != nil {
		t.Fatalf("ForIdentity: %v", err)
	}

	sql, vars := renderSQL(t, dryRunDB(t).Scopes(restrict))
	if !strings.Contains(sql, "user_id = $1") {
		t.Fatalf("expected self filter, got %q", sql)
	}
	if len(vars) == 0 || vars[0] != uint(42) {
		t.Fatalf("expected caller's user id bound first, got %v", vars)
	}
}

func TestAgentScopeRestrictsToBank(t *testing.T) {
	bankID := uint(7)
	restrict, err := ForIdentity(models.Identity{UserID: 5, Role: models.RoleAgent, BankID: &bankID})
	if err != nil {
		t.Fatalf("ForIdentity: %v", err)
	}

	sql, vars := renderSQL(t, dryRunDB(t).Scopes(restrict))
	if !strings.Contains(sql, "bank_id = $1") {
		t.Fatalf("expected bank filter, got %q", sql)
	}
	if strings.Contains(sql, "user_id") {
		t.Fatalf("agent scope must not filter by user, got %q", sql)
	}
	if len(vars) == 0 || vars[0] != uint(7) {
		t.Fatalf("expected agent's bank id bound first, got %v", vars)
	}
}

func TestAgentScopeWithoutBankFails(t *testing.T) {
	_, err := ForIdentity(models.Identity{UserID: 5, Role: models.RoleAgent})
	if !errors.Is(err, ErrNoBank) {
		t.Fatalf("expected ErrNoBank, got %v", err)
	}
}

func TestAdminScopeIsUnrestricted(t *testing.T) {
	restrict, err := ForIdentity(models.Identity{UserID: 1, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("ForIdentity: %v", err)
	}

	sql, _ := renderSQL(t, dryRunDB(t).Scopes(restrict))
	if strings.Contains(sql, "user_id") || strings.Contains(sql, "bank_id") {
		t.Fatalf("admin scope must not restrict rows, got %q", sql)
	}
}

func TestUnknownRoleFails(t *testing.T) {
	if _, err := ForIdentity(models.Identity{UserID: 1, Role: "superuser"}); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestFiltersCannotWidenScope(t *testing.T) {
	restrict, err := ForIdentity(models.Identity{UserID: 42, Role: models.RoleUser})
	if err != nil {
		t.Fatalf("ForIdentity: %v", err)
	}

	otherUser := uint(99)
	submitted := true
	filters := Filters{UserID: &otherUser, IsSubmitted: &submitted}

	query := filters.Apply(dryRunDB(t).Scopes(restrict))
	sql, vars := renderSQL(t, query)

	// Both predicates must be present: the caller filter narrows the
	// self scope instead of replacing it.
	if strings.Count(sql, "user_id =") != 2 {
		t.Fatalf("expected scope and filter user predicates, got %q", sql)
	}
	if !strings.Contains(sql, "is_submitted =") {
		t.Fatalf("expected submitted filter, got %q", sql)
	}

	found := map[uint]bool{}
	for _, v := range vars {
		if u, ok := v.(uint); ok {
			found[u] = true
		}
	}
	if !found[42] || !found[99] {
		t.Fatalf("expected both user ids bound, got %v", vars)
	}
}

func TestFiltersApplyAll(t *testing.T) {
	bankID, sectionID := uint(1), uint(2)
	filters := Filters{BankID: &bankID, SectionID: &sectionID}

	sql, _ := renderSQL(t, filters.Apply(dryRunDB(t)))
	if !strings.Contains(sql, "bank_id = $1") || !strings.Contains(sql, "section_id = $2") {
		t.Fatalf("expected bank and section filters, got %q", sql)
	}
}

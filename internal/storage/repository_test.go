package storage

import (
	"context"
	"testing"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/ddl"
)

type fakeRepo struct{}

func (fakeRepo) Exec(ctx context.Context, sql string) error { return nil }
func (fakeRepo) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	return int64(len(rows)), nil
}
func (fakeRepo) Close() {}

/*
TestRegisterAndNew verifies the factory registry round trip and the error
for unregistered kinds.
*/
func TestRegisterAndNew(t *testing.T) {
	Register("fake", func(ctx context.Context, cfg Config) (Repository, error) {
		return fakeRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: "fake"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer repo.Close()

	if _, err := New(context.Background(), Config{Kind: "nope"}); err == nil {
		t.Fatalf("unregistered kind should fail")
	}

	found := false
	for _, k := range ListKinds() {
		if k == "fake" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListKinds() = %v; want it to contain fake", ListKinds())
	}
}

/*
TestBuildReplaceDDL verifies the replace-DDL registry dispatch.
*/
func TestBuildReplaceDDL(t *testing.T) {
	RegisterReplaceDDL("fakeddl", func(def ddl.TableDef) ([]string, error) {
		return []string{"DROP " + def.Name, "CREATE " + def.Name}, nil
	})

	stmts, err := BuildReplaceDDL("fakeddl", ddl.TableDef{Name: "megasena"})
	if err != nil {
		t.Fatalf("BuildReplaceDDL: %v", err)
	}
	if len(stmts) != 2 || stmts[0] != "DROP megasena" {
		t.Fatalf("stmts = %v", stmts)
	}

	if _, err := BuildReplaceDDL("nope", ddl.TableDef{Name: "x"}); err == nil {
		t.Fatalf("unregistered DDL kind should fail")
	}
}

package rawfiles

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"b_article.txt",
		"a_article.txt",
		"nested/c_article.txt",
		"idx_7_batch_2_deliverynotification.txt",
		"notes.md",
	)

	got, err := List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a_article.txt"),
		filepath.Join(dir, "b_article.txt"),
		filepath.Join(dir, "nested", "c_article.txt"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestSweepRemovesNotifications(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"idx_12_batch_1_deliverynotification.txt",
		"idx_3_batch_4_deliverynotification.txt",
		"nested/idx_5_batch_1_deliverynotification.txt",
		"keep_article.txt",
	)

	indices, err := Sweep(dir)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	want := []string{"12", "3", "5"}
	if !reflect.DeepEqual(indices, want) {
		t.Fatalf("Sweep indices = %v, want %v", indices, want)
	}

	for _, name := range []string{
		"idx_12_batch_1_deliverynotification.txt",
		"idx_3_batch_4_deliverynotification.txt",
		filepath.Join("nested", "idx_5_batch_1_deliverynotification.txt"),
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s still present after sweep", name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "keep_article.txt")); err != nil {
		t.Errorf("complete article removed by sweep: %v", err)
	}
}

func TestSweepIgnoresNearMisses(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"idx_abc_batch_1_deliverynotification.txt",
		"idx_1_batch_2_deliverynotification.txt.bak",
	)

	indices, err := Sweep(dir)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(indices) != 0 {
		t.Fatalf("Sweep indices = %v, want none", indices)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("%d files remain, want 2 untouched", len(entries))
	}
}

func TestListEmptyDir(t *testing.T) {
	got, err := List(t.TempDir())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("List = %v, want empty", got)
	}
}

package store

import "errors"
import "os"
import "path/filepath"
import "testing"

func writeGen(gen string) func(dir string) error {
	return func(dir string) error {
		return os.WriteFile(filepath.Join(dir, "gen"), []byte(gen), 0644)
	}
}

func readGen(t *testing.T, dir string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, "gen"))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRotation(t *testing.T) {
	s := New(t.TempDir())
	const name = "circle_count.RegressionModel.fc1-8"
	if s.Exists(name) {
		t.Fatal("exists before save")
	}
	for _, gen := range []string{"1", "2", "3"} {
		if err := s.Save(name, writeGen(gen)); err != nil {
			t.Fatal(err)
		}
	}
	current, backup := s.Paths(name)
	if g := readGen(t, current); g != "3" {
		t.Fatalf("current generation %s", g)
	}
	if g := readGen(t, backup); g != "2" {
		t.Fatalf("backup generation %s", g)
	}
	entries, err := os.ReadDir(s.Base())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("%d entries in store", len(entries))
	}
}

func TestFirstSaveHasNoBackup(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Save("m", writeGen("1")); err != nil {
		t.Fatal(err)
	}
	_, backup := s.Paths("m")
	if _, err := os.Stat(backup); !os.IsNotExist(err) {
		t.Fatalf("backup after first save: %v", err)
	}
	if !s.Exists("m") {
		t.Fatal("record missing")
	}
}

func TestFailedWriteKeepsCurrent(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Save("m", writeGen("1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("m", writeGen("2")); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	err := s.Save("m", func(string) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	current, backup := s.Paths("m")
	if g := readGen(t, current); g != "2" {
		t.Fatalf("current generation %s", g)
	}
	if g := readGen(t, backup); g != "1" {
		t.Fatalf("backup generation %s", g)
	}
	if _, err := os.Stat(current + tmpSuffix); !os.IsNotExist(err) {
		t.Fatal("temporary directory left behind")
	}
}

func TestEmptyName(t *testing.T) {
	if err := New(t.TempDir()).Save("", writeGen("1")); err == nil {
		t.Fatal("empty name accepted")
	}
}

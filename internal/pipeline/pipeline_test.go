package pipeline

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/scansep/internal/config"
	"github.com/backmassage/scansep/internal/logging"
)

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "0001.jpg")
	touch(t, dir, "0002.TIF")
	touch(t, dir, "0003.png")
	touch(t, dir, "0001.xml")
	touch(t, dir, "notes.txt")
	touch(t, dir, "scan.webp")

	files, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"0001.jpg", "0002.TIF", "0003.png", "scan.webp"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_AllImageExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp", ".webp", ".gif"}
	for _, ext := range exts {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.pdf")

	files, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != len(exts) {
		t.Errorf("got %d files, want %d", len(files), len(exts))
	}
}

func TestDiscover_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"scan_10.jpg", "scan_2.jpg", "scan_1.jpg", "scan_100.jpg"} {
		touch(t, dir, n)
	}

	files, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"scan_1.jpg", "scan_2.jpg", "scan_10.jpg", "scan_100.jpg"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_DirectoriesStayContiguous(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, dir, "inv2")
	mkdir(t, dir, "inv10")
	mkdir(t, dir, "inv2", "sub")
	touch(t, filepath.Join(dir, "inv10"), "0001.jpg")
	touch(t, filepath.Join(dir, "inv2"), "0002.jpg")
	touch(t, filepath.Join(dir, "inv2", "sub"), "0001.jpg")
	touch(t, filepath.Join(dir, "inv2"), "0001.jpg")

	files, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"inv2/0001.jpg", "inv2/0002.jpg", "inv2/sub/0001.jpg", "inv10/0001.jpg"}
	if !sliceEqual(rel, want) {
		t.Errorf("got %v, want %v", rel, want)
	}
}

func TestDiscover_FileInputsAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "0001.jpg")
	touch(t, dir, "0002.jpg")
	touch(t, dir, "readme.txt")

	files, err := Discover([]string{
		filepath.Join(dir, "0002.jpg"),
		filepath.Join(dir, "readme.txt"),
		dir,
	})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"0001.jpg", "0002.jpg"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_MissingInput(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope")})
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("err = %v, want ErrInputNotFound", err)
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	files, err := Discover([]string{t.TempDir()})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

// --- Inventory tests ---

func TestCollectInventories(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	mkdir(t, root1, "1548")
	mkdir(t, root1, "1547", "deel2")
	mkdir(t, root1, "99")
	mkdir(t, root2, "2000")
	touch(t, root1, "stray.jpg")
	touch(t, filepath.Join(root1, "1547"), "0001.jpg")
	touch(t, filepath.Join(root1, "1547", "deel2"), "0001.jpg")
	touch(t, filepath.Join(root1, "1548"), "0001.jpg")
	touch(t, filepath.Join(root2, "2000"), "0001.png")

	invs, err := CollectInventories([]string{root1, root2})
	if err != nil {
		t.Fatalf("CollectInventories: %v", err)
	}

	var names []string
	for _, inv := range invs {
		names = append(names, inv.Name)
	}
	if want := []string{"99", "1547", "1548", "2000"}; !sliceEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	counts := []int{0, 2, 1, 1}
	for i, inv := range invs {
		if len(inv.Images) != counts[i] {
			t.Errorf("%s: %d images, want %d", inv.Name, len(inv.Images), counts[i])
		}
	}
}

func TestCollectInventories_Errors(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	mkdir(t, root1, "1547")
	mkdir(t, root2, "1547")
	touch(t, root1, "file.jpg")

	tests := []struct {
		name  string
		roots []string
		want  error
	}{
		{"duplicate across roots", []string{root1, root2}, ErrDuplicateInventory},
		{"file root", []string{filepath.Join(root1, "file.jpg")}, ErrNotDirectory},
		{"missing root", []string{filepath.Join(root1, "nope")}, ErrInputNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CollectInventories(tt.roots)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSortNames(t *testing.T) {
	names := []string{"10", "2", "1b", "1a", "1"}
	SortNames(names)
	if want := []string{"1", "1a", "1b", "2", "10"}; !sliceEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

// --- Run tests ---

func TestRun_DirsSpreadExample(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "docs")
	writePNG(t, filepath.Join(in, "0001.png"), 100, 150)
	writePNG(t, filepath.Join(in, "0002.png"), 100, 150)
	writePNG(t, filepath.Join(in, "0003.png"), 50, 150)

	tests := []struct {
		name  string
		match config.MatchPolicy
		dirs  map[string]int // document dir → pages
	}{
		{"tolerant", config.MatchTolerant, map[string]int{"0001.png": 3}},
		{"exact", config.MatchExact, map[string]int{"0001.png": 2, "0003.png": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, config.ModeDirs, []string{in}, filepath.Join(out, tt.name))
			cfg.Match = tt.match
			cfg.Margin = 0.1

			stats, err := Run(context.Background(), &cfg, testLogger(t, &cfg))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if stats.Summary.Documents != len(tt.dirs) || stats.Summary.Pages != 3 {
				t.Errorf("Summary = %+v", stats.Summary)
			}
			for dir, pages := range tt.dirs {
				entries, err := os.ReadDir(filepath.Join(out, tt.name, dir))
				if err != nil {
					t.Fatalf("ReadDir(%s): %v", dir, err)
				}
				if len(entries) != pages {
					t.Errorf("%s: %d entries, want %d", dir, len(entries), pages)
				}
			}
		})
	}
}

func TestRun_StatisticsOnly(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "0001.png"), 100, 150)
	writePNG(t, filepath.Join(in, "0002.png"), 200, 300)

	cfg := testConfig(t, config.ModeDirs, []string{in}, "")
	stats, err := Run(context.Background(), &cfg, testLogger(t, &cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Summary.Documents != 2 || stats.Written != 0 {
		t.Errorf("stats = %+v, want 2 documents and nothing written", stats)
	}
}

func TestRun_UnreadableImageIsSoftFailure(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "0001.png"), 100, 150)
	touch(t, in, "0002.png") // empty file
	writePNG(t, filepath.Join(in, "0003.png"), 100, 150)

	cfg := testConfig(t, config.ModeDirs, []string{in}, "")
	stats, err := Run(context.Background(), &cfg, testLogger(t, &cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 1 || stats.Probed != 2 {
		t.Errorf("Failed = %d, Probed = %d; want 1, 2", stats.Failed, stats.Probed)
	}
	if stats.Summary.Documents != 1 || stats.Summary.Pages != 2 {
		t.Errorf("Summary = %+v, want one 2-page document", stats.Summary)
	}
}

func TestRun_Workbook(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "1547", "0001.png"), 100, 150)
	writePNG(t, filepath.Join(root, "1547", "0002.png"), 100, 150)
	writePNG(t, filepath.Join(root, "1547", "0003.png"), 300, 150)
	mkdir(t, root, "1548")
	out := filepath.Join(t.TempDir(), "report.xlsx")

	cfg := testConfig(t, config.ModeXLSX, []string{root}, out)
	stats, err := Run(context.Background(), &cfg, testLogger(t, &cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Inventories != 2 || stats.Empty != 1 || stats.Summary.Documents != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("workbook not written: %v", err)
	}
}

func TestRun_DuplicateInventoryWritesNothing(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	writePNG(t, filepath.Join(root1, "1547", "0001.png"), 100, 150)
	writePNG(t, filepath.Join(root2, "1547", "0001.png"), 100, 150)
	dir := t.TempDir()
	outputs := map[config.OutputMode]string{
		config.ModeXLSX: filepath.Join(dir, "report.xlsx"),
		config.ModeList: filepath.Join(dir, "list.txt"),
	}

	for mode, path := range outputs {
		cfg := testConfig(t, mode, []string{root1, root2}, path)
		_, err := Run(context.Background(), &cfg, testLogger(t, &cfg))
		if !errors.Is(err, ErrDuplicateInventory) {
			t.Errorf("%s: err = %v, want ErrDuplicateInventory", mode, err)
		}
		if _, err := os.Stat(path); err == nil {
			t.Errorf("%s: output written despite duplicate inventory", mode)
		}
	}
}

func TestRun_Listing(t *testing.T) {
	root := t.TempDir()
	for _, inv := range []string{"1547", "1548", "1549"} {
		touch(t, mkdir(t, root, inv), "0001.jpg")
	}
	touch(t, filepath.Join(root, "1548"), "0002.jpg")
	mkdir(t, root, "empty")
	out := filepath.Join(t.TempDir(), "list.txt")

	cfg := testConfig(t, config.ModeList, []string{root}, out)
	cfg.Seed = 3
	stats, err := Run(context.Background(), &cfg, testLogger(t, &cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Images != 4 || stats.Empty != 1 {
		t.Errorf("stats = %+v", stats)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Fields(string(data))
	if len(lines) != 3 {
		t.Fatalf("listing = %q, want 3 identifiers", lines)
	}
	for _, l := range lines {
		if l == "empty" {
			t.Error("empty inventory listed")
		}
	}

	// Same seed, same order.
	out2 := filepath.Join(t.TempDir(), "list.txt")
	cfg.Output = out2
	if _, err := Run(context.Background(), &cfg, testLogger(t, &cfg)); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	data2, _ := os.ReadFile(out2)
	if string(data2) != string(data) {
		t.Errorf("seeded listing changed: %q vs %q", data, data2)
	}
}

func TestRun_Interrupted(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "0001.png"), 100, 150)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := testConfig(t, config.ModeDirs, []string{in}, filepath.Join(t.TempDir(), "out"))
	_, err := Run(ctx, &cfg, testLogger(t, &cfg))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// --- Helpers ---

func testConfig(t *testing.T, mode config.OutputMode, inputs []string, output string) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputMode = mode
	cfg.Inputs = inputs
	cfg.Output = output
	cfg.ColorMode = config.ColorNever
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return cfg
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.SetOutput(io.Discard, io.Discard)
	t.Cleanup(func() { log.Close() })
	return log
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	path := filepath.Join(parts...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	return path
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

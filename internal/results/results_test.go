package results

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"af3pairs/internal/manifest"
)

func put(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func putZip(t *testing.T, path string, members map[string]string) {
	t.Helper()
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(fh)
	for name, body := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fh.Close(); err != nil {
		t.Fatal(err)
	}
}

func scores(iptm, ptm float64) string {
	return fmt.Sprintf(`{"iptm": %g, "ptm": %g, "ranking_score": 0.5, "chain_iptm": [0.1, 0.2]}`, iptm, ptm)
}

type fakeResolver map[string]manifest.JobRef

func (f fakeResolver) Lookup(_ context.Context, name string) (manifest.JobRef, error) {
	if ref, ok := f[strings.ToLower(name)]; ok {
		return ref, nil
	}
	return manifest.JobRef{}, manifest.ErrNotFound
}

func TestWeighted(t *testing.T) {
	cases := []struct{ iptm, ptm, want float64 }{
		{0.85, 0.9, 0.86},
		{0.5, 0.5, 0.5},
		{0.123, 0.456, 0.19},
		{0.8125, 0.3, 0.71},
	}
	for _, c := range cases {
		if got := Weighted(c.iptm, c.ptm); got != c.want {
			t.Errorf("Weighted(%v,%v)=%v want %v", c.iptm, c.ptm, got, c.want)
		}
	}
}

func TestSplitName(t *testing.T) {
	a, b, ok := SplitName("orange1.1g012861m--vs--wp_012778596.1")
	if !ok || a != "orange1.1g012861m" || b != "wp_012778596.1" {
		t.Fatalf("got %q %q %v", a, b, ok)
	}
	if _, _, ok := SplitName("nosep"); ok {
		t.Fatal("split without separator")
	}

	// Runes whose lower-case form has a different byte length.
	cases := []struct{ name, a, b string }{
		{"\u212Aab--VS--x", "\u212Aab", "x"},
		{"İİİİİİİ--vs--Ω", "İİİİİİİ", "Ω"},
		{"ǅx--Vs--ẞ", "ǅx", "ẞ"},
	}
	for _, c := range cases {
		a, b, ok := SplitName(c.name)
		if !ok || a != c.a || b != c.b {
			t.Errorf("SplitName(%q) = %q, %q, %v", c.name, a, b, ok)
		}
		if !utf8.ValidString(a) || !utf8.ValidString(b) {
			t.Errorf("SplitName(%q) produced invalid UTF-8", c.name)
		}
	}
}

func TestSortDescending(t *testing.T) {
	rs := []Record{
		{Name: "c", IPTM: 0.5, PTM: 0.9},
		{Name: "b", IPTM: 0.9, PTM: 0.1},
		{Name: "a", IPTM: 0.5, PTM: 0.9},
		{Name: "d", IPTM: 0.9, PTM: 0.7},
	}
	Sort(rs)
	var got []string
	for _, r := range rs {
		got = append(got, r.Name)
	}
	if strings.Join(got, "") != "dbac" {
		t.Fatalf("order=%v", got)
	}
}

func TestCollectDir(t *testing.T) {
	root := t.TempDir()
	b1 := filepath.Join(root, "20250501_pathogen_host_1+2mer-1")
	put(t, filepath.Join(b1, "a--vs--x", "a--vs--x_summary_confidences.json"), scores(0.8, 0.9))
	put(t, filepath.Join(b1, "a--vs--y", "a--vs--y_summary_confidences.json"), `{"ptm": 0.4}`)
	put(t, filepath.Join(b1, "b--vs--x", "b--vs--x_summary_confidences.json"), "{not json")
	put(t, filepath.Join(b1, "a--vs--x", "a--vs--x_data.json"), "{}")
	put(t, filepath.Join(root, "elsewhere", "b--vs--y", "b--vs--y_summary_confidences.json"), scores(0.2, 0.3))

	var warns []string
	c := Collector{Warnf: func(f string, a ...any) { warns = append(warns, fmt.Sprintf(f, a...)) }}
	rs, err := c.Dir(context.Background(), root)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("records=%+v", rs)
	}
	Sort(rs)
	if rs[0].Name != "a--vs--x" || rs[0].ChainA != "a" || rs[0].ChainB != "x" || rs[0].Multimer != "1+2mer" || rs[0].Weighted != 0.82 {
		t.Fatalf("rec0=%+v", rs[0])
	}
	if rs[1].Multimer != "" {
		t.Fatalf("non-batch dir should give empty multimer: %+v", rs[1])
	}
	if len(warns) != 2 {
		t.Fatalf("warns=%v", warns)
	}
	if !strings.Contains(strings.Join(warns, "\n"), `no ptm`) && !strings.Contains(strings.Join(warns, "\n"), `no iptm`) {
		t.Fatalf("missing-field warning not reported: %v", warns)
	}
}

func TestCollectDirMissingRoot(t *testing.T) {
	var c Collector
	if _, err := c.Dir(context.Background(), filepath.Join(t.TempDir(), "nope")); !os.IsNotExist(err) {
		t.Fatalf("want not-exist, got %v", err)
	}
}

func TestCollectDirWithResolver(t *testing.T) {
	root := t.TempDir()
	put(t, filepath.Join(root, "run", "egx_1--vs--orange1", "egx_1--vs--orange1_summary_confidences.json"), scores(0.6, 0.7))
	c := Collector{Resolve: fakeResolver{
		"egx_1--vs--orange1": {Name: "EGX_1--VS--Orange1", IDA: "EGX_1", IDB: "Orange1", BatchPath: "/o/t_af3_jsons/t_p_h_2+1mer-4.json"},
	}}
	rs, err := c.Dir(context.Background(), root)
	if err != nil || len(rs) != 1 {
		t.Fatalf("rs=%v err=%v", rs, err)
	}
	r := rs[0]
	if r.Name != "EGX_1--VS--Orange1" || r.ChainA != "EGX_1" || r.ChainB != "Orange1" || r.Multimer != "2+1mer" || r.BatchFile == "" {
		t.Fatalf("rec=%+v", r)
	}
}

type brokenResolver struct{}

func (brokenResolver) Lookup(context.Context, string) (manifest.JobRef, error) {
	return manifest.JobRef{}, errors.New("db gone")
}

func TestResolverErrorIsFatal(t *testing.T) {
	root := t.TempDir()
	put(t, filepath.Join(root, "b", "x--vs--y", "x--vs--y_summary_confidences.json"), scores(0.1, 0.1))
	c := Collector{Resolve: brokenResolver{}}
	if _, err := c.Dir(context.Background(), root); err == nil {
		t.Fatal("expected resolver error")
	}
}

func TestCollectZips(t *testing.T) {
	dir := t.TempDir()
	putZip(t, filepath.Join(dir, "fold_p1--vs--h1.zip"), map[string]string{
		"fold_p1--vs--h1_full_data_0.json":           "{}",
		"fold_p1--vs--h1_summary_confidences_0.json": scores(0.7, 0.8),
		"fold_p1--vs--h1_summary_confidences_1.json": scores(0.1, 0.1),
	})
	putZip(t, filepath.Join(dir, "fold_p2--vs--h1.zip"), map[string]string{
		"fold_p2--vs--h1_summary_confidences_0.json": `{"iptm": 0.3}`,
	})
	putZip(t, filepath.Join(dir, "fold_empty.zip"), map[string]string{"readme.txt": "x"})
	putZip(t, filepath.Join(dir, "other.zip"), map[string]string{"x_summary_confidences_0.json": scores(1, 1)})

	var warns []string
	c := Collector{Warnf: func(f string, a ...any) { warns = append(warns, fmt.Sprintf(f, a...)) }}
	rs, err := c.Zips(context.Background(), dir)
	if err != nil {
		t.Fatalf("zips: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("records=%+v", rs)
	}
	r := rs[0]
	if r.Name != "p1--vs--h1" || r.IPTM != 0.7 || r.PTM != 0.8 || r.RankingScore == nil || *r.RankingScore != 0.5 {
		t.Fatalf("rec=%+v", r)
	}
	if len(warns) != 2 {
		t.Fatalf("warns=%v", warns)
	}
}

func TestDecodeScoresLookupError(t *testing.T) {
	_, err := decodeScores("x.json", strings.NewReader(`{"iptm": null, "ptm": 0.2}`))
	var le *LookupError
	if !errors.As(err, &le) || le.Field != "iptm" {
		t.Fatalf("want LookupError(iptm), got %v", err)
	}
}

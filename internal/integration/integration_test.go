// internal/integration/integration_test.go
package integration

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"af3pairs/internal/app"
	"af3pairs/internal/summaryapp"
	"af3pairs/pkg/api"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func readCSV(t *testing.T, fn string) [][]string {
	t.Helper()
	fh, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	rows, err := csv.NewReader(fh).ReadAll()
	if err != nil {
		t.Fatalf("csv %s: %v", fn, err)
	}
	return rows
}

func loadJobs(t *testing.T, fn string) []api.JobV1 {
	t.Helper()
	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	var jobs []api.JobV1
	if err := json.Unmarshal(data, &jobs); err != nil {
		t.Fatalf("%s: %v", fn, err)
	}
	return jobs
}

// fakeFold lays out what AlphaFold3 produces for one batch file: a
// directory per batch and per job, names lower-cased.
func fakeFold(t *testing.T, afout, batchPath string, score func(name string) (float64, float64)) {
	t.Helper()
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(batchPath), ".json"))
	for _, j := range loadJobs(t, batchPath) {
		name := strings.ToLower(j.Name)
		dir := filepath.Join(afout, stem, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		iptm, ptm := score(j.Name)
		write(t, filepath.Join(dir, name+"_summary_confidences.json"),
			fmt.Sprintf(`{"iptm": %v, "ptm": %v, "ranking_score": 0.5}`, iptm, ptm))
	}
}

func TestPrepareThenSummarize(t *testing.T) {
	dir := t.TempDir()
	p := write(t, filepath.Join(dir, "pathogen.fa"), ">PE1 effector\nMKV\n>PE2|x\nMLL\n")
	h := write(t, filepath.Join(dir, "host.fa"), ">HsA\nMAAA\n>HsB\nMCCC\n>HsC\nMDDD\n")
	runs := filepath.Join(dir, "runs")
	db := filepath.Join(dir, "manifest.db")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-o", runs, "--tag", "20250501", "-n", "4", "--count2", "2", "-m", db, p, h}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("prepare exit %d, err=%s", code, errBuf.String())
	}
	paths := strings.Fields(out.String())
	want := []string{
		filepath.Join(runs, "20250501_af3_jsons", "20250501_pathogen_host_1+2mer-1.json"),
		filepath.Join(runs, "20250501_af3_jsons", "20250501_pathogen_host_1+2mer-2.json"),
	}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Fatalf("paths=%v want %v", paths, want)
	}
	if n := len(loadJobs(t, paths[0])) + len(loadJobs(t, paths[1])); n != 6 {
		t.Fatalf("want 6 jobs across batches, got %d", n)
	}

	scores := map[string][2]float64{
		"PE1--VS--HsA": {0.9, 0.8},
		"PE2--VS--HsC": {0.9, 0.85},
		"PE1--VS--HsB": {0.2, 0.3},
	}
	afout := filepath.Join(dir, "AFOUT")
	for _, bp := range paths {
		fakeFold(t, afout, bp, func(name string) (float64, float64) {
			if s, ok := scores[name]; ok {
				return s[0], s[1]
			}
			return 0.1, 0.1
		})
	}

	summary := filepath.Join(dir, "out", "summary.csv")
	out.Reset()
	errBuf.Reset()
	code = summaryapp.Run([]string{"--af3-out-dir", afout, "-m", db, "-s", summary}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("summary exit %d, err=%s", code, errBuf.String())
	}
	rows := readCSV(t, summary)
	if len(rows) != 7 {
		t.Fatalf("want header + 6 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "Multimer,Pathogen_protein,Host_protein,ipTM,pTM,0.8ipTM+0.2pTM" {
		t.Fatalf("header %v", rows[0])
	}
	if got := strings.Join(rows[1], ","); got != "1+2mer,PE2,HsC,0.9,0.85,0.89" {
		t.Fatalf("row 1 %q", got)
	}
	if got := strings.Join(rows[2], ","); got != "1+2mer,PE1,HsA,0.9,0.8,0.88" {
		t.Fatalf("row 2 %q", got)
	}
	if got := strings.Join(rows[3], ","); got != "1+2mer,PE1,HsB,0.2,0.3,0.22" {
		t.Fatalf("row 3 %q", got)
	}
}

func TestSummaryWithoutManifestKeepsDiskNames(t *testing.T) {
	dir := t.TempDir()
	afout := filepath.Join(dir, "AFOUT")
	job := filepath.Join(afout, "20250501_p_h_1+1mer-1", "pe1--vs--hsa")
	if err := os.MkdirAll(job, 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, filepath.Join(job, "pe1--vs--hsa_summary_confidences.json"), `{"iptm": 0.7, "ptm": 0.6}`)

	var out, errBuf bytes.Buffer
	code := summaryapp.Run([]string{"-d", afout, "-s", "-"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	want := "Multimer,Pathogen_protein,Host_protein,ipTM,pTM,0.8ipTM+0.2pTM\n1+1mer,pe1,hsa,0.7,0.6,0.68\n"
	if out.String() != want {
		t.Fatalf("got %q", out.String())
	}
}

func TestSummaryFromServerZips(t *testing.T) {
	dir := t.TempDir()
	mk := func(name, body string) {
		fh, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		zw := zip.NewWriter(fh)
		w, err := zw.Create(strings.TrimSuffix(name, ".zip") + "_summary_confidences_0.json")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = w.Write([]byte(body))
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}
		_ = fh.Close()
	}
	mk("fold_pe1--vs--hsa.zip", `{"iptm": 0.4, "ptm": 0.5, "ranking_score": 0.61}`)
	mk("fold_pe2--vs--hsa.zip", `{"iptm": 0.8, "ptm": 0.5, "ranking_score": 0.9}`)
	mk("fold_broken.zip", `{"ptm": 0.5}`)

	var out, errBuf bytes.Buffer
	code := summaryapp.Run([]string{"--zip-dir", dir, "--summary", "-", "--format", "tsv"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	want := "protein_pair_names\tipTM\tpTM\t0.8ipTM+0.2pTM\tranking_score\n" +
		"pe2--vs--hsa\t0.8\t0.5\t0.74\t0.9\n" +
		"pe1--vs--hsa\t0.4\t0.5\t0.42\t0.61\n"
	if out.String() != want {
		t.Fatalf("got %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "WARN:") || !strings.Contains(errBuf.String(), "iptm") {
		t.Fatalf("expected a skip warning, stderr=%q", errBuf.String())
	}
}

func TestSummaryNoResultsExit1(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := summaryapp.Run([]string{"-d", t.TempDir(), "-s", "-"}, &out, &errBuf); code != 1 {
		t.Fatalf("want exit 1, got %d", code)
	}
}

func TestPrepareUsageErrors(t *testing.T) {
	dir := t.TempDir()
	p := write(t, filepath.Join(dir, "p.fa"), ">A\nMK\n")
	bad := write(t, filepath.Join(dir, "bad.fa"), "MK\n>A\nMK\n")

	cases := []struct {
		argv []string
		code int
	}{
		{[]string{"--num", "0", p}, 2},
		{[]string{"--count1", "200", p}, 2},
		{[]string{"--bogus", p}, 2},
		{[]string{bad}, 2},
		{[]string{"--help"}, 0},
		{[]string{"--version"}, 0},
	}
	for _, c := range cases {
		var out, errBuf bytes.Buffer
		if got := app.Run(c.argv, &out, &errBuf); got != c.code {
			t.Errorf("%v: exit %d want %d (stderr=%s)", c.argv, got, c.code, errBuf.String())
		}
	}
}

func TestDryRunPrintsPlannedPaths(t *testing.T) {
	dir := t.TempDir()
	p := write(t, filepath.Join(dir, "eff.fa"), ">A\nMK\n>B\nML\n>C\nMM\n")
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--dry-run", "-o", dir, "-n", "4", "--exclude-self", p}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	want := filepath.Join(dir, "20250501_af3_jsons", "20250501_eff__1+1mer-1.json") + "\n"
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
	if _, err := os.Stat(filepath.Join(dir, "20250501_af3_jsons")); !os.IsNotExist(err) {
		t.Fatalf("dry run created the output directory: %v", err)
	}
}

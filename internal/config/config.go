// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"af3pairs/internal/prep"
)

// File is the YAML run file. Every field is optional; unset fields leave
// the defaults (or CLI values) alone.
//
//	fasta1: pathogen.fa
//	fasta2: host.fa
//	count1: 1
//	count2: 2
//	num: 30
//	tag: "20250501"
//	out_dir: runs/
type File struct {
	Fasta1      *string `yaml:"fasta1"`
	Fasta2      *string `yaml:"fasta2"`
	Count1      *int    `yaml:"count1"`
	Count2      *int    `yaml:"count2"`
	Num         *int    `yaml:"num"`
	Tag         *string `yaml:"tag"`
	OutDir      *string `yaml:"out_dir"`
	Seed        *int    `yaml:"seed"`
	Pretty      *bool   `yaml:"pretty"`
	ExcludeSelf *bool   `yaml:"exclude_self"`
	Manifest    *string `yaml:"manifest"`
}

// Parse decodes YAML content. Unknown keys are rejected so typos surface.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses a run file. Relative input, output and manifest
// paths are resolved against the file's directory.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for _, p := range []*string{f.Fasta1, f.Fasta2, f.OutDir, f.Manifest} {
		if p != nil && *p != "" && *p != "-" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return f, nil
}

// Apply copies every set field onto c.
func (f *File) Apply(c *prep.Config) {
	setS := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setI := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setB := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	setS(&c.Fasta1, f.Fasta1)
	setS(&c.Fasta2, f.Fasta2)
	setI(&c.Count1, f.Count1)
	setI(&c.Count2, f.Count2)
	setI(&c.BatchSize, f.Num)
	setS(&c.Tag, f.Tag)
	setS(&c.OutDir, f.OutDir)
	setI(&c.Seed, f.Seed)
	setB(&c.Pretty, f.Pretty)
	setB(&c.ExcludeSelf, f.ExcludeSelf)
	setS(&c.Manifest, f.Manifest)
}

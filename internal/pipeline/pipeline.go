// Package pipeline runs encrypt/decrypt jobs over image files: decode,
// transform, lossless encode, atomic write, one goroutine per image.
package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/AnyUserName/imgcrypt-cli/internal/encoder"
	"github.com/AnyUserName/imgcrypt-cli/internal/keys"
	"github.com/AnyUserName/imgcrypt-cli/internal/report"
	"github.com/AnyUserName/imgcrypt-cli/internal/transform"
	"github.com/hashicorp/go-hclog"
)

// Config holds all parameters for a pipeline run.
type Config struct {
	Mode       transform.Mode
	Passphrase []byte
	Digest     keys.Digest
	Workers    int
	Overwrite  bool // replace existing outputs
	Registry   *encoder.Registry
	Logger     hclog.Logger
}

// Pipeline orchestrates image processing.
type Pipeline struct {
	cfg         Config
	transformer transform.Transformer
	log         hclog.Logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Registry == nil {
		cfg.Registry = encoder.NewRegistry(encoder.ParseCompression(""))
	}
	log := cfg.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Pipeline{
		cfg:         cfg,
		transformer: transform.Transformer{Digest: cfg.Digest},
		log:         log.Named("pipeline"),
	}
}

// Workers returns the effective worker count.
func (p *Pipeline) Workers() int { return p.cfg.Workers }

// Run processes jobs in parallel and returns a report of the images that
// succeeded. Any failed job makes Run return a non-nil error joining every
// failure; the report is still returned for the successful ones.
func (p *Pipeline) Run(jobs []Job) (*report.Report, error) {
	p.log.Debug(p.cfg.Registry.String())

	r := report.New(p.cfg.Mode.String(), p.cfg.Digest.String())
	r.BuildInfo = &report.BuildInfo{Workers: p.cfg.Workers}
	if len(jobs) == 0 {
		return r, fmt.Errorf("no images to %s", p.cfg.Mode)
	}

	results := make([]processResult, len(jobs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, j Job) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.log.Debug("processing", "key", j.Key, "output", j.OutputPath)
			results[idx] = p.processImage(j)
			if results[idx].err == nil {
				p.log.Debug("done", "key", j.Key,
					"width", results[idx].entry.Input.Width,
					"height", results[idx].entry.Input.Height)
			}
		}(i, job)
	}
	wg.Wait()

	var failures []error
	for _, res := range results {
		if res.err != nil {
			p.log.Error("failed", "key", res.key, "error", res.err)
			failures = append(failures, res.err)
			continue
		}
		r.Entries[res.key] = res.entry
	}
	r.Stats.Failed = len(failures)
	r.ComputeStats()

	if len(failures) > 0 {
		if len(failures) < len(jobs) {
			p.log.Warn("partial failure", "failed", len(failures), "total", len(jobs))
		}
		return r, errors.Join(failures...)
	}
	return r, nil
}

package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type section struct {
	tag     string
	entries []json.RawMessage
}

// parseManifest reads the top-level object keeping key order, since
// resources register in the order they appear in the file.
func parseManifest(data []byte) ([]section, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("manifest: want object")
	}
	var out []section
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		tag, _ := tok.(string)
		var entries []json.RawMessage
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("manifest section %s: %w", tag, err)
		}
		out = append(out, section{tag: tag, entries: entries})
	}
	return out, nil
}

// LoadManifest decodes every entry of the manifest at path and registers the
// results in file order. Entries are decoded in parallel; any failure aborts
// the load and nothing is registered. A missing file returns an error
// wrapping fs.ErrNotExist.
func (m *Manager) LoadManifest(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read manifest: %w", err)
	}
	sections, err := parseManifest(data)
	if err != nil {
		return 0, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	type job struct {
		tag  string
		data json.RawMessage
	}
	var jobs []job
	for _, s := range sections {
		if _, ok := m.factory(s.tag); !ok {
			return 0, fmt.Errorf("manifest %s: %w: %s", path, ErrUnknownType, s.tag)
		}
		for _, e := range s.entries {
			jobs = append(jobs, job{s.tag, e})
		}
	}

	results := make([]Resource, len(jobs))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, j := range jobs {
		g.Go(func() error {
			r, err := m.Decode(j.tag, j.data)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("manifest %s: %w", path, err)
	}

	for _, r := range results {
		m.Add(r)
	}
	m.log.Info("manifest loaded", zap.String("path", path), zap.Int("resources", len(results)))
	return len(results), nil
}

package content

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"

	"snowbird_docs/internal/domain"
)

// Source layout, mirrored from the production content tree:
//
//	properties/<slug>/property.mdx
//	properties/<slug>/welcome-house-rules.mdx
//	properties/<slug>/user-instructions.mdx
//	properties/<slug>/critical-info.mdx
//	locations/<location-slug>/local-guide.mdx
//
// Slugs derive from the containing directory name. Each file carries a YAML
// frontmatter header between "---" delimiters, followed by a free-text body.

const (
	kindProperty     = "property"
	kindHouseRules   = "welcome-house-rules"
	kindInstructions = "user-instructions"
	kindCriticalInfo = "critical-info"
	kindLocalGuide   = "local-guide"
)

const (
	defaultHouseRulesTitle   = "Welcome & House Rules"
	defaultInstructionsTitle = "User Instructions"
	defaultCriticalTitle     = "Critical & Essential Information"
)

type sourceFile struct {
	path string // absolute
	rel  string // relative to the content dir, for logs and errors
	kind string
	slug string // containing directory name
}

type compiledDoc struct {
	src sourceFile
	rec any // one of the domain document types
}

// Compile walks the content directory and builds an immutable Store. Files
// are parsed under a bounded worker pool; any malformed document fails the
// whole compile so a broken edit never replaces a good snapshot.
func Compile(ctx context.Context, dir string, workers int) (*Store, error) {
	files, err := discover(dir)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 4
	}

	results := make([]compiledDoc, len(files))
	errs := make([]error, len(files))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, f := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int, f sourceFile) {
			defer wg.Done()
			defer sem.Release(1)
			rec, err := parseFile(f)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = compiledDoc{src: f, rec: rec}
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return assemble(results), nil
}

// discover lists recognized source files in deterministic (sorted-path)
// order. Iteration order decides which duplicate wins, so it must be stable.
func discover(dir string) ([]sourceFile, error) {
	var files []sourceFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".mdx" && ext != ".md" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 3 {
			return nil
		}
		top, slug := parts[0], parts[1]
		kind := strings.TrimSuffix(parts[2], ext)
		switch {
		case top == "properties" && (kind == kindProperty || kind == kindHouseRules ||
			kind == kindInstructions || kind == kindCriticalInfo):
		case top == "locations" && kind == kindLocalGuide:
		default:
			return nil
		}
		files = append(files, sourceFile{path: path, rel: rel, kind: kind, slug: slug})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, nil
}

func parseFile(f sourceFile) (any, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	meta, body := splitFrontmatter(string(raw))

	switch f.kind {
	case kindProperty:
		var fm struct {
			Title    string `yaml:"title"`
			Location string `yaml:"location"`
			Capacity int    `yaml:"capacity"`
			Access   string `yaml:"access"`
		}
		if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
			return nil, fmt.Errorf("%s: frontmatter: %w", f.rel, err)
		}
		if fm.Title == "" {
			return nil, fmt.Errorf("%s: title is required", f.rel)
		}
		if fm.Location == "" {
			return nil, fmt.Errorf("%s: location is required", f.rel)
		}
		if fm.Capacity <= 0 {
			return nil, fmt.Errorf("%s: capacity is required", f.rel)
		}
		access := domain.Access(fm.Access)
		if access == "" {
			access = domain.AccessPublic
		}
		if access != domain.AccessPublic && access != domain.AccessPrivate {
			return nil, fmt.Errorf("%s: access must be public or private, got %q", f.rel, fm.Access)
		}
		return domain.Property{
			Slug: f.slug, Title: fm.Title, Location: fm.Location,
			Capacity: fm.Capacity, Access: access, Body: body,
		}, nil

	case kindHouseRules, kindInstructions, kindCriticalInfo:
		var fm struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
			return nil, fmt.Errorf("%s: frontmatter: %w", f.rel, err)
		}
		switch f.kind {
		case kindHouseRules:
			if fm.Title == "" {
				fm.Title = defaultHouseRulesTitle
			}
			return domain.HouseRulesDoc{PropertySlug: f.slug, Title: fm.Title, Body: body}, nil
		case kindInstructions:
			if fm.Title == "" {
				fm.Title = defaultInstructionsTitle
			}
			return domain.InstructionsDoc{PropertySlug: f.slug, Title: fm.Title, Body: body}, nil
		default:
			if fm.Title == "" {
				fm.Title = defaultCriticalTitle
			}
			return domain.CriticalInfoDoc{PropertySlug: f.slug, Title: fm.Title, Body: body}, nil
		}

	case kindLocalGuide:
		var fm struct {
			Title    string `yaml:"title"`
			Location string `yaml:"location"`
		}
		if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
			return nil, fmt.Errorf("%s: frontmatter: %w", f.rel, err)
		}
		if fm.Title == "" {
			return nil, fmt.Errorf("%s: title is required", f.rel)
		}
		if fm.Location == "" {
			return nil, fmt.Errorf("%s: location is required", f.rel)
		}
		return domain.LocalGuideDoc{
			LocationSlug: f.slug, Title: fm.Title, Location: fm.Location, Body: body,
		}, nil
	}
	return nil, fmt.Errorf("%s: unknown document kind %q", f.rel, f.kind)
}

// assemble builds the Store in iteration order, keeping the first document
// per key and warning about the rest instead of silently shadowing them.
func assemble(docs []compiledDoc) *Store {
	s := &Store{}
	seen := map[string]string{} // "<kind>/<slug>" -> first path

	keep := func(kind, slug, rel string) bool {
		key := kind + "/" + slug
		if first, dup := seen[key]; dup {
			log.Warn().Str("kind", kind).Str("slug", slug).
				Str("kept", first).Str("shadowed", rel).
				Msg("duplicate document")
			return false
		}
		seen[key] = rel
		return true
	}

	for _, d := range docs {
		switch rec := d.rec.(type) {
		case domain.Property:
			if keep(kindProperty, rec.Slug, d.src.rel) {
				s.properties = append(s.properties, rec)
			}
		case domain.HouseRulesDoc:
			if keep(kindHouseRules, rec.PropertySlug, d.src.rel) {
				s.houseRules = append(s.houseRules, rec)
			}
		case domain.InstructionsDoc:
			if keep(kindInstructions, rec.PropertySlug, d.src.rel) {
				s.instructions = append(s.instructions, rec)
			}
		case domain.CriticalInfoDoc:
			if keep(kindCriticalInfo, rec.PropertySlug, d.src.rel) {
				s.critical = append(s.critical, rec)
			}
		case domain.LocalGuideDoc:
			if keep(kindLocalGuide, rec.LocationSlug, d.src.rel) {
				s.guides = append(s.guides, rec)
			}
		}
	}
	return s
}

// splitFrontmatter separates the YAML header from the body. A file without a
// leading "---" line is all body.
func splitFrontmatter(raw string) (meta, body string) {
	rest, ok := strings.CutPrefix(raw, "---")
	if !ok {
		return "", raw
	}
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")

	end := -1
	if strings.HasPrefix(rest, "---") { // empty header
		end = 0
	} else if i := strings.Index(rest, "\n---"); i >= 0 {
		end = i + 1
	}
	if end < 0 {
		return "", raw
	}
	meta = strings.TrimSuffix(rest[:end], "\n")
	body = rest[end+len("---"):]
	if j := strings.IndexByte(body, '\n'); j >= 0 {
		body = body[j+1:]
	} else {
		body = ""
	}
	return meta, body
}

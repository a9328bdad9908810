package assets

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
)

// Report summarizes one resolution pass.
type Report struct {
	Replacements int      `json:"replacements"`
	Unresolved   []string `json:"unresolved,omitempty"`
	Fallbacks    int      `json:"fallbacks"`
	Repairs      int      `json:"repairs"`
}

// FallbackImage is the neutral inline graphic substituted for placeholder
// markers that have no catalog entry.
const FallbackImage = "data:image/svg+xml;charset=utf-8," +
	"%3Csvg xmlns='http://www.w3.org/2000/svg' width='800' height='600'%3E" +
	"%3Crect width='100%25' height='100%25' fill='%23e8e8e8'/%3E%3C/svg%3E"

// placeholderPattern matches any slot token spelling the resolver understands.
var placeholderPattern = regexp.MustCompile(`project_[A-Za-z0-9-]+_(?:final|process|image)_\d+(?:\.(?:jpg|jpeg|png|webp))?`)

// Resolver rewrites placeholder tokens against a fixed, precomputed map.
// Reentrant and idempotent: resolving already-resolved text is a no-op.
type Resolver struct {
	values map[string]string
	urls   []string // known asset URLs, longest first
}

// NewResolver derives the token map from the catalog. Every image slot gets a
// small family of acceptable spellings: by project position, by stable
// project id, and by filename-style variants. Each token maps to exactly one
// value; a colliding spelling keeps its first binding.
func NewResolver(catalog *Catalog) *Resolver {
	r := &Resolver{values: map[string]string{}}
	add := func(token, value string) {
		if token == "" || value == "" {
			return
		}
		if _, ok := r.values[token]; ok {
			return
		}
		r.values[token] = value
	}

	urlSeen := map[string]struct{}{}
	addURL := func(url string) {
		if _, ok := urlSeen[url]; ok {
			return
		}
		urlSeen[url] = struct{}{}
		r.urls = append(r.urls, url)
	}

	for i, entry := range catalog.entries {
		pos := i + 1
		for j, img := range entry.FinalImages {
			addFamily(add, pos, entry.ProjectID, "final", j+1, img.URL)
			// First final image also answers the generic image spelling.
			if j == 0 {
				add(fmt.Sprintf("project_%d_image_1", pos), img.URL)
			}
			addURL(img.URL)
		}
		for j, img := range entry.ProcessImages {
			addFamily(add, pos, entry.ProjectID, "process", j+1, img.URL)
			addURL(img.URL)
		}
	}

	// Longest URL first so a URL extending another is claimed whole when
	// marking protected spans.
	sort.SliceStable(r.urls, func(a, b int) bool {
		return len(r.urls[a]) > len(r.urls[b])
	})
	return r
}

func addFamily(add func(token, value string), pos int, projectID, kind string, slot int, url string) {
	base := fmt.Sprintf("project_%d_%s_%d", pos, kind, slot)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		add(base+ext, url)
	}
	add(base, url)
	if projectID != "" && projectID != fmt.Sprint(pos) {
		idBase := fmt.Sprintf("project_%s_%s_%d", projectID, kind, slot)
		for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
			add(idBase+ext, url)
		}
		add(idBase, url)
	}
}

// Resolve rewrites every recognized placeholder in a single left-to-right
// pass. Catalog URLs already present in the text are opaque, and inserted
// replacement values are never re-scanned, so a stored object whose filename
// happens to spell a token cannot be rewritten again. Re-running Resolve on
// its own output changes nothing and reports zero replacements.
func (r *Resolver) Resolve(text string) (string, Report) {
	var rep Report
	unresolved := map[string]struct{}{}

	var out strings.Builder
	last := 0
	for _, span := range r.protectedSpans(text) {
		out.WriteString(r.resolveSegment(text[last:span[0]], &rep, unresolved))
		out.WriteString(text[span[0]:span[1]])
		last = span[1]
	}
	out.WriteString(r.resolveSegment(text[last:], &rep, unresolved))

	for tok := range unresolved {
		rep.Unresolved = append(rep.Unresolved, tok)
	}
	sort.Strings(rep.Unresolved)
	for _, tok := range rep.Unresolved {
		log.Printf("assets: no catalog entry for %q, using fallback", tok)
	}

	// Nesting corruption, one resolved URL concatenated inside another,
	// is repaired by keeping the first well-formed occurrence.
	resolved, repairs := r.repairNesting(out.String())
	rep.Repairs = repairs
	return resolved, rep
}

// resolveSegment rewrites the placeholders in one unprotected slice of the
// document. Mapped tokens get their URL; unmapped markers get the fallback.
func (r *Resolver) resolveSegment(segment string, rep *Report, unresolved map[string]struct{}) string {
	matches := placeholderPattern.FindAllStringIndex(segment, -1)
	if len(matches) == 0 {
		return segment
	}
	var out strings.Builder
	last := 0
	for _, loc := range matches {
		out.WriteString(segment[last:loc[0]])
		tok := segment[loc[0]:loc[1]]
		if val, ok := r.values[tok]; ok {
			out.WriteString(val)
			rep.Replacements++
		} else {
			out.WriteString(FallbackImage)
			rep.Fallbacks++
			unresolved[tok] = struct{}{}
		}
		last = loc[1]
	}
	out.WriteString(segment[last:])
	return out.String()
}

// protectedSpans locates every catalog URL already present in the text.
// The spans are returned in document order and never overlap.
func (r *Resolver) protectedSpans(text string) [][2]int {
	var spans [][2]int
	claimed := func(start, end int) bool {
		for _, s := range spans {
			if start < s[1] && end > s[0] {
				return true
			}
		}
		return false
	}
	for _, url := range r.urls {
		from := 0
		for {
			i := strings.Index(text[from:], url)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(url)
			if !claimed(start, end) {
				spans = append(spans, [2]int{start, end})
			}
			from = end
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	return spans
}

// NestedURLs reports every corrupt concatenation of two resolved URLs still
// present in text. Empty after a clean resolution.
func (r *Resolver) NestedURLs(text string) []string {
	var found []string
	for _, a := range r.urls {
		for _, b := range r.urls {
			if joined := a + b; strings.Contains(text, joined) {
				found = append(found, joined)
			}
		}
	}
	return found
}

func (r *Resolver) repairNesting(text string) (string, int) {
	repairs := 0
	for {
		nested := r.NestedURLs(text)
		if len(nested) == 0 {
			return text, repairs
		}
		for _, joined := range nested {
			// The first well-formed URL is the prefix that produced the match.
			for _, a := range r.urls {
				if strings.HasPrefix(joined, a) && len(joined) > len(a) {
					log.Printf("assets: repairing nested asset url %q", joined)
					repairs += strings.Count(text, joined)
					text = strings.ReplaceAll(text, joined, a)
					break
				}
			}
		}
	}
}

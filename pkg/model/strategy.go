// Package model provides the static catalog of preprocessing models and the
// deterministic text strategies they are composed of.
//
// A model is an ordered pipeline of strategies. Each strategy rewrites the
// content string and may emit side outputs (candidate tags, metadata entries)
// that the caller merges into the document being saved.
package model

import (
	"regexp"
	"sort"
	"strings"
)

// Strategy names, in the order comprehensive applies them.
const (
	StrategyClarify = "clarify"
	StrategyAnalyze = "analyze"
	StrategySearch  = "search"
	StrategyFetch   = "fetch"
)

// Result is the output of a single strategy application.
type Result struct {
	Content  string         // rewritten content; unchanged strategies echo the input
	Tags     []string       // candidate tags to append to the document
	Metadata map[string]any // entries to merge into the document metadata
}

// Strategy is a deterministic content transform.
type Strategy interface {
	Name() string
	Apply(content string) Result
}

// --- clarify ---

// Filler and hedge phrases stripped by clarify. Multi-word phrases first so
// the alternation matches them before their substrings.
var fillerRe = regexp.MustCompile(`(?i)\b(at the end of the day|needless to say|to be honest|in my opinion|you know|i mean|i guess|i think|kind of|sort of|basically|actually|literally|honestly|obviously)\b,?[ \t]*`)

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]{2,}`)
	spacePunctRe = regexp.MustCompile(`[ \t]+([.,;:!?])`)
)

type clarifyStrategy struct{}

func (clarifyStrategy) Name() string { return StrategyClarify }

func (clarifyStrategy) Apply(content string) Result {
	out := fillerRe.ReplaceAllString(content, "")
	out = spaceRunRe.ReplaceAllString(out, " ")
	out = spacePunctRe.ReplaceAllString(out, "$1")

	// Trim each line rather than the whole blob to preserve paragraph breaks.
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimLeft(line, " \t"), " \t")
	}
	out = strings.Join(lines, "\n")

	return Result{Content: strings.TrimSpace(out)}
}

// --- analyze ---

// keywordCount is how many keywords analyze attaches to metadata.
const keywordCount = 5

type analyzeStrategy struct{}

func (analyzeStrategy) Name() string { return StrategyAnalyze }

func (analyzeStrategy) Apply(content string) Result {
	tokens := tokenize(content)
	keywords := rankKeywords(tokens, keywordCount)

	return Result{
		Content: content,
		Metadata: map[string]any{
			"keywords":  keywords,
			"wordCount": len(tokens),
		},
	}
}

// --- search ---

type searchStrategy struct{}

func (searchStrategy) Name() string { return StrategySearch }

func (searchStrategy) Apply(content string) Result {
	counts := make(map[string]int)
	var order []string
	for _, tok := range tokenize(content) {
		if !eligibleKeyword(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// Candidate tags: normalized tokens that repeat, in first-seen order.
	var tags []string
	for _, tok := range order {
		if counts[tok] >= 2 {
			tags = append(tags, tok)
		}
	}

	return Result{Content: content, Tags: tags}
}

// --- fetch ---

var urlRe = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

type fetchStrategy struct{}

func (fetchStrategy) Name() string { return StrategyFetch }

func (fetchStrategy) Apply(content string) Result {
	seen := make(map[string]bool)
	var links []string
	for _, u := range urlRe.FindAllString(content, -1) {
		u = strings.TrimRight(u, ".,;:")
		if !seen[u] {
			seen[u] = true
			links = append(links, u)
		}
	}

	res := Result{Content: content}
	if len(links) > 0 {
		res.Metadata = map[string]any{"links": links}
	}
	return res
}

// --- token helpers ---

var wordRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

// tokenize splits content into lowercased alphanumeric tokens.
func tokenize(content string) []string {
	raw := wordRe.FindAllString(content, -1)
	tokens := make([]string, len(raw))
	for i, t := range raw {
		tokens[i] = strings.ToLower(t)
	}
	return tokens
}

// eligibleKeyword filters tokens considered for keywords and candidate tags:
// at least 4 characters and not a stopword.
func eligibleKeyword(tok string) bool {
	return len(tok) >= 4 && !stopwords[tok]
}

// rankKeywords returns the top n eligible tokens by frequency.
// Ties break by first occurrence in the text, which keeps the result
// deterministic for equal counts.
func rankKeywords(tokens []string, n int) []string {
	counts := make(map[string]int)
	first := make(map[string]int)
	var order []string

	for i, tok := range tokens {
		if !eligibleKeyword(tok) {
			continue
		}
		if counts[tok] == 0 {
			first[tok] = i
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return first[order[i]] < first[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

var stopwords = map[string]bool{
	"about": true, "after": true, "again": true, "also": true, "been": true,
	"before": true, "being": true, "between": true, "both": true, "could": true,
	"does": true, "doing": true, "during": true, "each": true, "from": true,
	"further": true, "have": true, "having": true, "here": true, "into": true,
	"just": true, "more": true, "most": true, "once": true, "only": true,
	"other": true, "over": true, "same": true, "should": true, "some": true,
	"such": true, "than": true, "that": true, "their": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "through": true, "under": true, "until": true, "very": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "will": true, "with": true, "would": true, "your": true,
}

package harvest

import (
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// MinWordLength is the shortest token considered a candidate.
const MinWordLength = 4

// Candidate is a word found in a text that is not yet in the store.
type Candidate struct {
	Word  string
	Count int
	// Context is the first sentence the word appeared in.
	Context string
}

// Candidates tokenizes text into lower-cased English words and returns
// those worth learning: at least MinWordLength letters, not a stop word,
// no digits and not in known. Results are ordered by frequency, then
// alphabetically. limit <= 0 means no limit.
func Candidates(text string, known []string, limit int) []Candidate {
	have := lo.KeyBy(known, strings.ToLower)

	found := map[string]*Candidate{}
	var order []*Candidate
	for _, sentence := range splitSentences(text) {
		for _, tok := range strings.FieldsFunc(sentence, unicode.IsSpace) {
			w, ok := normalize(tok)
			if !ok {
				continue
			}
			if _, dup := have[w]; dup || stopWords[w] {
				continue
			}
			if c, seen := found[w]; seen {
				c.Count++
				continue
			}
			c := &Candidate{Word: w, Count: 1, Context: sentence}
			found[w] = c
			order = append(order, c)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Count != order[j].Count {
			return order[i].Count > order[j].Count
		}
		return order[i].Word < order[j].Word
	})
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return lo.Map(order, func(c *Candidate, _ int) Candidate { return *c })
}

// normalize trims surrounding punctuation and accepts only tokens made
// entirely of Latin letters.
func normalize(tok string) (string, bool) {
	tok = strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
	// Possessives: "author's" counts as "author".
	tok = strings.TrimSuffix(strings.TrimSuffix(tok, "'s"), "’s")
	if len([]rune(tok)) < MinWordLength {
		return "", false
	}
	for _, r := range tok {
		if !unicode.Is(unicode.Latin, r) {
			return "", false
		}
	}
	return strings.ToLower(tok), true
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i, r := range runes {
		end := r == '\n'
		if r == '.' || r == '!' || r == '?' {
			end = i+1 == len(runes) || unicode.IsSpace(runes[i+1])
		}
		if end {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, strings.Join(strings.Fields(s), " "))
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, strings.Join(strings.Fields(s), " "))
	}
	return out
}

var stopWords = lo.SliceToMap(strings.Fields(`
	about above after again against also although among another because been
	before being below between both cannot could does doing down during each
	either even ever every from further have having here hers herself himself
	however into itself just least less like many more most much must myself
	neither never none only other ours ourselves over same shall should some
	such than that their theirs them themselves then there these they this
	those though through thus under until upon very want were what when where
	whether which while whom whose will with within without would your yours
	yourself yourselves said says make made know take come came went going
	well back still also year years time times people thing things look
	really always often perhaps already across around away next last first
	several something someone anything nothing everything`),
	func(w string) (string, bool) { return w, true })

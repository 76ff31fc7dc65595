package enrich

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a bilingual English-Bengali lexicographer writing study cards for Bengali speakers learning English vocabulary.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Word: %s\n", in.Word)
	if in.Context != "" {
		fmt.Fprintf(&b, "Seen in: %q\n", in.Context)
	}

	b.WriteString(`
Instructions:
1. Give the most common meaning. If a "Seen in" sentence is given, use the sense it uses.
2. Meanings, explanations and translations are in Bengali. Example sentences are in English.
3. List up to 4 synonyms and up to 4 antonyms, each with a Bengali translation. Use an empty list when there are none.
4. For verbs, fill verb_forms with the present, past and past participle forms. For any other part of speech, set verb_forms to null.
5. Keep the headword exactly as given.`)
	return b.String()
}

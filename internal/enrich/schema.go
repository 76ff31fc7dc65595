package enrich

import "github.com/abhisek/lexicon/internal/llm"

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func stringList(desc string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": desc}
}

var termList = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":   stringProp("The English term"),
			"bangla": stringProp("Its Bengali translation"),
		},
		"required":             []any{"word", "bangla"},
		"additionalProperties": false,
	},
}

var verbFormDetail = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"word":           stringProp("The verb form"),
		"pronunciation":  stringProp("Pronunciation written in Bengali script"),
		"bangla_meaning": stringProp("Bengali meaning of this form"),
		"usage_timing":   stringProp("When this form is used, in Bengali"),
	},
	"required":             []any{"word", "pronunciation", "bangla_meaning", "usage_timing"},
	"additionalProperties": false,
}

// EntrySchema is the structured output for one dictionary entry. Its
// property names match vocab.ImportRecord so a reply decodes straight
// into one.
var EntrySchema = &llm.Schema{
	Name:        "word-entry",
	Description: "An English vocabulary entry explained for a Bengali-speaking learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":                stringProp("The headword exactly as asked"),
			"meaning":             stringProp("Short Bengali meaning (1-4 words)"),
			"meaning_explanation": stringProp("One or two sentences in Bengali explaining the meaning"),
			"parts_of_speech": map[string]any{
				"type": "string",
				"enum": []any{"noun", "verb", "adjective", "adverb", "pronoun", "preposition", "conjunction", "interjection", "other"},
			},
			"syllables":         stringList("The word split into syllables"),
			"usage_distinction": stringProp("How it differs from commonly confused words, in Bengali"),
			"example_sentences": stringList("2-3 natural English example sentences"),
			"synonyms":          termList,
			"antonyms":          termList,
			"verb_forms": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"v1_present":         verbFormDetail,
					"v2_past":            verbFormDetail,
					"v3_past_participle": verbFormDetail,
				},
				"required":             []any{"v1_present", "v2_past", "v3_past_participle"},
				"additionalProperties": false,
			},
		},
		"required": []any{
			"word", "meaning", "meaning_explanation", "parts_of_speech", "syllables",
			"usage_distinction", "example_sentences", "synonyms", "antonyms", "verb_forms",
		},
		"additionalProperties": false,
	},
}

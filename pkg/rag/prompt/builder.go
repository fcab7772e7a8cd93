package prompt

import (
	"fmt"
	"strings"
)

const (
	// NoContextMarker stands in for the context block when retrieval found nothing.
	NoContextMarker = "[No context available]"

	// GeneralKnowledgeNote is the sentence the fallback prompt asks the model
	// to emit when it answers outside the provided context.
	GeneralKnowledgeNote = "Note: This answer is based on general knowledge, not the provided context."

	// LanguageSampleRunes bounds the text sent for language detection.
	LanguageSampleRunes = 200
)

// Rephrase asks for three manual-style phrasings of a support question.
func Rephrase(query string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant that reformulates technical support or device-related queries\n")
	b.WriteString("into alternative phrasings commonly found in instruction manuals or technical documentation.\n\n")
	b.WriteString("You will be given an original user query. Your goal is to generate 3 rephrasings that:\n")
	b.WriteString("- Preserve the original meaning.\n")
	b.WriteString("- Use terminology commonly found in device manuals (e.g., \"press\", \"turn on\", \"hold\", \"indicator light\", etc.).\n")
	b.WriteString("- Avoid slang or overly conversational tone.\n")
	b.WriteString("- Do NOT include device brand or model names.\n")
	b.WriteString("- Keep the phrasing close to how it might appear in a hardware or electronics manual.\n\n")
	b.WriteString("Return the 3 rephrasings as a numbered list.\n\n")
	fmt.Fprintf(&b, "Original user question: %q\n", query)
	return b.String()
}

// DetectLanguage expects the caller to have already cut the sample down.
func DetectLanguage(sample string) string {
	var b strings.Builder
	b.WriteString("Detect the language of this text and return only the ISO 639-1 language code (e.g., 'en', 'es', 'fr', 'de', 'zh'):\n\n")
	fmt.Fprintf(&b, "Text: %s\n\n", sample)
	b.WriteString("Return only the language code, nothing else.")
	return b.String()
}

// Answer is the primary generation prompt: context first, model knowledge as
// a labelled supplement, reply in the query's language.
func Answer(query, language, context string) string {
	if strings.TrimSpace(context) == "" {
		context = NoContextMarker
	}

	var b strings.Builder
	b.WriteString("You are a helpful and knowledgeable technology expert in providing comprehensive answers by leveraging both provided information and your internal knowledge base.\n\n")
	fmt.Fprintf(&b, "User Query: %s\n", query)
	fmt.Fprintf(&b, "Query Language: %s\n\n", language)
	b.WriteString("Context:\n")
	b.WriteString(context)
	b.WriteString("\n\n")
	b.WriteString("Instructions:\n")
	b.WriteString("1. Prioritize Context: build the answer primarily from the information in the \"Context\" section.\n")
	b.WriteString("2. Supplement with Model Knowledge: if the context is insufficient or does not address the query, add relevant information from your own knowledge.\n")
	b.WriteString("3. Acknowledge External Knowledge: clearly mark anything not present in the context as general knowledge, with reference URLs where available.\n")
	b.WriteString("4. Format the answer in Markdown. If the query language is not English, write the entire answer in that language.\n")
	b.WriteString("5. Provide only the final answer, without these instructions or conversational filler.\n")
	b.WriteString("6. Keep the answer concise, informative and relevant to the query.\n")
	return b.String()
}

// Fallback is the simpler prompt used when Answer produced nothing.
func Fallback(query, context string) string {
	var b strings.Builder
	b.WriteString("Answer this question using only the provided context:\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", query)
	fmt.Fprintf(&b, "Context: %s\n\n", context)
	b.WriteString("If you cannot answer based on the context, do your best to answer using your own knowledge.\n")
	fmt.Fprintf(&b, "When you answer based on your own knowledge (not from context), clearly state: %q. And provide a source if possible.\n", GeneralKnowledgeNote)
	b.WriteString("Format your final answer in Markdown (with bullets, links, code snippets, etc., where helpful).\n")
	b.WriteString("Answer:")
	return b.String()
}

func Summary(query string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant. Summarize the following query:\n\n")
	fmt.Fprintf(&b, "Query: %s\n\n", query)
	b.WriteString("Provide only the summary")
	return b.String()
}

// CompressHistory asks for the facts from earlier turns that bear on query.
func CompressHistory(history, query string) string {
	var b strings.Builder
	b.WriteString("You are an assistant helping summarize relevant background knowledge from a Q&A history.\n\n")
	b.WriteString("History:\n")
	b.WriteString(history)
	b.WriteString("\n\nCurrent User Question:\n")
	b.WriteString(query)
	b.WriteString("\n\nExtract only the most relevant facts, data points, or useful context from the Q/A history that would help answer this question.\n")
	b.WriteString("Return it in a concise form.\n")
	return b.String()
}

// RewriteQuery turns a follow-up question into a standalone one.
func RewriteQuery(query, facts string) string {
	var b strings.Builder
	b.WriteString("Given the following background information:\n\n")
	b.WriteString("Context:\n")
	b.WriteString(facts)
	b.WriteString("\n\nAnd this user query:\n")
	fmt.Fprintf(&b, "%q\n\n", query)
	b.WriteString("Rewrite the query so that it becomes self-contained and doesn't rely on the prior conversation.\n")
	b.WriteString("The rewritten query should include all necessary details to retrieve a relevant answer from a database or knowledge base.\n")
	b.WriteString("Return only the rewritten query.")
	return b.String()
}

package rag

import (
	"fmt"
	"strings"

	"github.com/buzzlab/relevance/internal/util"
	"github.com/buzzlab/relevance/pkg/content"
)

// Canned answer used when retrieval itself failed and no material is
// available at all.
const degradedAnswer = "Sorry, I could not process your question right now. " +
	"Please try again in a moment, or browse our service pages directly."

type answerBucket int

const (
	bucketGeneric answerBucket = iota
	bucketService
	bucketCompany
	bucketHowTo
)

var bucketKeywords = map[answerBucket][]string{
	bucketService: {"service", "price", "pricing", "cost", "fee", "plan", "料金", "サービス"},
	bucketCompany: {"company", "who", "founder", "representative", "ceo", "about", "会社", "代表"},
	bucketHowTo:   {"how", "improve", "start", "increase", "grow", "tips", "方法"},
}

// fallbackAnswer builds a deterministic answer from the retrieved
// material when the generation provider is unavailable. The question is
// routed to one of four templates by keyword matching and the template
// stitches in the top results' excerpts.
func fallbackAnswer(question string, results []content.SearchResult) string {
	if len(results) == 0 {
		return degradedAnswer
	}

	excerpts := stitchExcerpts(results, 2)
	switch classifyQuestion(question) {
	case bucketService:
		return fmt.Sprintf(
			"Here is what our material says about our services and pricing:\n\n%s\n\nFor a tailored quote, please reach out through the contact page.",
			excerpts,
		)
	case bucketCompany:
		return fmt.Sprintf(
			"About the company:\n\n%s",
			excerpts,
		)
	case bucketHowTo:
		return fmt.Sprintf(
			"Based on our published guides:\n\n%s\n\nThe related articles below go into more detail.",
			excerpts,
		)
	default:
		return fmt.Sprintf(
			"The most relevant material we have on this:\n\n%s",
			excerpts,
		)
	}
}

func classifyQuestion(question string) answerBucket {
	for _, bucket := range []answerBucket{bucketService, bucketCompany, bucketHowTo} {
		for _, keyword := range bucketKeywords[bucket] {
			if util.ContainsFold(question, keyword) {
				return bucket
			}
		}
	}
	return bucketGeneric
}

func stitchExcerpts(results []content.SearchResult, limit int) string {
	if limit > len(results) {
		limit = len(results)
	}
	parts := make([]string, 0, limit)
	for _, result := range results[:limit] {
		parts = append(parts, fmt.Sprintf(
			"%s: %s",
			result.Content.Title,
			util.TruncateRunes(result.Content.Body, excerptRunes),
		))
	}
	return strings.Join(parts, "\n\n")
}

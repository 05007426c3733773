package ai

// AnswerPrompt is the system prompt for answer generation. The single
// placeholder receives the assembled retrieval context.
const AnswerPrompt = `You are the assistant for a social media marketing agency's website.
Answer the visitor's question using only the reference material below.
Be concise and concrete. If the reference material does not cover the
question, say so instead of guessing.

Reference material:
%s`

// ClassifyPrompt asks the model to identify which known entities and
// topic cluster a question refers to. The placeholders receive the
// question, the known entity names, and the known cluster names.
const ClassifyPrompt = `Classify the following question against a fixed catalog.

Question: %q

Known entities: %s
Known clusters: %s

Pick only names from the catalogs. Return entities actually referenced by
the question and at most one cluster whose topic the question is about.
Leave both empty if nothing matches.`

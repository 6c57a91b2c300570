package keywords

// defaultStopWords is the fixed stop-word set: articles, prepositions,
// pronouns, auxiliaries, and the generic academic filler words that carry no
// topical signal in an abstract.
var defaultStopWords = map[string]struct{}{
	// Articles, conjunctions, prepositions
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "nor": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "from": {},
	"by": {}, "with": {}, "without": {}, "within": {}, "into": {}, "onto": {},
	"about": {}, "above": {}, "below": {}, "between": {}, "among": {},
	"through": {}, "during": {}, "before": {}, "after": {}, "under": {},
	"over": {}, "than": {}, "then": {}, "thus": {}, "hence": {}, "while": {},
	"where": {}, "when": {}, "which": {}, "whose": {}, "although": {},
	"because": {}, "since": {}, "toward": {}, "towards": {}, "upon": {},

	// Pronouns and determiners
	"it": {}, "its": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"we": {}, "our": {}, "ours": {}, "they": {}, "their": {}, "them": {},
	"such": {}, "both": {}, "each": {}, "either": {}, "neither": {},
	"other": {}, "others": {}, "some": {}, "any": {}, "all": {}, "most": {},
	"more": {}, "many": {}, "much": {}, "several": {}, "various": {},

	// Auxiliaries and common verbs
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"being": {}, "has": {}, "have": {}, "had": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "will": {}, "would": {}, "shall": {},
	"should": {}, "must": {}, "does": {}, "done": {}, "using": {},
	"used": {}, "use": {}, "uses": {}, "based": {}, "show": {}, "shows": {},
	"shown": {}, "also": {}, "however": {}, "therefore": {}, "moreover": {},
	"furthermore": {}, "here": {}, "there": {}, "well": {}, "only": {},
	"very": {}, "not": {},

	// Generic academic filler
	"study": {}, "studies": {}, "analysis": {}, "analyses": {},
	"method": {}, "methods": {}, "methodology": {}, "approach": {},
	"approaches": {}, "result": {}, "results": {}, "conclusion": {},
	"conclusions": {}, "paper": {}, "article": {}, "research": {},
	"researcher": {}, "researchers": {}, "finding": {}, "findings": {},
	"present": {}, "presents": {}, "presented": {}, "propose": {},
	"proposes": {}, "proposed": {}, "novel": {}, "new": {}, "recent": {},
	"recently": {}, "significant": {}, "significantly": {}, "important": {},
	"background": {}, "objective": {}, "objectives": {}, "purpose": {},
	"aim": {}, "aims": {}, "introduction": {}, "discussion": {},
	"evaluate": {}, "evaluated": {}, "evaluation": {}, "compare": {},
	"compared": {}, "comparison": {}, "respectively": {}, "overall": {},
	"total": {}, "number": {}, "level": {}, "levels": {}, "effect": {},
	"effects": {}, "impact": {}, "role": {}, "case": {}, "cases": {},
}

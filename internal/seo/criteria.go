package seo

// Thresholds 评估项各结论的判定条件说明
type Thresholds struct {
	Green  string `json:"green"`
	Orange string `json:"orange,omitempty"`
	Red    string `json:"red"`
}

var thresholds = [criterionCount]Thresholds{
	ContentLength: {
		Green:  "more than 900 words",
		Orange: "600 to 900 words",
		Red:    "fewer than 600 words",
	},
	OutboundLinks: {
		Green: "at least one external link",
		Red:   "no external links",
	},
	InternalLinks: {
		Green: "at least one internal link",
		Red:   "no internal links",
	},
	Images: {
		Green: "at least one image",
		Red:   "no images",
	},
	KeyphraseInIntroduction: {
		Green: "keyphrase in the first sentence of the introduction",
		Red:   "keyphrase missing from the first sentence",
	},
	KeyphraseDensity: {
		Green:  "density between 0.5% and 2.5%",
		Orange: "density above 2.5% up to 3%",
		Red:    "density below 0.5% or above 3%",
	},
	KeyphraseDistribution: {
		Green:  "6+ occurrences spread over at least half of the 150-word segments",
		Orange: "4+ occurrences, unevenly spread",
		Red:    "fewer than 4 occurrences",
	},
	TransitionWords: {
		Green:  "30% or more sentences contain a transition word",
		Orange: "20% to 30% of sentences contain a transition word",
		Red:    "fewer than 20% of sentences contain a transition word",
	},
	ConsecutiveSentences: {
		Green:  "no 3+ sentences in a row start with the same word",
		Orange: "several pairs of sentences start with the same word",
		Red:    "3+ sentences in a row start with the same word",
	},
	SubheadingDistribution: {
		Green:  "no section longer than 300 words",
		Orange: "one section longer than 300 words",
		Red:    "several sections longer than 300 words",
	},
	ParagraphLength: {
		Green:  "every paragraph under 150 words with 3+ sentences",
		Orange: "a paragraph of 150 to 200 words",
		Red:    "a paragraph over 200 words, or a short one with fewer than 3 sentences",
	},
	SentenceLength: {
		Green:  "25% or fewer sentences longer than 20 words",
		Orange: "25% to 30% of sentences longer than 20 words",
		Red:    "more than 30% of sentences longer than 20 words",
	},
	KeyphraseInSubheadings: {
		Green:  "keyphrase in 50% or more of the headings",
		Orange: "keyphrase in 20% to 50% of the headings",
		Red:    "keyphrase in fewer than 20% of the headings",
	},
}

// Describe 返回评估项的判定条件说明
func Describe(c Criterion) Thresholds {
	if c < 0 || c >= criterionCount {
		return Thresholds{}
	}
	return thresholds[c]
}

package seo

// 评分阈值
const (
	contentGreenAbove = 900 // 词数大于该值为Green
	contentOrangeFrom = 600 // 词数不小于该值为Orange

	densityGreenMin  = 0.5
	densityGreenMax  = 2.5
	densityOrangeMax = 3.0

	segmentSize           = 150 // 关键词分布统计的分段词数
	distributionGreenMin  = 6
	distributionOrangeMin = 4

	transitionGreenMinPct  = 30.0
	transitionOrangeMinPct = 20.0

	sameStartRedRun = 3

	sectionMaxWords = 300

	paragraphOrangeWords  = 150
	paragraphRedWords     = 200
	paragraphMinSentences = 3

	longSentenceWords    = 20
	sentenceGreenMaxPct  = 25.0
	sentenceOrangeMaxPct = 30.0

	headingGreenMinPct  = 50.0
	headingOrangeMinPct = 20.0
)

// Stats 评分所依据的度量值
type Stats struct {
	WordCount         int  `json:"word_count"`
	SentenceCount     int  `json:"sentence_count"`
	ParagraphCount    int  `json:"paragraph_count"`
	HeadingCount      int  `json:"heading_count"`
	ExternalLinkCount int  `json:"external_link_count"`
	InternalLinkCount int  `json:"internal_link_count"`
	HasImage          bool `json:"has_image"`

	KeyphraseInIntroduction bool    `json:"keyphrase_in_introduction"`
	KeyphraseOccurrences    int     `json:"keyphrase_occurrences"`
	KeyphraseDensity        float64 `json:"keyphrase_density"`

	Segments              int `json:"segments"`
	SegmentOccurrences    int `json:"segment_occurrences"`
	SegmentsWithKeyphrase int `json:"segments_with_keyphrase"`

	TransitionSentences int     `json:"transition_sentences"`
	TransitionPercent   float64 `json:"transition_percent"`

	MaxSameStartRun int `json:"max_same_start_run"`
	SameStartPairs  int `json:"same_start_pairs"`

	SectionWordCounts []int `json:"section_word_counts"`
	LongSections      int   `json:"long_sections"`

	LongParagraphs   int `json:"long_paragraphs"`   // 超过200词
	MediumParagraphs int `json:"medium_paragraphs"` // 150到200词
	ThinParagraphs   int `json:"thin_paragraphs"`   // 少于150词且不足3句

	LongSentences       int     `json:"long_sentences"`
	LongSentencePercent float64 `json:"long_sentence_percent"`

	HeadingsWithKeyphrase   int     `json:"headings_with_keyphrase"`
	HeadingKeyphrasePercent float64 `json:"heading_keyphrase_percent"`
}

// percent 计算百分比，分母为0时返回0
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// measure 从结构信息计算全部度量值
func measure(f *Facts, kw Keyword) Stats {
	s := Stats{
		WordCount:         len(f.Words),
		SentenceCount:     len(f.Sentences),
		ParagraphCount:    len(f.Paragraphs),
		HeadingCount:      len(f.Headings),
		ExternalLinkCount: len(f.ExternalLinks),
		InternalLinkCount: len(f.InternalLinks),
		HasImage:          f.HasImage,
	}

	s.KeyphraseInIntroduction = kw.ContainedIn(f.introduction())
	s.KeyphraseOccurrences = kw.CountIn(f.LowerWords)
	s.KeyphraseDensity = percent(s.KeyphraseOccurrences, s.WordCount)

	for start := 0; start < len(f.LowerWords); start += segmentSize {
		end := start + segmentSize
		if end > len(f.LowerWords) {
			end = len(f.LowerWords)
		}
		n := kw.CountIn(f.LowerWords[start:end])
		s.Segments++
		s.SegmentOccurrences += n
		if n > 0 {
			s.SegmentsWithKeyphrase++
		}
	}

	for _, sentence := range f.Sentences {
		if hasTransition(sentence) {
			s.TransitionSentences++
		}
		if len(splitWords(sentence)) > longSentenceWords {
			s.LongSentences++
		}
	}
	s.TransitionPercent = percent(s.TransitionSentences, s.SentenceCount)
	s.LongSentencePercent = percent(s.LongSentences, s.SentenceCount)

	s.MaxSameStartRun, s.SameStartPairs = sameStartRuns(f.Sentences)

	s.SectionWordCounts = f.sectionWordCounts()
	for _, n := range s.SectionWordCounts {
		if n > sectionMaxWords {
			s.LongSections++
		}
	}

	for _, p := range f.Paragraphs {
		words := len(splitWords(p))
		switch {
		case words > paragraphRedWords:
			s.LongParagraphs++
		case words >= paragraphOrangeWords:
			s.MediumParagraphs++
		case len(splitSentences(p)) < paragraphMinSentences:
			s.ThinParagraphs++
		}
	}

	for _, h := range f.Headings {
		if kw.ContainedIn(h) {
			s.HeadingsWithKeyphrase++
		}
	}
	s.HeadingKeyphrasePercent = percent(s.HeadingsWithKeyphrase, s.HeadingCount)

	return s
}

// sameStartRuns 按顺序扫描句首词
// 返回最长的相同句首连续句数，以及相邻两句句首相同的次数
// 句首词为空时不计为重复
func sameStartRuns(sentences []string) (maxRun, pairs int) {
	maxRun, run := 1, 1
	prev := ""
	for i, sentence := range sentences {
		first := firstWord(sentence)
		if i > 0 && first != "" && first == prev {
			run++
			pairs++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 1
		}
		prev = first
	}
	return maxRun, pairs
}

// scorer 单项评分函数
type scorer func(s *Stats) Verdict

// scorers 按评估项下标排列，数组长度保证每一项都有评分函数
var scorers = [criterionCount]scorer{
	ContentLength:           scoreContentLength,
	OutboundLinks:           scoreOutboundLinks,
	InternalLinks:           scoreInternalLinks,
	Images:                  scoreImages,
	KeyphraseInIntroduction: scoreKeyphraseInIntroduction,
	KeyphraseDensity:        scoreKeyphraseDensity,
	KeyphraseDistribution:   scoreKeyphraseDistribution,
	TransitionWords:         scoreTransitionWords,
	ConsecutiveSentences:    scoreConsecutiveSentences,
	SubheadingDistribution:  scoreSubheadingDistribution,
	ParagraphLength:         scoreParagraphLength,
	SentenceLength:          scoreSentenceLength,
	KeyphraseInSubheadings:  scoreKeyphraseInSubheadings,
}

func scoreContentLength(s *Stats) Verdict {
	switch {
	case s.WordCount > contentGreenAbove:
		return Green
	case s.WordCount >= contentOrangeFrom:
		return Orange
	default:
		return Red
	}
}

func scoreOutboundLinks(s *Stats) Verdict {
	return greenIf(s.ExternalLinkCount > 0)
}

func scoreInternalLinks(s *Stats) Verdict {
	return greenIf(s.InternalLinkCount > 0)
}

func scoreImages(s *Stats) Verdict {
	return greenIf(s.HasImage)
}

func scoreKeyphraseInIntroduction(s *Stats) Verdict {
	return greenIf(s.KeyphraseInIntroduction)
}

func scoreKeyphraseDensity(s *Stats) Verdict {
	d := s.KeyphraseDensity
	switch {
	case d >= densityGreenMin && d <= densityGreenMax:
		return Green
	case d > densityGreenMax && d <= densityOrangeMax:
		return Orange
	default:
		return Red
	}
}

func scoreKeyphraseDistribution(s *Stats) Verdict {
	if s.SegmentOccurrences < distributionOrangeMin {
		return Red
	}
	if s.SegmentOccurrences >= distributionGreenMin &&
		float64(s.SegmentsWithKeyphrase) >= float64(s.Segments)/2 {
		return Green
	}
	return Orange
}

func scoreTransitionWords(s *Stats) Verdict {
	switch p := s.TransitionPercent; {
	case p < transitionOrangeMinPct:
		return Red
	case p < transitionGreenMinPct:
		return Orange
	default:
		return Green
	}
}

func scoreConsecutiveSentences(s *Stats) Verdict {
	switch {
	case s.MaxSameStartRun >= sameStartRedRun:
		return Red
	case s.SameStartPairs > 1:
		return Orange
	default:
		return Green
	}
}

func scoreSubheadingDistribution(s *Stats) Verdict {
	switch {
	case s.LongSections > 1:
		return Red
	case s.LongSections == 1:
		return Orange
	default:
		return Green
	}
}

func scoreParagraphLength(s *Stats) Verdict {
	switch {
	case s.LongParagraphs > 0 || s.ThinParagraphs > 0:
		return Red
	case s.MediumParagraphs > 0:
		return Orange
	default:
		return Green
	}
}

func scoreSentenceLength(s *Stats) Verdict {
	switch p := s.LongSentencePercent; {
	case p <= sentenceGreenMaxPct:
		return Green
	case p <= sentenceOrangeMaxPct:
		return Orange
	default:
		return Red
	}
}

func scoreKeyphraseInSubheadings(s *Stats) Verdict {
	switch p := s.HeadingKeyphrasePercent; {
	case p >= headingGreenMinPct:
		return Green
	case p >= headingOrangeMinPct:
		return Orange
	default:
		return Red
	}
}

func greenIf(ok bool) Verdict {
	if ok {
		return Green
	}
	return Red
}

package seo

import (
	"fmt"
)

// Verdict 单项评估结论，按质量递增排列：Red < Orange < Green
type Verdict int

const (
	// Red 不合格
	Red Verdict = iota + 1
	// Orange 待改进
	Orange
	// Green 合格
	Green
)

var verdictNames = map[Verdict]string{
	Red:    "Red",
	Orange: "Orange",
	Green:  "Green",
}

// String 返回结论名称
func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Valid 判断是否为三种合法结论之一
func (v Verdict) Valid() bool {
	_, ok := verdictNames[v]
	return ok
}

// MarshalText 实现encoding.TextMarshaler
func (v Verdict) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid verdict: %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText 实现encoding.TextUnmarshaler
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict 从名称解析结论
func ParseVerdict(name string) (Verdict, error) {
	for v, n := range verdictNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown verdict: %q", name)
}

// Criterion 评估项，顺序固定
type Criterion int

const (
	ContentLength Criterion = iota
	OutboundLinks
	InternalLinks
	Images
	KeyphraseInIntroduction
	KeyphraseDensity
	KeyphraseDistribution
	TransitionWords
	ConsecutiveSentences
	SubheadingDistribution
	ParagraphLength
	SentenceLength
	KeyphraseInSubheadings

	criterionCount
)

// NumCriteria 评估项总数
const NumCriteria = int(criterionCount)

var criterionNames = [criterionCount]string{
	ContentLength:           "Content Length",
	OutboundLinks:           "Outbound Links",
	InternalLinks:           "Internal Links",
	Images:                  "Images",
	KeyphraseInIntroduction: "Keyphrase in Introduction",
	KeyphraseDensity:        "Keyphrase Density",
	KeyphraseDistribution:   "Keyphrase Distribution",
	TransitionWords:         "Transition Words",
	ConsecutiveSentences:    "Consecutive Sentences",
	SubheadingDistribution:  "Subheading Distribution",
	ParagraphLength:         "Paragraph Length",
	SentenceLength:          "Sentence Length",
	KeyphraseInSubheadings:  "Keyphrase in Subheadings",
}

// String 返回评估项在结果中的键名
func (c Criterion) String() string {
	if c < 0 || c >= criterionCount {
		return fmt.Sprintf("Criterion(%d)", int(c))
	}
	return criterionNames[c]
}

// Criteria 按固定顺序返回全部评估项
func Criteria() []Criterion {
	all := make([]Criterion, criterionCount)
	for i := range all {
		all[i] = Criterion(i)
	}
	return all
}

// ParseCriterion 从键名解析评估项
func ParseCriterion(name string) (Criterion, error) {
	for i, n := range criterionNames {
		if n == name {
			return Criterion(i), nil
		}
	}
	return 0, fmt.Errorf("unknown criterion: %q", name)
}

// MarshalText 实现encoding.TextMarshaler
func (c Criterion) MarshalText() ([]byte, error) {
	if c < 0 || c >= criterionCount {
		return nil, fmt.Errorf("invalid criterion: %d", int(c))
	}
	return []byte(criterionNames[c]), nil
}

// UnmarshalText 实现encoding.TextUnmarshaler
func (c *Criterion) UnmarshalText(text []byte) error {
	parsed, err := ParseCriterion(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

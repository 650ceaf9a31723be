package seo

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verdictCode 将结果编码为13位字母串，便于整体比对
func verdictCode(r Result) string {
	var b strings.Builder
	for _, e := range r.Entries() {
		b.WriteByte(e.Verdict.String()[0])
	}
	return b.String()
}

const filler = "cats purr near the warm stove. "

// TestEvaluateGolden 按固定顺序逐项比对完整结果
func TestEvaluateGolden(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		keyword string
		want    string
	}{
		{"empty document", "", "test", "RRRRRRRRGGGGR"},
		{"blank keyword matches nothing", "seo tips for seo writers. seo matters.", "", "RRRRRRRRGGRGR"},
		{"heading on the same line", "# Title\\nkeyword keyword keyword. " + strings.Repeat("word ", 200), "keyword", "RRRRGGRRGGRRG"},
		{"heading without keyword", "# Title\nkeyword keyword keyword. " + strings.Repeat("word ", 200), "keyword", "RRRRGGRRGGRRR"},
		{"900 words", strings.Repeat("word ", 900), "x", "ORRRRRRRGORRR"},
		{"901 words", strings.Repeat("word ", 901), "x", "GRRRRRRRGORRR"},
		{"image and links", "![x](y.png) https://example.com [home](/home)", "x", "RGGGRRRRGGGGR"},
		{"html image", `Look <img src="a.png" alt="a"> here.`, "x", "RRRGRRRGGGRGR"},
		{"link nested in external link", "[a](http://x[b](c))", "x", "RGGRGRRRGGRGR"},
		{"footnote style link", "[[1]](https://a.com)", "x", "RGRRRRRRGGRGR"},
		{"three sentences start with The", "The cat sat. The dog ran. The bird flew.", "x", "RRRRRRRRRGGGR"},
		{"two repeated pairs", "The cat sat. The dog ran. A bird flew. A fish swam.", "x", "RRRRRRRROGGGR"},
		{"single repeated pair", "The cat sat. The dog ran. A bird flew.", "x", "RRRRRRRRGGGGR"},
		{"reversed phrase", "Learning deep models is fun. We study learning deep.", "deep learning", "RRRRRRRRGGRGR"},
		{"adjacent phrase", "Deep learning models are fun. We study deep learning.", "deep learning", "RRRRGRRRGGRGR"},
		{"density at 0.5%", "seo " + strings.Repeat("word ", 199), "seo", "RRRRGGRRGGORR"},
		{"density at 3%", "seo seo seo " + strings.Repeat("word ", 97), "seo", "RRRRGORRGGRRR"},
		{"density above 3%", "seo seo seo seo " + strings.Repeat("word ", 96), "seo", "RRRRGRORGGRRR"},
		{"evenly distributed", strings.Repeat("seo seo seo "+strings.Repeat("word ", 147), 2), "seo", "RRRRGGGRGGRRR"},
		{"clustered keyphrase", "seo seo seo seo " + strings.Repeat("word ", 296), "seo", "RRRRGGORGGRRR"},
		{"one long section", "# A\n" + strings.Repeat("word ", 301) + "\n# B\n" + strings.Repeat("word ", 10), "x", "RRRRRRRRGORRR"},
		{"two long sections", "# A\n" + strings.Repeat("word ", 301) + "\n# B\n" + strings.Repeat("word ", 301), "x", "ORRRRRRRGRRRR"},
		{"keyphrase in a quarter of headings", "# seo one\n## two\n## three\n## four\ntext", "seo", "RRRRGRRRGGRGO"},
		{"short paragraphs", strings.Repeat(filler, 3) + "\n\n" + strings.Repeat(filler, 4), "x", "RRRRRRRRRGGGR"},
		{"medium paragraph", strings.Repeat(filler, 3) + "\n\n" + strings.Repeat("word ", 160) + ".", "x", "RRRRRRRRRGOGR"},
		{"thin paragraph", strings.Repeat(filler, 3) + "\n\n" + "Just one sentence here.", "x", "RRRRRRRORGRGR"},
		{
			name: "small article",
			text: "# SEO writing guide\n\nSEO writing is a craft. However, it takes practice. For example, keep sentences short.\n\n" +
				"![chart](chart.png)\n\nRead [our basics](/basics) and https://example.org/guide for more. Good SEO writing pays off. " +
				"Finally, measure results.\n\n## Measuring SEO writing\n\nTrack rankings weekly. Compare pages over time. Then adjust the copy.",
			keyword: "seo writing",
			want:    "RGGGGROGGGRGG",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.text, tc.keyword)
			assert.Equal(t, tc.want, verdictCode(got))
		})
	}
}

func TestEvaluateAlwaysComplete(t *testing.T) {
	inputs := []struct{ text, keyword string }{
		{"", ""},
		{"   \n\n\t", "   "},
		{"!!!???...", "a"},
		{"short", "a keyword much longer than the document itself"},
		{"[unclosed](link and ![broken](", "link"},
		{"# \n#\n##", "#"},
		{"Ünïcödé wörds ünd mörë wörds.", "wörds"},
	}

	for _, in := range inputs {
		r := Evaluate(in.text, in.keyword)
		require.Equal(t, NumCriteria, r.Len())
		for _, e := range r.Entries() {
			assert.True(t, e.Verdict.Valid(), "criterion %s has invalid verdict", e.Criterion)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	text := "# Guide\n\nThe guide explains seo. However, it is short.\n\n[home](/home) https://example.com"
	first := Analyze(text, "seo")
	second := Analyze(text, "seo")
	assert.Equal(t, first, second)
}

func TestEvaluateConcurrent(t *testing.T) {
	text := strings.Repeat("The keyword appears here. Another sentence follows. ", 50)
	want := Evaluate(text, "keyword")

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Evaluate(text, "keyword")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestEmptyDocumentVerdicts(t *testing.T) {
	r := Evaluate("", "test")
	for _, c := range []Criterion{
		ContentLength, OutboundLinks, InternalLinks, Images,
		KeyphraseInIntroduction, KeyphraseInSubheadings, KeyphraseDensity,
	} {
		assert.Equal(t, Red, r.Get(c), c.String())
	}
}

func TestAnalyzeStats(t *testing.T) {
	t.Run("nested link", func(t *testing.T) {
		f := Extract("[a](http://x[b](c))")
		assert.Equal(t, []string{"[b](c)"}, f.InternalLinks)
		assert.Equal(t, []string{"http://x[b](c"}, f.ExternalLinks)
	})

	t.Run("image markup counts as internal link", func(t *testing.T) {
		f := Extract("![x](y.png)")
		assert.True(t, f.HasImage)
		assert.Equal(t, []string{"[x](y.png)"}, f.InternalLinks)
	})

	t.Run("reversed phrase never matches", func(t *testing.T) {
		rep := Analyze("Learning deep models is fun. We study learning deep.", "deep learning")
		assert.Zero(t, rep.Stats.KeyphraseOccurrences)
		assert.Zero(t, rep.Stats.SegmentOccurrences)
		assert.False(t, rep.Stats.KeyphraseInIntroduction)
	})

	t.Run("sections skip empty spans", func(t *testing.T) {
		rep := Analyze("intro words\n# A\n\n# B\none two three", "x")
		assert.Equal(t, []int{3}, rep.Stats.SectionWordCounts)
		assert.Equal(t, 2, rep.Stats.HeadingCount)
	})

	t.Run("long sentence flagged", func(t *testing.T) {
		rep := Analyze("# Title\nkeyword keyword keyword. "+strings.Repeat("word ", 200), "keyword")
		assert.Equal(t, 2, rep.Stats.SentenceCount)
		assert.Equal(t, 1, rep.Stats.LongSentences)
		assert.Equal(t, Red, rep.Result.Get(SentenceLength))
	})

	t.Run("segments", func(t *testing.T) {
		rep := Analyze(strings.Repeat("word ", 301), "word")
		assert.Equal(t, 3, rep.Stats.Segments)
		assert.Equal(t, 301, rep.Stats.SegmentOccurrences)
		assert.Equal(t, 3, rep.Stats.SegmentsWithKeyphrase)
	})
}

func TestResultJSON(t *testing.T) {
	r := Evaluate("![x](y.png) https://example.com [home](/home)", "x")

	data, err := json.Marshal(r)
	require.NoError(t, err)

	// 键顺序与评估项顺序一致
	s := string(data)
	last := -1
	for _, c := range Criteria() {
		idx := strings.Index(s, `"`+c.String()+`"`)
		require.GreaterOrEqual(t, idx, 0, c.String())
		assert.Greater(t, idx, last, c.String())
		last = idx
	}
	assert.Contains(t, s, `"Images":"Green"`)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r, decoded)
}

func TestResultJSONRejectsPartial(t *testing.T) {
	var r Result
	err := json.Unmarshal([]byte(`{"Images":"Green"}`), &r)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"Images":"Blue"}`), &r)
	assert.Error(t, err)
}

func TestSummaryAndNeeding(t *testing.T) {
	r := Evaluate("![x](y.png) https://example.com [home](/home)", "x")
	assert.Equal(t, Summary{Green: 7, Orange: 0, Red: 6}, r.Summary())
	assert.Equal(t, []Criterion{
		ContentLength, KeyphraseInIntroduction, KeyphraseDensity,
		KeyphraseDistribution, TransitionWords, KeyphraseInSubheadings,
	}, r.Needing())

	two := Evaluate("The cat sat. The dog ran. A bird flew. A fish swam.", "x")
	needing := two.Needing()
	assert.Equal(t, ConsecutiveSentences, needing[len(needing)-1])
}

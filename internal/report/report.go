package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyerfyer/seo-evaluator/internal/seo"
)

// Options 终端报告的输出选项
type Options struct {
	Plain      bool // 不输出颜色和样式
	Thresholds bool // 为未达到Green的评估项附上判定条件
	Stats      bool // 输出评分所依据的度量值
}

var (
	colorGreen  = lipgloss.Color("#4CAF50")
	colorOrange = lipgloss.Color("#F7B801")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorMuted  = lipgloss.Color("#A0AEC0")
)

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	detail lipgloss.Style
	badges map[seo.Verdict]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, plain bool) styles {
	if plain {
		base := r.NewStyle()
		return styles{
			title:  base,
			label:  base,
			detail: base,
			badges: map[seo.Verdict]lipgloss.Style{seo.Green: base, seo.Orange: base, seo.Red: base},
		}
	}

	badge := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c).Bold(true)
	}
	return styles{
		title:  r.NewStyle().Bold(true).Underline(true),
		label:  r.NewStyle(),
		detail: r.NewStyle().Foreground(colorMuted),
		badges: map[seo.Verdict]lipgloss.Style{
			seo.Green:  badge(colorGreen),
			seo.Orange: badge(colorOrange),
			seo.Red:    badge(colorRed),
		},
	}
}

// Render 把评估报告以终端友好的格式写入w
func Render(w io.Writer, rep seo.Report, opts Options) error {
	st := newStyles(lipgloss.NewRenderer(w), opts.Plain)

	var b strings.Builder
	keyword := rep.Keyword
	if keyword == "" {
		keyword = "(none)"
	}
	b.WriteString(st.title.Render("SEO report for keyphrase: " + keyword))
	b.WriteString("\n\n")

	for _, e := range rep.Result.Entries() {
		b.WriteString("  ")
		b.WriteString(st.badges[e.Verdict].Render(badgeText(e.Verdict)))
		b.WriteString(" ")
		b.WriteString(st.label.Render(e.Criterion.String()))
		b.WriteString("\n")

		if opts.Thresholds && e.Verdict != seo.Green {
			b.WriteString(st.detail.Render("           green: " + seo.Describe(e.Criterion).Green))
			b.WriteString("\n")
		}
	}

	sum := rep.Result.Summary()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Summary: %s, %s, %s\n",
		st.badges[seo.Green].Render(fmt.Sprintf("%d green", sum.Green)),
		st.badges[seo.Orange].Render(fmt.Sprintf("%d orange", sum.Orange)),
		st.badges[seo.Red].Render(fmt.Sprintf("%d red", sum.Red)),
	))

	if opts.Stats {
		b.WriteString("\n")
		for _, line := range statLines(rep.Stats) {
			b.WriteString(st.detail.Render(line))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON 以缩进JSON输出报告
func WriteJSON(w io.Writer, rep seo.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// badgeText 返回定宽的结论标签
func badgeText(v seo.Verdict) string {
	return fmt.Sprintf("[%-6s]", strings.ToUpper(v.String()))
}

func statLines(s seo.Stats) []string {
	return []string{
		fmt.Sprintf("Words: %d  Sentences: %d  Paragraphs: %d  Headings: %d",
			s.WordCount, s.SentenceCount, s.ParagraphCount, s.HeadingCount),
		fmt.Sprintf("Links: %d external, %d internal  Image: %t",
			s.ExternalLinkCount, s.InternalLinkCount, s.HasImage),
		fmt.Sprintf("Keyphrase: %d occurrences, %.2f%% density, in %d/%d segments",
			s.KeyphraseOccurrences, s.KeyphraseDensity, s.SegmentsWithKeyphrase, s.Segments),
		fmt.Sprintf("Transitions: %.1f%%  Long sentences: %.1f%%  Subheadings with keyphrase: %.1f%%",
			s.TransitionPercent, s.LongSentencePercent, s.HeadingKeyphrasePercent),
	}
}

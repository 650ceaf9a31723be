package seo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry 结果中的一项
type Entry struct {
	Criterion Criterion `json:"criterion"`
	Verdict   Verdict   `json:"verdict"`
}

// Result 评估结果：评估项到结论的有序映射
// 始终包含全部13项，顺序与Criteria()一致，构造后不可修改
type Result struct {
	verdicts [criterionCount]Verdict
}

// Get 返回某一评估项的结论
func (r Result) Get(c Criterion) Verdict {
	if c < 0 || c >= criterionCount {
		return 0
	}
	return r.verdicts[c]
}

// Len 返回评估项数量
func (r Result) Len() int {
	return len(r.verdicts)
}

// Entries 按固定顺序返回所有评估项及结论
func (r Result) Entries() []Entry {
	entries := make([]Entry, 0, len(r.verdicts))
	for i, v := range r.verdicts {
		entries = append(entries, Entry{Criterion: Criterion(i), Verdict: v})
	}
	return entries
}

// Summary 统计各结论的数量
func (r Result) Summary() Summary {
	var s Summary
	for _, v := range r.verdicts {
		switch v {
		case Green:
			s.Green++
		case Orange:
			s.Orange++
		case Red:
			s.Red++
		}
	}
	return s
}

// Needing 返回未达到Green的评估项，Red在前，同级按固定顺序
func (r Result) Needing() []Criterion {
	var out []Criterion
	for _, want := range []Verdict{Red, Orange} {
		for i, v := range r.verdicts {
			if v == want {
				out = append(out, Criterion(i))
			}
		}
	}
	return out
}

// MarshalJSON 输出为键顺序固定的JSON对象
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.verdicts {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(Criterion(i).String())
		if err != nil {
			return nil, err
		}
		val, err := v.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("criterion %q: %w", Criterion(i), err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('"')
		buf.Write(val)
		buf.WriteByte('"')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 从JSON对象还原结果，要求恰好包含全部评估项
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]Verdict
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != NumCriteria {
		return fmt.Errorf("expected %d criteria, got %d", NumCriteria, len(raw))
	}

	var decoded Result
	for name, v := range raw {
		c, err := ParseCriterion(name)
		if err != nil {
			return err
		}
		decoded.verdicts[c] = v
	}
	*r = decoded
	return nil
}

// Summary 各结论数量汇总
type Summary struct {
	Green  int `json:"green"`
	Orange int `json:"orange"`
	Red    int `json:"red"`
}

// Report 结果及其度量依据
type Report struct {
	Keyword string `json:"keyword"`
	Result  Result `json:"result"`
	Stats   Stats  `json:"stats"`
}

// Analyze 评估文档并返回结果与度量值
// 纯函数，可并发调用
func Analyze(text, keyword string) Report {
	facts := Extract(text)
	kw := NewKeyword(keyword)
	stats := measure(facts, kw)

	var result Result
	for i, score := range scorers {
		result.verdicts[i] = score(&stats)
	}

	return Report{
		Keyword: kw.Phrase(),
		Result:  result,
		Stats:   stats,
	}
}

// Evaluate 评估文档，返回13项有序结论
func Evaluate(text, keyword string) Result {
	return Analyze(text, keyword).Result
}

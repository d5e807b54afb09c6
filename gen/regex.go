package gen

import (
	"fmt"
	"math"
	"regexp/syntax"
	"strings"

	"checkito/rng"
	"checkito/shrink"
)

// Regex compiles pattern once and builds a generator of strings matching
// it. Shrinking reduces repetition counts and alternation choices; every
// candidate it produces still matches pattern.
func Regex(pattern string) Generator[string] {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		panic(fmt.Sprintf("gen: invalid regex pattern %q: %v", pattern, err))
	}
	re = re.Simplify()
	return New(func(s rng.State) (shrink.Tree[string], error) {
		plan := genPlan(re, s)
		return planTree(plan), nil
	})
}

// planNode is a fully resolved rendering decision for one node of the
// parsed regex AST: which repetition count, which alternation branch, which
// concrete rune, etc. Rendering and shrinking both operate on planNode so
// that every shrink candidate is, by construction, still a valid rendering
// of the same AST and therefore still in the pattern's language.
type planNode struct {
	re   *syntax.Regexp
	reps int
	ch   rune
	kids []planNode
}

func genPlan(re *syntax.Regexp, s rng.State) planNode {
	switch re.Op {
	case syntax.OpLiteral:
		return planNode{re: re}
	case syntax.OpCharClass:
		return planNode{re: re, ch: pickRuneFromClass(re.Rune, s)}
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return planNode{re: re, ch: rune('a' + s.Rand.Intn(26))}
	case syntax.OpCapture:
		return planNode{re: re, kids: []planNode{genPlan(re.Sub[0], s.Sub())}}
	case syntax.OpConcat:
		kids := make([]planNode, len(re.Sub))
		for i, sub := range re.Sub {
			kids[i] = genPlan(sub, s.Sub())
		}
		return planNode{re: re, kids: kids}
	case syntax.OpAlternate:
		idx := 0
		if len(re.Sub) > 0 {
			idx = s.Rand.Intn(len(re.Sub))
		}
		return planNode{re: re, reps: idx, kids: []planNode{genPlan(re.Sub[idx], s.Sub())}}
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		min, max := repeatBounds(re)
		n := genRepeatCount(min, max, s)
		kids := make([]planNode, n)
		for i := 0; i < n; i++ {
			kids[i] = genPlan(re.Sub[0], s.Sub())
		}
		return planNode{re: re, reps: n, kids: kids}
	default:
		return planNode{re: re}
	}
}

func genRepeatCount(min, max int, s rng.State) int {
	capped := clampInt(max, min, min+10)
	if capped <= min {
		return min
	}
	span := float64(capped - min)
	upper := min + int(math.Ceil(rng.Lerp(0, span, s.Size)))
	if upper < min {
		upper = min
	}
	if upper > capped {
		upper = capped
	}
	if upper == min {
		return min
	}
	return min + s.Rand.Intn(upper-min+1)
}

func repeatBounds(re *syntax.Regexp) (min, max int) {
	switch re.Op {
	case syntax.OpStar:
		return 0, -1
	case syntax.OpPlus:
		return 1, -1
	case syntax.OpQuest:
		return 0, 1
	case syntax.OpRepeat:
		return re.Min, re.Max
	default:
		return 0, 0
	}
}

func clampInt(max, min, cap int) int {
	if max < 0 || max > cap {
		return cap
	}
	if max < min {
		return min
	}
	return max
}

func pickRuneFromClass(ranges []rune, s rng.State) rune {
	if len(ranges) == 0 {
		return 'a'
	}
	total := int64(0)
	for i := 0; i+1 < len(ranges); i += 2 {
		total += int64(ranges[i+1]-ranges[i]) + 1
	}
	if total <= 0 {
		return ranges[0]
	}
	pick := s.Rand.Int63n(total)
	for i := 0; i+1 < len(ranges); i += 2 {
		width := int64(ranges[i+1]-ranges[i]) + 1
		if pick < width {
			return ranges[i] + rune(pick)
		}
		pick -= width
	}
	return ranges[0]
}

func renderPlan(p planNode) string {
	switch p.re.Op {
	case syntax.OpLiteral:
		return string(p.re.Rune)
	case syntax.OpCharClass, syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return string(p.ch)
	case syntax.OpCapture, syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat, syntax.OpAlternate:
		var b strings.Builder
		for _, k := range p.kids {
			b.WriteString(renderPlan(k))
		}
		return b.String()
	case syntax.OpConcat:
		var b strings.Builder
		for _, k := range p.kids {
			b.WriteString(renderPlan(k))
		}
		return b.String()
	default:
		return ""
	}
}

// shrinkPlan returns the one-step-smaller plans reachable from p, staying
// within the grammar at every node: repeats lower their count towards their
// minimum, alternation prefers an earlier branch, concat/capture shrink one
// child at a time.
func shrinkPlan(p planNode) []planNode {
	switch p.re.Op {
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		min, _ := repeatBounds(p.re)
		var out []planNode
		for _, n := range shrink.IntegersTowards(int64(p.reps), int64(min)) {
			out = append(out, planNode{re: p.re, reps: int(n), kids: append([]planNode{}, p.kids[:n]...)})
		}
		for i, k := range p.kids {
			for _, c := range shrinkPlan(k) {
				replaced := append([]planNode{}, p.kids...)
				replaced[i] = c
				out = append(out, planNode{re: p.re, reps: p.reps, kids: replaced})
			}
		}
		return out
	case syntax.OpAlternate:
		var out []planNode
		if p.reps > 0 {
			minimal := genPlan(p.re.Sub[0], rng.New(0, 0))
			out = append(out, planNode{re: p.re, reps: 0, kids: []planNode{minimal}})
		}
		for _, c := range shrinkPlan(p.kids[0]) {
			out = append(out, planNode{re: p.re, reps: p.reps, kids: []planNode{c}})
		}
		return out
	case syntax.OpConcat, syntax.OpCapture:
		var out []planNode
		for i, k := range p.kids {
			for _, c := range shrinkPlan(k) {
				replaced := append([]planNode{}, p.kids...)
				replaced[i] = c
				out = append(out, planNode{re: p.re, kids: replaced})
			}
		}
		return out
	default:
		return nil
	}
}

func planTree(p planNode) shrink.Tree[string] {
	return shrink.Node(renderPlan(p), func() []shrink.Tree[string] {
		var out []shrink.Tree[string]
		for _, c := range shrinkPlan(p) {
			out = append(out, planTree(c))
		}
		return out
	})
}

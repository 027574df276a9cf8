// docpos-bench is a benchmark and stress test for the docpos library.
// It builds a large nested document and measures traversal, node walking
// and stable path round trips over it.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/phroun/docpos"
)

const (
	paragraphWords = 40
	gridRows       = 3
	gridCols       = 3
)

var words = []string{
	"alpha", "beta", "gamma", "delta", "sum", "integral", "x", "y", "naïve", "über",
}

type BenchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
	Extra    string
}

func (r BenchResult) String() string {
	if r.Ops > 0 {
		opsPerSec := float64(r.Ops) / r.Duration.Seconds()
		if r.Extra != "" {
			return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec) %s", r.Name, r.Duration.Round(time.Microsecond), r.Ops, opsPerSec, r.Extra)
		}
		return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec)", r.Name, r.Duration.Round(time.Microsecond), r.Ops, opsPerSec)
	}
	if r.Extra != "" {
		return fmt.Sprintf("%-40s %12v  %s", r.Name, r.Duration.Round(time.Microsecond), r.Extra)
	}
	return fmt.Sprintf("%-40s %12v", r.Name, r.Duration.Round(time.Microsecond))
}

func main() {
	paragraphs := flag.Int("paragraphs", 2000, "number of top-level paragraphs")
	depth := flag.Int("depth", 3, "maximum nesting depth of math grids")
	seed := flag.Uint64("seed", 1, "random seed for document generation")
	flag.Parse()

	if *paragraphs < 1 || *depth < 0 {
		fmt.Println("paragraphs must be positive and depth non-negative")
		os.Exit(1)
	}

	fmt.Println("docpos Benchmark and Stress Test")
	fmt.Println("================================")
	fmt.Printf("Paragraphs: %d, nesting depth: %d\n", *paragraphs, *depth)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Println()

	var results []BenchResult

	fmt.Println("Generating document...")
	rng := rand.New(rand.NewPCG(*seed, *seed))
	var root *docpos.TextNode
	result := func() BenchResult {
		start := time.Now()
		root = generateDocument(rng, *paragraphs, *depth)
		return BenchResult{
			Name:     "Generate document",
			Duration: time.Since(start),
			Extra:    fmt.Sprintf("%d positions", docpos.CountPositions(root)),
		}
	}()
	results = append(results, result)
	fmt.Println(result)
	fmt.Println()

	runBench := func(name string, fn func() BenchResult) {
		fmt.Printf("  %-40s ", name+"...")
		result := fn()
		fmt.Printf("%v\n", result.Duration.Round(time.Microsecond))
		results = append(results, result)
	}

	fmt.Println("Traversal:")
	runBench("Forward (whole document)", func() BenchResult { return benchForward(root) })
	runBench("Backward (whole document)", func() BenchResult { return benchBackward(root) })
	runBench("ForwardChar (whole document)", func() BenchResult { return benchForwardChar(root) })
	runBench("ForwardPar (whole document)", func() BenchResult { return benchForwardPar(root) })

	fmt.Println("\nNode walking:")
	runBench("NodeWalker (all nodes)", func() BenchResult { return benchWalker(root) })

	fmt.Println("\nStable paths:")
	runBench("Snapshot + resolve (every 97th pos)", func() BenchResult { return benchStable(root) })
	runBench("Text form round trip", func() BenchResult { return benchStableText(root) })

	fmt.Println("\nSearch:")
	runBench("FindString (case-insensitive)", func() BenchResult { return benchSearch(root) })

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	for _, r := range results {
		fmt.Println(r)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Println()
	fmt.Printf("Peak heap allocation: %d MB\n", m.HeapSys/(1024*1024))
	fmt.Printf("Total allocations: %d MB\n", m.TotalAlloc/(1024*1024))
}

// generateDocument builds paragraphs of random words with math grids
// sprinkled in, nesting grids inside grid cells up to depth.
func generateDocument(rng *rand.Rand, paragraphs, depth int) *docpos.TextNode {
	root := docpos.NewText()
	for i := 0; i < paragraphs; i++ {
		var items []docpos.Item
		for w := 0; w < paragraphWords; w++ {
			if depth > 0 && rng.IntN(20) == 0 {
				items = append(items, docpos.NodeItem(generateGrid(rng, depth)))
				continue
			}
			items = append(items, docpos.TextItems(words[rng.IntN(len(words))]+" ")...)
		}
		if i == 0 {
			root.InsertItems(0, 0, items...)
			continue
		}
		root.AppendParagraph(items...)
	}
	return root
}

func generateGrid(rng *rand.Rand, depth int) *docpos.MathNode {
	m := docpos.NewMath(1+rng.IntN(gridRows), 1+rng.IntN(gridCols))
	for cell := 0; cell < m.CellCount(); cell++ {
		items := docpos.TextItems(words[rng.IntN(len(words))])
		if depth > 1 && rng.IntN(4) == 0 {
			items = append(items, docpos.NodeItem(generateGrid(rng, depth-1)))
		}
		m.SetCell(cell, items...)
	}
	if rng.IntN(10) == 0 {
		m.SetActive(false)
	}
	return m
}

func benchForward(root docpos.Node) BenchResult {
	start := time.Now()
	ops := 0
	for p := docpos.Begin(root); !p.Empty(); p.Forward() {
		ops++
	}
	return BenchResult{Name: "Forward (whole document)", Duration: time.Since(start), Ops: ops}
}

func benchBackward(root docpos.Node) BenchResult {
	start := time.Now()
	ops := 0
	for p := docpos.Last(root); !p.Empty(); p.Backward() {
		ops++
	}
	return BenchResult{Name: "Backward (whole document)", Duration: time.Since(start), Ops: ops}
}

func benchForwardChar(root docpos.Node) BenchResult {
	start := time.Now()
	ops := 0
	for p := docpos.Begin(root); p.ForwardChar(); {
		ops++
	}
	return BenchResult{Name: "ForwardChar (whole document)", Duration: time.Since(start), Ops: ops}
}

func benchForwardPar(root docpos.Node) BenchResult {
	start := time.Now()
	ops := 0
	for p := docpos.Begin(root); p.ForwardPar(); {
		ops++
	}
	return BenchResult{Name: "ForwardPar (whole document)", Duration: time.Since(start), Ops: ops}
}

func benchWalker(root docpos.Node) BenchResult {
	start := time.Now()
	ops := 0
	for range docpos.Nodes(root) {
		ops++
	}
	return BenchResult{Name: "NodeWalker (all nodes)", Duration: time.Since(start), Ops: ops}
}

func benchStable(root docpos.Node) BenchResult {
	start := time.Now()
	ops, mismatches := 0, 0
	i := 0
	for p := docpos.Begin(root); !p.Empty(); p.Forward() {
		i++
		if i%97 != 0 {
			continue
		}
		q, res := p.Stable().Resolve(root)
		if res != docpos.Full || !q.Equal(p) {
			mismatches++
		}
		ops++
	}
	return BenchResult{
		Name:     "Snapshot + resolve (every 97th pos)",
		Duration: time.Since(start),
		Ops:      ops,
		Extra:    fmt.Sprintf("%d mismatches", mismatches),
	}
}

func benchStableText(root docpos.Node) BenchResult {
	var stables []docpos.StablePath
	i := 0
	for p := docpos.Begin(root); !p.Empty(); p.Forward() {
		i++
		if i%97 == 0 {
			stables = append(stables, p.Stable())
		}
	}

	start := time.Now()
	failures := 0
	for _, s := range stables {
		text, _ := s.MarshalText()
		var back docpos.StablePath
		if err := back.UnmarshalText(text); err != nil || !back.Equal(s) {
			failures++
		}
	}
	return BenchResult{
		Name:     "Text form round trip",
		Duration: time.Since(start),
		Ops:      len(stables),
		Extra:    fmt.Sprintf("%d failures", failures),
	}
}

func benchSearch(root docpos.Node) BenchResult {
	start := time.Now()
	hits := docpos.FindString(root, "NAÏVE", docpos.SearchOptions{})
	return BenchResult{
		Name:     "FindString (case-insensitive)",
		Duration: time.Since(start),
		Extra:    fmt.Sprintf("%d matches", len(hits)),
	}
}

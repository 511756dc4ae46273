package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/viniciusth/suffixkit"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// searcher answers occurrence queries against one built index.
type searcher func(pattern string) []int

type variant struct {
	name  string
	build func(text string, a suffixkit.Alphabet) (searcher, error)
}

var variants = map[string]variant{
	"array": {name: "array", build: func(text string, a suffixkit.Alphabet) (searcher, error) {
		sa, err := suffixkit.NewBuilder(text).Alphabet(a).BuildSuffixArray()
		if err != nil {
			return nil, err
		}
		return sa.BinarySearch, nil
	}},
	"array_no_rmq": {name: "array_no_rmq", build: func(text string, a suffixkit.Alphabet) (searcher, error) {
		sa, err := suffixkit.NewBuilder(text).Alphabet(a).SkipRMQ().BuildSuffixArray()
		if err != nil {
			return nil, err
		}
		return sa.BinarySearch, nil
	}},
	"tree": {name: "tree", build: func(text string, a suffixkit.Alphabet) (searcher, error) {
		st, err := suffixkit.NewBuilder(text).Alphabet(a).BuildSuffixTree()
		if err != nil {
			return nil, err
		}
		return st.SearchAll, nil
	}},
}

var (
	variantFlag = &cli.StringFlag{
		Name:  "variant",
		Usage: "Index to benchmark (" + strings.Join(variantNames(), ", ") + ")",
		Value: "array",
	}
	lengthFlag = &cli.IntFlag{
		Name:  "n",
		Usage: "Text length",
		Value: 1 << 20,
	}
	sigmaFlag = &cli.IntFlag{
		Name:  "sigma",
		Usage: "Alphabet size, starting at 'a'",
		Value: 26,
	}
	patternFlag = &cli.IntFlag{
		Name:  "p",
		Usage: "Pattern length",
		Value: 8,
	}
	queriesFlag = &cli.IntFlag{
		Name:  "q",
		Usage: "Number of queries",
		Value: 10000,
	}
	runsFlag = &cli.IntFlag{
		Name:  "runs",
		Usage: "Number of runs for averaging",
		Value: 3,
	}
	densityFlag = &cli.StringFlag{
		Name:  "d",
		Usage: "Density: low (random text) or high (periodic text)",
		Value: string(densityLow),
	}
	cpuProfileFlag = &cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "Write CPU profile to file",
	}
	humanFlag = &cli.BoolFlag{
		Name:  "human",
		Usage: "Print a readable summary instead of CSV rows",
	}
)

func variantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

type measurement struct {
	dur   time.Duration
	peak  uint64
	alloc uint64
}

func measureBuild(v variant, text string, a suffixkit.Alphabet) (measurement, searcher, error) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	search, err := v.build(text, a)
	dur := time.Since(start)
	peak := mm.Stop()
	if err != nil {
		return measurement{}, nil, err
	}
	runtime.GC()
	return measurement{dur, peak, getCurrentAlloc()}, search, nil
}

func measureQuery(search searcher, patterns []string) (measurement, int) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	hits := 0
	for _, p := range patterns {
		hits += len(search(p))
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	return measurement{dur, peak, getCurrentAlloc()}, hits
}

func genText(r *rand.Rand, n, sigma, period int, density densityType) string {
	text := make([]byte, n)
	if density == densityHigh {
		// a short random block repeated over the whole text
		block := make([]byte, period)
		for j := range block {
			block[j] = byte(r.Intn(sigma) + 'a')
		}
		for j := range text {
			text[j] = block[j%period]
		}
		return string(text)
	}
	for j := range text {
		text[j] = byte(r.Intn(sigma) + 'a')
	}
	return string(text)
}

type benchConfig struct {
	v       variant
	n       int
	sigma   int
	p       int
	q       int
	runs    int
	density densityType
	human   bool
}

func runBenchmark(cfg benchConfig) error {
	alphabet := suffixkit.Alphabet{Size: cfg.sigma, Base: 'a'}
	printer := message.NewPrinter(language.English)
	for run := 0; run < cfg.runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		text := genText(r, cfg.n, cfg.sigma, 2*cfg.p+1, cfg.density)

		build, search, err := measureBuild(cfg.v, text, alphabet)
		if err != nil {
			return err
		}
		patterns := make([]string, cfg.q)
		for i := range patterns {
			start := r.Intn(cfg.n - cfg.p + 1)
			patterns[i] = text[start : start+cfg.p]
		}
		query, hits := measureQuery(search, patterns)

		if cfg.human {
			printer.Printf("run %d: %s n=%d sigma=%d\n", run, cfg.v.name, cfg.n, cfg.sigma)
			printer.Printf("  build  %v, peak %d bytes, retained %d bytes\n", build.dur, build.peak, build.alloc)
			printer.Printf("  query  %v for %d patterns of length %d, %d hits\n", query.dur, cfg.q, cfg.p, hits)
			continue
		}
		fmt.Printf("%s,%d,%d,%d,%d,%s,%.0f,%d,%d,%.0f,%d,%d\n",
			cfg.v.name, cfg.n, cfg.sigma, cfg.p, cfg.q, cfg.density,
			float64(build.dur.Nanoseconds()), build.peak, build.alloc,
			float64(query.dur.Nanoseconds()), query.peak, query.alloc)
	}
	return nil
}

func bench(ctx *cli.Context) error {
	if path := ctx.String(cpuProfileFlag.Name); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	v, ok := variants[ctx.String(variantFlag.Name)]
	if !ok {
		return fmt.Errorf("invalid variant %q, available: %s", ctx.String(variantFlag.Name), strings.Join(variantNames(), ", "))
	}
	cfg := benchConfig{
		v:       v,
		n:       ctx.Int(lengthFlag.Name),
		sigma:   ctx.Int(sigmaFlag.Name),
		p:       ctx.Int(patternFlag.Name),
		q:       ctx.Int(queriesFlag.Name),
		runs:    ctx.Int(runsFlag.Name),
		density: densityType(ctx.String(densityFlag.Name)),
		human:   ctx.Bool(humanFlag.Name),
	}
	switch {
	case cfg.n <= 0 || cfg.p <= 0 || cfg.q <= 0 || cfg.runs <= 0:
		return errors.New("n, p, q and runs must be positive")
	case cfg.p > cfg.n:
		return errors.New("pattern length exceeds text length")
	case cfg.sigma < 1 || 'a'+cfg.sigma > 256:
		return fmt.Errorf("sigma %d does not fit a byte alphabet starting at 'a'", cfg.sigma)
	case cfg.density != densityLow && cfg.density != densityHigh:
		return fmt.Errorf("invalid density %q", cfg.density)
	}
	return runBenchmark(cfg)
}

func main() {
	app := &cli.App{
		Name:  "bench",
		Usage: "Measure construction and query cost of the suffix indexes",
		Flags: []cli.Flag{
			variantFlag,
			lengthFlag,
			sigmaFlag,
			patternFlag,
			queriesFlag,
			runsFlag,
			densityFlag,
			cpuProfileFlag,
			humanFlag,
		},
		Action: bench,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

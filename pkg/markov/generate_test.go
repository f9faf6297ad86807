package markov

import (
	"context"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	m := setupTestModel(t)

	expected1 := "one fish two fish."
	expected2 := "red fish blue fish!"
	for range 20 {
		output := m.Generate(WithSource(newTestSource()))
		if output != expected1 && output != expected2 {
			t.Fatalf("Generate() got = %q, want one of [%q, %q]", output, expected1, expected2)
		}
	}

	// With a fixed draw of 0 the first word of the empty context is chosen.
	if got := m.Generate(WithSource(&fixedSource{values: []int{0}})); got != expected1 {
		t.Errorf("Generate() with fixed source = %q, want %q", got, expected1)
	}
}

func TestGenerateQuoteEmptyModel(t *testing.T) {
	m, err := BuildModel(context.Background(), strings.NewReader("\n\n- only skipped\n"))
	if err != nil {
		t.Fatalf("BuildModel() failed: %v", err)
	}
	if got := GenerateQuote(m); got != "" {
		t.Errorf("GenerateQuote() on an empty model = %q, want empty string", got)
	}
}

func TestGenerateLengthCap(t *testing.T) {
	// Every context leads back to "a", so only the length cap can stop it.
	m, err := BuildModel(context.Background(), strings.NewReader("a a a a\n"))
	if err != nil {
		t.Fatalf("BuildModel() failed: %v", err)
	}

	testCases := []struct {
		name      string
		opts      []GenerateOption
		wantWords int
	}{
		{"default", nil, DefaultMaxLength + 1},
		{"max length 4", []GenerateOption{WithMaxLength(4)}, 5},
		{"max length 0", []GenerateOption{WithMaxLength(0)}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			words := m.GenerateWords(tc.opts...)
			if len(words) != tc.wantWords {
				t.Errorf("generated %d words, want %d", len(words), tc.wantWords)
			}
		})
	}
}

func TestGenerateTermination(t *testing.T) {
	corpus := strings.Join([]string{
		"The only thing we have to fear is fear itself.",
		"",
		"I think therefore I am.",
		"",
		"To be or not to be, that is the question?",
		"- Hamlet",
		"",
		"Fear is the mind killer and the mind is the question of fear",
		"and so it goes on and on and on",
	}, "\n")
	m, err := BuildModel(context.Background(), strings.NewReader(corpus), WithContextSize(1))
	if err != nil {
		t.Fatalf("BuildModel() failed: %v", err)
	}

	src := newTestSource()
	for i := range 500 {
		words := m.GenerateWords(WithSource(src))
		if len(words) > DefaultMaxLength+1 {
			t.Fatalf("run %d appended %d words, more than %d", i, len(words), DefaultMaxLength+1)
		}
		if len(words) == 0 {
			continue
		}
		last := words[len(words)-1]
		if !strings.ContainsAny(last, ".!?") && len(words) != DefaultMaxLength+1 {
			// The only other way out is a context never seen in training.
			c := m.NewContext()
			for _, w := range words {
				c.Push(w)
			}
			if _, ok := m.Lookup(c); ok {
				t.Fatalf("run %d stopped early on %q without a reason", i, strings.Join(words, " "))
			}
		}
	}
}

func TestGenerateStopChars(t *testing.T) {
	m, err := BuildModel(context.Background(), strings.NewReader("wait... what; then more\n"))
	if err != nil {
		t.Fatalf("BuildModel() failed: %v", err)
	}

	if got := m.Generate(); got != "wait..." {
		t.Errorf("Generate() = %q, want %q", got, "wait...")
	}
	if got := m.Generate(WithStopChars(";")); got != "wait... what;" {
		t.Errorf("Generate() with ';' = %q, want %q", got, "wait... what;")
	}
	if got := m.Generate(WithStopChars("")); got != "wait... what; then more" {
		t.Errorf("Generate() without stop chars = %q, want the full line", got)
	}
}

func TestGenerateSeparator(t *testing.T) {
	m, err := BuildModel(context.Background(), strings.NewReader("x y z.\n"), WithTokenizer(NewDefaultTokenizer(WithSeparator("-"))))
	if err != nil {
		t.Fatalf("BuildModel() failed: %v", err)
	}
	if got := m.Generate(); got != "x-y-z." {
		t.Errorf("Generate() = %q, want %q", got, "x-y-z.")
	}
}

func TestGenerateDoesNotMutateModel(t *testing.T) {
	m := setupTestModel(t)
	before := m.Stats()
	for range 50 {
		_ = m.Generate()
	}
	if after := m.Stats(); after != before {
		t.Errorf("generation changed the model: before %+v, after %+v", before, after)
	}
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()
	m, err := BuildModel(context.Background(), strings.NewReader(corpus))
	if err != nil {
		b.Fatalf("BuildModel() setup for benchmark failed: %v", err)
	}

	genOpts := map[string][]GenerateOption{
		"Default":   nil,
		"Seeded":    {WithSource(newTestSource())},
		"NoStop":    {WithStopChars("")},
		"MaxLength": {WithMaxLength(200), WithStopChars("")},
	}

	for name, opts := range genOpts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s := m.Generate(opts...)
				b.SetBytes(int64(len(s)))
			}
		})
	}
}

package ordercode

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^MK[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$`)
	g := New("MK", rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		code := g.Generate()
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match expected format", code)
		}
	}
}

func TestGenerateExcludesAmbiguousCharacters(t *testing.T) {
	g := New("", rand.New(rand.NewSource(2)))
	for i := 0; i < 500; i++ {
		code := g.Generate()
		if strings.ContainsAny(code, "01IO") {
			t.Fatalf("code %q contains an ambiguous character", code)
		}
	}
}

func TestGenerateDistribution(t *testing.T) {
	g := New("MK", rand.New(rand.NewSource(3)))
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		seen[g.Generate()] = struct{}{}
	}
	// 32^6 possibilities make collisions in 1000 draws vanishingly unlikely.
	if len(seen) != 1000 {
		t.Fatalf("expected 1000 distinct codes, got %d", len(seen))
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := New("MK", rand.New(rand.NewSource(7)))
	b := New("MK", rand.New(rand.NewSource(7)))
	for i := 0; i < 10; i++ {
		if ca, cb := a.Generate(), b.Generate(); ca != cb {
			t.Fatalf("same seed diverged: %q vs %q", ca, cb)
		}
	}
}

func TestGenerateNilSourceSeedsItself(t *testing.T) {
	g := New("MK", nil)
	if code := g.Generate(); len(code) != 8 {
		t.Fatalf("code %q has unexpected length", code)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := New("MK", rand.New(rand.NewSource(5)))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if len(g.Generate()) != 8 {
					t.Error("unexpected code length")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPrefix(t *testing.T) {
	g := New("MK", nil)
	if g.Prefix() != "MK" {
		t.Fatalf("prefix = %q, want MK", g.Prefix())
	}
}

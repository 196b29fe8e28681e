package agents

import "github.com/talgya/ascension/internal/knowledge"

// testDiscovery builds a discovery with the given name and tags.
func testDiscovery(name string, tags ...string) knowledge.Discovery {
	return knowledge.Discovery{Name: name, Effect: "test", Tags: tags}
}

// scriptedSource feeds predetermined values to the stochastic formulas.
// Each method pops from its own queue; an exhausted queue yields a
// neutral midpoint so unrelated rolls do not fail loudly mid-test.
type scriptedSource struct {
	floats []float64 // returned by Float64 in order
	ranges []float64 // returned by Range in order, as absolute values
	ints   []int     // returned by IntN in order
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Range(min, max float64) float64 {
	if len(s.ranges) == 0 {
		return (min + max) / 2
	}
	v := s.ranges[0]
	s.ranges = s.ranges[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

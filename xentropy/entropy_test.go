package xentropy

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntropy(t *testing.T) {
	t.Run("empty probability data", func(t *testing.T) {
		entropy := Entropy([]float64{}, WithBase(2), WithMode(ProbabilityBased))
		assert.Equal(t, 0.0, entropy)
	})

	t.Run("empty discrete data", func(t *testing.T) {
		entropy := Entropy(nil, WithBase(2), WithMode(DiscreteSample))
		assert.Equal(t, 0.0, entropy)
	})

	t.Run("certain event", func(t *testing.T) {
		for _, base := range []float64{2, math.E, 10, 16} {
			entropy := Entropy([]float64{1.0}, WithBase(base))
			assert.Equal(t, 0.0, entropy)
		}
	})

	t.Run("probability worked example", func(t *testing.T) {
		entropy := Entropy([]float64{0.2, 0.5, 0.3}, WithBase(2), WithMode(ProbabilityBased))
		assert.InDelta(t, 1.4854752972273344, entropy, 1e-12)
	})

	t.Run("default base is 10", func(t *testing.T) {
		data := []float64{0.2, 0.5, 0.3}
		assert.Equal(t, Entropy(data, WithBase(10)), Entropy(data))
		// H_10 = H_2 * log10(2)
		assert.InDelta(t, 1.4854752972273344*math.Log10(2), Entropy(data), 1e-12)
	})

	t.Run("zero probability contributes nothing", func(t *testing.T) {
		entropy := Entropy([]float64{0, 0.5, 0, 0.5}, WithBase(2))
		assert.False(t, math.IsNaN(entropy))
		assert.InDelta(t, 1.0, entropy, 1e-12)
	})

	t.Run("all zero probabilities", func(t *testing.T) {
		entropy := Entropy([]float64{0, 0, 0}, WithBase(2))
		assert.Equal(t, 0.0, entropy)
	})

	t.Run("discrete all identical", func(t *testing.T) {
		entropy := Entropy([]float64{5, 5, 5, 5}, WithMode(DiscreteSample))
		assert.Equal(t, 0.0, entropy)
	})

	t.Run("discrete uniform two symbols", func(t *testing.T) {
		entropy := Entropy([]float64{1, 2}, WithBase(2), WithMode(DiscreteSample))
		assert.InDelta(t, 1.0, entropy, 1e-12)
	})

	t.Run("discrete worked example", func(t *testing.T) {
		entropy := Entropy([]float64{1, 1, 2, 2, 3, 3, 3}, WithBase(2), WithMode(DiscreteSample))
		assert.InDelta(t, 1.5566567074628228, entropy, 1e-12)
	})

	t.Run("discrete order does not matter", func(t *testing.T) {
		a := Entropy([]float64{3, 1, 2, 3, 1, 3, 2}, WithBase(2), WithMode(DiscreteSample))
		b := Entropy([]float64{1, 1, 2, 2, 3, 3, 3}, WithBase(2), WithMode(DiscreteSample))
		assert.Equal(t, a, b)
	})

	t.Run("discrete NaN is one symbol", func(t *testing.T) {
		nan := math.NaN()
		entropy := Entropy([]float64{nan, nan, 1, 1}, WithBase(2), WithMode(DiscreteSample))
		assert.InDelta(t, 1.0, entropy, 1e-12)
	})

	t.Run("discrete signed zeros are one symbol", func(t *testing.T) {
		entropy := Entropy([]float64{math.Copysign(0, -1), 0}, WithBase(2), WithMode(DiscreteSample))
		assert.Equal(t, 0.0, entropy)
	})

	t.Run("malformed probabilities still return a number", func(t *testing.T) {
		entropy := Entropy([]float64{2, 3}, WithBase(2))
		assert.False(t, math.IsNaN(entropy))
		assert.Less(t, entropy, 0.0)
	})

	t.Run("idempotent", func(t *testing.T) {
		data := []float64{0.1, 0.2, 0.3, 0.15, 0.25}
		first := Entropy(data, WithBase(math.E))
		second := Entropy(data, WithBase(math.E))
		assert.Equal(t, math.Float64bits(first), math.Float64bits(second))
	})

	t.Run("input is not modified", func(t *testing.T) {
		data := []float64{3, 1, 2}
		Entropy(data, WithMode(DiscreteSample))
		assert.Equal(t, []float64{3, 1, 2}, data)
	})
}

func TestEntropyNonNegative(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		n := 1 + rng.IntN(32)
		probs := make([]float64, n)

		var total float64
		for j := range probs {
			probs[j] = 0.001 + rng.Float64()
			total += probs[j]
		}
		for j := range probs {
			probs[j] /= total
		}

		entropy := Entropy(probs, WithBase(2))
		assert.GreaterOrEqual(t, entropy, 0.0)
		assert.LessOrEqual(t, entropy, math.Log2(float64(n))+1e-9)
	}
}

func TestDistribution(t *testing.T) {
	t.Run("probability copy", func(t *testing.T) {
		data := []float64{0.25, 0.75}
		dist := Distribution(data, ProbabilityBased)
		assert.Equal(t, data, dist)

		dist[0] = 1
		assert.Equal(t, 0.25, data[0])
	})

	t.Run("discrete frequencies in ascending order", func(t *testing.T) {
		dist := Distribution([]float64{3, 1, 3, 3}, DiscreteSample)
		assert.Equal(t, []float64{0.25, 0.75}, dist)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Distribution(nil, DiscreteSample))
		assert.Nil(t, Distribution([]float64{}, ProbabilityBased))
	})
}

func TestNormalized(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		assert.Equal(t, 0.0, Normalized(nil))
	})

	t.Run("single symbol", func(t *testing.T) {
		assert.Equal(t, 0.0, Normalized([]float64{7, 7, 7}, WithMode(DiscreteSample)))
		assert.Equal(t, 0.0, Normalized([]float64{1, 0}))
	})

	t.Run("uniform discrete", func(t *testing.T) {
		norm := Normalized([]float64{1, 2, 3, 4, 1, 2, 3, 4}, WithMode(DiscreteSample))
		assert.InDelta(t, 1.0, norm, 1e-12)
	})

	t.Run("uniform probabilities ignore zeros", func(t *testing.T) {
		norm := Normalized([]float64{0.5, 0, 0.5})
		assert.InDelta(t, 1.0, norm, 1e-12)
	})

	t.Run("base independent", func(t *testing.T) {
		data := []float64{0.2, 0.5, 0.3}
		assert.InDelta(t, Normalized(data, WithBase(2)), Normalized(data, WithBase(10)), 1e-12)
	})

	t.Run("unbalanced", func(t *testing.T) {
		norm := Normalized([]float64{1, 1, 1, 1, 2}, WithMode(DiscreteSample))
		assert.Greater(t, norm, 0.0)
		assert.Less(t, norm, 1.0)
	})
}

func TestMinEntropy(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		assert.Equal(t, 0.0, MinEntropy(nil))
	})

	t.Run("certain event", func(t *testing.T) {
		entropy := MinEntropy([]float64{1}, WithBase(2))
		assert.Equal(t, 0.0, entropy)
		assert.False(t, math.Signbit(entropy))
	})

	t.Run("single discrete symbol is positive zero", func(t *testing.T) {
		entropy := MinEntropy([]float64{4, 4, 4}, WithMode(DiscreteSample))
		assert.False(t, math.Signbit(entropy))
	})

	t.Run("no positive mass", func(t *testing.T) {
		assert.Equal(t, 0.0, MinEntropy([]float64{0, 0}, WithBase(2)))
	})

	t.Run("discrete unbalanced", func(t *testing.T) {
		entropy := MinEntropy([]float64{1, 1, 1, 2}, WithBase(2), WithMode(DiscreteSample))
		assert.InDelta(t, -math.Log2(0.75), entropy, 1e-12)
	})

	t.Run("not above shannon", func(t *testing.T) {
		data := []float64{0.7, 0.2, 0.1}
		assert.LessOrEqual(t, MinEntropy(data, WithBase(2)), Entropy(data, WithBase(2)))
	})

	t.Run("equal to shannon for uniform", func(t *testing.T) {
		data := []float64{0.25, 0.25, 0.25, 0.25}
		assert.InDelta(t, Entropy(data, WithBase(2)), MinEntropy(data, WithBase(2)), 1e-12)
	})
}

func BenchmarkEntropy(b *testing.B) {
	probs := make([]float64, 256)
	for i := range probs {
		probs[i] = 1.0 / 256
	}

	samples := make([]float64, 4096)
	for i := range samples {
		samples[i] = float64(i % 64)
	}

	b.Run("ProbabilityBased_256", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			Entropy(probs, WithBase(2))
		}
	})

	b.Run("DiscreteSample_4K", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			Entropy(samples, WithBase(2), WithMode(DiscreteSample))
		}
	})
}

func FuzzEntropyDiscrete(f *testing.F) {
	f.Add([]byte("hello world"))
	f.Add([]byte("aaaaaaa"))
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x01, 0x02})

	f.Fuzz(func(t *testing.T, data []byte) {
		entropy := Entropy(FromSlice(data), WithBase(2), WithMode(DiscreteSample))
		if entropy < 0 || entropy > 8+1e-9 {
			t.Errorf("entropy should be between 0 and 8 bits, got %f", entropy)
		}
	})
}

package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Column letters and their number ranges: B 1-15, I 16-30, N 31-45,
// G 46-60, O 61-75.
var columns = []struct {
	letter string
	low    int
}{
	{"B", 1},
	{"I", 16},
	{"N", 31},
	{"G", 46},
	{"O", 61},
}

// GeneratePool returns the full 75-label set in column order.
func GeneratePool() []string {
	labels := make([]string, 0, 75)
	for _, col := range columns {
		for n := col.low; n < col.low+15; n++ {
			labels = append(labels, fmt.Sprintf("%s%d", col.letter, n))
		}
	}
	return labels
}

// ShufflePool returns a uniform permutation of labels. Fisher–Yates,
// scanning from the end.
func ShufflePool(labels []string, r *rand.Rand) []string {
	out := append([]string(nil), labels...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewDrawOrder builds a freshly shuffled draw order for one round.
func NewDrawOrder() []string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ShufflePool(GeneratePool(), r)
}

/*
Package palette holds the colors shared by every chart of the dashboard
and the ordinal scale that assigns them to entities.
*/
package palette

import "sync"

// Fixed colors of the line charts.
const (
	National   = "#333"
	Peripheral = "#111"
	Grey       = "#d2d3d4"
)

// Group is the color group assigned to the highlighted series.
var Group = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Ordinal assigns the colors of a range to keys, in the order the keys
// are in the domain, starting over when there are more keys than
// colors. Keys not in the domain are appended to it the first time they
// are asked for. It is safe for concurrent use.
type Ordinal struct {
	mu     sync.Mutex
	colors []string
	index  map[string]int
}

// NewOrdinal returns an ordinal scale with the given domain and range.
// An empty range uses Group.
func NewOrdinal(domain []string, colors []string) *Ordinal {
	if len(colors) == 0 {
		colors = Group
	}

	o := &Ordinal{
		colors: colors,
		index:  make(map[string]int, len(domain)),
	}

	for _, key := range domain {
		o.add(key)
	}

	return o
}

func (o *Ordinal) add(key string) int {
	if i, ok := o.index[key]; ok {
		return i
	}

	i := len(o.index)
	o.index[key] = i

	return i
}

// Color returns the color of the key.
func (o *Ordinal) Color(key string) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.colors[o.add(key)%len(o.colors)]
}

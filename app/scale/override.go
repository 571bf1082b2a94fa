package scale

// TickStyle says how the value axis ticks are labelled.
type TickStyle int

const (
	// PlainTicks shows the value with the decimals its step needs.
	PlainTicks TickStyle = iota
	// SuffixTicks appends a percent sign to the value.
	SuffixTicks
	// FractionTicks shows fractions as percentages: 0.3 is "30%".
	FractionTicks
)

// Override adjusts how a metric is scaled and shown, for metrics whose
// data do not fit the general rules.
type Override struct {
	// Domain, if not nil, replaces the extent of the data.
	Domain *[2]float64
	// Clamp keeps mapped values inside the range.
	Clamp bool
	// Multiplier is applied to values shown in tooltips. Zero means 1.
	Multiplier float64
	// Ticks replaces the tick style of percentage charts.
	Ticks TickStyle
}

// Key identifies the metric of a dataset an override applies to. An
// empty Dataset matches every dataset.
type Key struct {
	Dataset string
	Column  string
}

type Overrides map[Key]Override

// Lookup returns the override for the column of the dataset, looking
// first for one specific to the dataset and then for one that applies
// to any dataset.
func (o Overrides) Lookup(dataset, column string) (Override, bool) {
	if ov, ok := o[Key{Dataset: dataset, Column: column}]; ok {
		return ov, true
	}

	ov, ok := o[Key{Column: column}]

	return ov, ok
}

// TestPositivity is the override for test positivity rates, which are
// published as fractions in [0, 1] while the other percentages are in
// [0, 100].
var TestPositivity = Override{
	Domain:     &[2]float64{0, 1},
	Clamp:      true,
	Multiplier: 100,
	Ticks:      FractionTicks,
}

// DefaultOverrides returns the overrides known for the dashboard
// datasets.
func DefaultOverrides() Overrides {
	return Overrides{
		{Dataset: "mexico", Column: "testpositivity_rate"}: TestPositivity,
		{Dataset: "latam", Column: "testpositivity_rate"}:  TestPositivity,
	}
}

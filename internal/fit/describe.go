package fit

import "fitlab/domain/playground"

const (
	textUnderfit = "**Underfitting.** A straight line is too simple for this data. " +
		"It cannot bend to follow the curve, so it misses the pattern on the training points " +
		"and will miss it on new data too."

	textGoodFit = "**Good fit.** The model is flexible enough to follow the underlying curve " +
		"without chasing much of the noise, so it should generalise well to new data."

	textOverfit = "**Overfitting.** The model has enough freedom to chase the noise in the training data. " +
		"It hugs the training points, but the extra wiggles are artefacts of this particular sample " +
		"and will not carry over to new data."

	textL1 = "**L1 (Lasso) regularization.** The penalty grows with the absolute size of the coefficients, " +
		"so small wiggles are pushed all the way to zero and the curve becomes sparser and smoother."

	textL2 = "**L2 (Ridge) regularization.** The penalty grows with the squared size of the coefficients, " +
		"so every wiggle is shrunk toward zero but none is removed entirely."

	noteModerate = " At this moderate complexity the penalty only trims small deviations, " +
		"and the fit stays close to the true curve."

	noteHigh = " At this high complexity the penalty is doing the heavy lifting, " +
		"holding back a model that would otherwise overfit."
)

type band int

const (
	bandLinear   band = iota // complexity <= 1
	bandModerate             // 2..5
	bandHigh                 // > 5
)

func complexityBand(complexity int) band {
	switch {
	case complexity <= 1:
		return bandLinear
	case complexity <= 5:
		return bandModerate
	default:
		return bandHigh
	}
}

type descKey struct {
	band     band
	kind     playground.PenaltyKind
	inactive bool // strength == 0
}

type descEntry struct {
	regime playground.Regime
	text   string
}

var (
	underfit = descEntry{playground.RegimeUnderfit, textUnderfit}
	goodFit  = descEntry{playground.RegimeGoodFit, textGoodFit}
	overfit  = descEntry{playground.RegimeOverfit, textOverfit}
)

// descriptionTable is the complete decision table. A selected penalty with
// zero strength reads as overfitting at every complexity above 1, including
// the moderate band where no penalty at all reads as a good fit.
var descriptionTable = map[descKey]descEntry{
	{bandLinear, playground.KindNone, true}: underfit,
	{bandLinear, playground.KindL1, true}:   underfit,
	{bandLinear, playground.KindL1, false}:  underfit,
	{bandLinear, playground.KindL2, true}:   underfit,
	{bandLinear, playground.KindL2, false}:  underfit,

	{bandModerate, playground.KindNone, true}: goodFit,
	{bandModerate, playground.KindL1, true}:   overfit,
	{bandModerate, playground.KindL1, false}:  {playground.RegimeRegularizedL1, textL1 + noteModerate},
	{bandModerate, playground.KindL2, true}:   overfit,
	{bandModerate, playground.KindL2, false}:  {playground.RegimeRegularizedL2, textL2 + noteModerate},

	{bandHigh, playground.KindNone, true}: overfit,
	{bandHigh, playground.KindL1, true}:   overfit,
	{bandHigh, playground.KindL1, false}:  {playground.RegimeRegularizedL1, textL1 + noteHigh},
	{bandHigh, playground.KindL2, true}:   overfit,
	{bandHigh, playground.KindL2, false}:  {playground.RegimeRegularizedL2, textL2 + noteHigh},
}

func describe(complexity int, p playground.Penalty) (playground.Regime, string) {
	key := descKey{
		band:     complexityBand(complexity),
		kind:     p.Kind(),
		inactive: p.Strength() == 0,
	}
	entry, ok := descriptionTable[key]
	if !ok {
		entry = overfit
	}
	return entry.regime, entry.text
}

// Describe exposes the decision table without building a model
func Describe(complexity int, p playground.Penalty) (playground.Regime, string) {
	if p == nil {
		p = playground.NoPenalty{}
	}
	return describe(complexity, p)
}

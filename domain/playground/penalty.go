package playground

import (
	"math"
	"strings"

	"fitlab/internal/errors"
)

// PenaltyKind names a regularization style
type PenaltyKind string

const (
	KindNone PenaltyKind = "none"
	KindL1   PenaltyKind = "l1"
	KindL2   PenaltyKind = "l2"
)

// Penalty is the regularization applied to the wiggle term. The set of
// implementations is closed: NoPenalty, Lasso and Ridge.
type Penalty interface {
	Kind() PenaltyKind
	Strength() float64
	Shrink(wiggle float64) float64
	isPenalty()
}

// NoPenalty leaves the wiggle untouched
type NoPenalty struct{}

func (NoPenalty) Kind() PenaltyKind        { return KindNone }
func (NoPenalty) Strength() float64        { return 0 }
func (NoPenalty) Shrink(w float64) float64 { return w }
func (NoPenalty) isPenalty()               {}

// Lasso soft-thresholds the wiggle, zeroing contributions smaller than
// strength*0.05.
type Lasso struct{ S float64 }

func (Lasso) Kind() PenaltyKind   { return KindL1 }
func (l Lasso) Strength() float64 { return l.S }
func (Lasso) isPenalty()          {}

func (l Lasso) Shrink(w float64) float64 {
	mag := math.Max(0, math.Abs(w)-l.S*0.05)
	return math.Copysign(mag, w)
}

// Ridge scales the wiggle by 1/(1+strength*0.5); it never reaches zero.
type Ridge struct{ S float64 }

func (Ridge) Kind() PenaltyKind   { return KindL2 }
func (r Ridge) Strength() float64 { return r.S }
func (Ridge) isPenalty()          {}

func (r Ridge) Shrink(w float64) float64 {
	return w / (1 + r.S*0.5)
}

// ParsePenaltyKind accepts "none", "l1" or "l2" in any case
func ParsePenaltyKind(kind string) (PenaltyKind, error) {
	switch k := PenaltyKind(strings.ToLower(strings.TrimSpace(kind))); k {
	case KindNone, KindL1, KindL2:
		return k, nil
	default:
		return "", errors.InvalidInput("unknown regularization kind " + strings.TrimSpace(kind))
	}
}

// NewPenalty builds the variant for kind. Strength is ignored for KindNone.
func NewPenalty(kind PenaltyKind, strength float64) (Penalty, error) {
	if kind == KindNone {
		return NoPenalty{}, nil
	}
	if math.IsNaN(strength) || strength < 0 {
		return nil, errors.InvalidInput("regularization strength must be >= 0")
	}
	switch kind {
	case KindL1:
		return Lasso{S: strength}, nil
	case KindL2:
		return Ridge{S: strength}, nil
	}
	return nil, errors.InvalidInput("unknown regularization kind " + string(kind))
}

// ParsePenalty combines ParsePenaltyKind and NewPenalty
func ParsePenalty(kind string, strength float64) (Penalty, error) {
	k, err := ParsePenaltyKind(kind)
	if err != nil {
		return nil, err
	}
	return NewPenalty(k, strength)
}

package timeline

// Stage is the coarse lifecycle phase of the crop on a given day.
type Stage string

const (
	Seedling     Stage = "SEEDLING"
	Vegetative   Stage = "VEGETATIVE"
	Reproductive Stage = "REPRODUCTIVE"
	Mature       Stage = "MATURE"
)

// Stages lists the phases in lifecycle order.
var Stages = []Stage{Seedling, Vegetative, Reproductive, Mature}

// Stage thresholds over the growth factor.
const (
	VegetativeThreshold   = 0.2
	ReproductiveThreshold = 0.6
	MatureThreshold       = 0.9
)

// Classifier maps a growth factor to a stage. It must be pure: the
// controller reclassifies every affected day after each intervention.
type Classifier func(growthFactor float64) Stage

// Classify is the default Classifier. There is no hysteresis; a day moves
// back to an earlier stage if its growth factor drops.
func Classify(growthFactor float64) Stage {
	switch {
	case growthFactor >= MatureThreshold:
		return Mature
	case growthFactor >= ReproductiveThreshold:
		return Reproductive
	case growthFactor >= VegetativeThreshold:
		return Vegetative
	default:
		return Seedling
	}
}

// Rank returns the position of s in lifecycle order, or -1.
func (s Stage) Rank() int {
	for i, x := range Stages {
		if x == s {
			return i
		}
	}
	return -1
}

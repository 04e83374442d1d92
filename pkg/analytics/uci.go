package analytics

// UCI categories.
const (
	UCIHors   = "HC"
	UCIFirst  = "1"
	UCISecond = "2"
	UCIThird  = "3"
	UCIFourth = "4"
)

// uciRule is one step of the category lookup. Rules are evaluated in order
// and the first match wins; they overlap, so the order is significant.
type uciRule struct {
	minLengthKm float64
	minGradient float64
	category    string
	description string
}

var uciRules = []uciRule{
	{15, 7, UCIHors, "Hors catégorie : ascension d'exception, longue et très raide"},
	{10, 6, UCIFirst, "Première catégorie : ascension longue et difficile"},
	{5, 5, UCISecond, "Deuxième catégorie : ascension exigeante"},
	{3, 4, UCIThird, "Troisième catégorie : ascension modérée"},
}

var uciFallback = UCIResult{Category: UCIFourth, Description: "Quatrième catégorie : ascension courte ou peu pentue"}

// UCICategory classifies a climb from its length in km and average gradient
// in percent. Both bounds of each rule are strict.
func UCICategory(lengthKm, avgGradient float64) UCIResult {
	for _, r := range uciRules {
		if lengthKm > r.minLengthKm && avgGradient > r.minGradient {
			return UCIResult{Category: r.category, Description: r.description}
		}
	}
	return uciFallback
}

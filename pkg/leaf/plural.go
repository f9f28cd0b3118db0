package leaf

// PluralRule maps the path of a collection to the path its elements are
// bound to inside a loop. An empty result means the collection has no
// singular form.
type PluralRule func(plural string) (singular string)

// TrimLastRune drops the final character: "simpleDatas" becomes
// "simpleData". It is the default rule and knows nothing about English.
func TrimLastRune(plural string) string {
	runes := []rune(plural)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

// Pairs is a rule that only accepts the declared plural to singular pairs.
func Pairs(pairs map[string]string) PluralRule {
	declared := make(map[string]string, len(pairs))
	for plural, singular := range pairs {
		declared[plural] = singular
	}
	return func(plural string) string {
		return declared[plural]
	}
}

// PairsOr consults the declared pairs first and falls back to rule.
func PairsOr(pairs map[string]string, rule PluralRule) PluralRule {
	strict := Pairs(pairs)
	return func(plural string) string {
		if singular := strict(plural); singular != "" {
			return singular
		}
		return rule(plural)
	}
}

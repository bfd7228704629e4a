package classify

// DomainPhrase maps a tag to the human-readable phrase used in facts and
// industry anchors. Order is the emission order for domain facts.
type DomainPhrase struct {
	Tag    string
	Phrase string
}

// DefaultDomainPhrases returns the built-in tag-to-phrase table
func DefaultDomainPhrases() []DomainPhrase {
	return []DomainPhrase{
		{TagCV, "computer vision"},
		{TagAnalytics, "analytics"},
		{TagProduct, "product"},
		{TagFinance, "finance"},
		{TagCommunity, "community"},
	}
}

// PhraseFor returns the phrase for a tag, falling back to the raw tag
func PhraseFor(tag string, table []DomainPhrase) string {
	for _, entry := range table {
		if entry.Tag == tag {
			return entry.Phrase
		}
	}
	return tag
}

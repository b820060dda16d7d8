package ethqr

// ExtensionFields holds the optional templates emitted after the
// transaction context (tags 81-85).
type ExtensionFields struct {
	DiscountsLoyalty    string `json:"discounts_loyalty,omitempty" yaml:"discounts_loyalty,omitempty"`
	OfflineToOnline     string `json:"offline_to_online,omitempty" yaml:"offline_to_online,omitempty"`
	Ecommerce           string `json:"ecommerce,omitempty" yaml:"ecommerce,omitempty"`
	EndToEndID          string `json:"end_to_end_id,omitempty" yaml:"end_to_end_id,omitempty"`
	TransactionTypeCode string `json:"transaction_type_code,omitempty" yaml:"transaction_type_code,omitempty"`
}

func (ef *ExtensionFields) tags() []Tag {
	if ef == nil {
		return nil
	}
	var tags []Tag
	for _, t := range [...]Tag{
		{TagDiscountsLoyalty, ef.DiscountsLoyalty},
		{TagOfflineToOnline, ef.OfflineToOnline},
		{TagEcommerce, ef.Ecommerce},
		{TagEndToEndID, ef.EndToEndID},
		{TagTransactionTypeCode, ef.TransactionTypeCode},
	} {
		if t.Value != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ConvenienceFeeKind selects the tip or convenience fee indicator (tag 55).
type ConvenienceFeeKind int

const (
	ConvenienceNone ConvenienceFeeKind = iota
	// ConveniencePrompt asks the consumer to enter a tip.
	ConveniencePrompt
	// ConvenienceFixed adds a fixed fee carried in tag 56.
	ConvenienceFixed
	// ConveniencePercentage adds a percentage fee carried in tag 57.
	ConveniencePercentage
)

var convenienceNames = map[ConvenienceFeeKind]string{
	ConvenienceNone:       "none",
	ConveniencePrompt:     "prompt",
	ConvenienceFixed:      "fixed",
	ConveniencePercentage: "percentage",
}

func (k ConvenienceFeeKind) String() string {
	return convenienceNames[k]
}

// ParseConvenienceFeeKind is the inverse of String.
func ParseConvenienceFeeKind(s string) (ConvenienceFeeKind, bool) {
	for k, name := range convenienceNames {
		if name == s {
			return k, true
		}
	}
	return ConvenienceNone, false
}

// ConvenienceFee is the tip or convenience fee configuration.
type ConvenienceFee struct {
	Kind  ConvenienceFeeKind
	Value string
}

func PromptForTip() *ConvenienceFee {
	return &ConvenienceFee{Kind: ConveniencePrompt}
}

func FixedFee(amount string) *ConvenienceFee {
	return &ConvenienceFee{Kind: ConvenienceFixed, Value: amount}
}

func PercentageFee(percentage string) *ConvenienceFee {
	return &ConvenienceFee{Kind: ConveniencePercentage, Value: percentage}
}

func (cf *ConvenienceFee) validate() error {
	if cf == nil {
		return nil
	}
	switch cf.Kind {
	case ConvenienceNone, ConveniencePrompt:
		return nil
	case ConvenienceFixed:
		if cf.Value == "" {
			return missing(tagName(TagConvenienceFeeFixed))
		}
	case ConveniencePercentage:
		if cf.Value == "" {
			return missing(tagName(TagConvenienceFeePercent))
		}
	default:
		return invalid(tagName(TagTipIndicator), cf.Kind.String())
	}
	return nil
}

func (cf *ConvenienceFee) tags() []Tag {
	if cf == nil {
		return nil
	}
	switch cf.Kind {
	case ConveniencePrompt:
		return []Tag{{TagTipIndicator, "01"}}
	case ConvenienceFixed:
		return []Tag{{TagTipIndicator, "02"}, {TagConvenienceFeeFixed, cf.Value}}
	case ConveniencePercentage:
		return []Tag{{TagTipIndicator, "03"}, {TagConvenienceFeePercent, cf.Value}}
	}
	return nil
}

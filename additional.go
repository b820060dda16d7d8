package ethqr

// AdditionalData is the tag 62 template. Empty fields are absent.
type AdditionalData struct {
	BillNumber             string `json:"bill_number,omitempty" yaml:"bill_number,omitempty"`
	MobileNumber           string `json:"mobile_number,omitempty" yaml:"mobile_number,omitempty"`
	StoreLabel             string `json:"store_label,omitempty" yaml:"store_label,omitempty"`
	LoyaltyNumber          string `json:"loyalty_number,omitempty" yaml:"loyalty_number,omitempty"`
	ReferenceLabel         string `json:"reference_label,omitempty" yaml:"reference_label,omitempty"`
	CustomerLabel          string `json:"customer_label,omitempty" yaml:"customer_label,omitempty"`
	TerminalNumber         string `json:"terminal_number,omitempty" yaml:"terminal_number,omitempty"`
	Purpose                string `json:"purpose,omitempty" yaml:"purpose,omitempty"`
	AdditionalCustomerData string `json:"additional_customer_data,omitempty" yaml:"additional_customer_data,omitempty"`
	MerchantTaxID          string `json:"merchant_tax_id,omitempty" yaml:"merchant_tax_id,omitempty"`
	MerchantChannel        string `json:"merchant_channel,omitempty" yaml:"merchant_channel,omitempty"`
	DueDate                string `json:"due_date,omitempty" yaml:"due_date,omitempty"` // DDMMYYYY
	AmountAfterDueDate     string `json:"amount_after_due_date,omitempty" yaml:"amount_after_due_date,omitempty"`
}

type subField struct {
	id    string
	name  string
	value string
}

// fields lists the sub-fields in emission order.
func (ad *AdditionalData) fields() [13]subField {
	return [13]subField{
		{"01", "bill_number", ad.BillNumber},
		{"02", "mobile_number", ad.MobileNumber},
		{"03", "store_label", ad.StoreLabel},
		{"04", "loyalty_number", ad.LoyaltyNumber},
		{"05", "reference_label", ad.ReferenceLabel},
		{"06", "customer_label", ad.CustomerLabel},
		{"07", "terminal_number", ad.TerminalNumber},
		{"08", "purpose", ad.Purpose},
		{"09", "additional_customer_data", ad.AdditionalCustomerData},
		{"10", "merchant_tax_id", ad.MerchantTaxID},
		{"11", "merchant_channel", ad.MerchantChannel},
		{"50", "due_date", ad.DueDate},
		{"51", "amount_after_due_date", ad.AmountAfterDueDate},
	}
}

// IsEmpty reports whether no sub-field is set.
func (ad *AdditionalData) IsEmpty() bool {
	if ad == nil {
		return true
	}
	for _, f := range ad.fields() {
		if f.value != "" {
			return false
		}
	}
	return true
}

// Validate rejects sub-fields whose length cannot be expressed in the
// two-digit length field.
func (ad *AdditionalData) Validate() error {
	if ad == nil {
		return nil
	}
	for _, f := range ad.fields() {
		if len(f.value) > MaxTagValueLen {
			return tooLong("additional_data."+f.name, len(f.value), MaxTagValueLen)
		}
	}
	return nil
}

// Encode returns the tag 62 template built from the set sub-fields, or false
// when there is nothing to emit.
func (ad *AdditionalData) Encode() (Tag, bool) {
	if ad.IsEmpty() {
		return Tag{}, false
	}
	value, _ := withPayloadBuf(func(buf []byte) ([]byte, error) {
		for _, f := range ad.fields() {
			if f.value != "" {
				buf = NewTag(f.id, f.value).appendTo(buf)
			}
		}
		return buf, nil
	})
	return NewTag(TagAdditionalData, value), true
}

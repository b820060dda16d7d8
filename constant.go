package ethqr

// TagNames maps top-level tag IDs to the field names used in errors and logs.
var TagNames = map[string]string{
	TagPayloadFormatIndicator: "payload_format_indicator",
	TagPointOfInitiation:      "point_of_initiation",
	TagVisa:                   "visa",
	TagMastercard:             "mastercard",
	TagUnionPay:               "unionpay",
	TagInterbank:              "interbank",
	TagMerchantCategoryCode:   "category_code",
	TagTransactionCurrency:    "currency",
	TagTransactionAmount:      "amount",
	TagTipIndicator:           "tip_indicator",
	TagConvenienceFeeFixed:    "convenience_fee_fixed",
	TagConvenienceFeePercent:  "convenience_fee_percentage",
	TagCountryCode:            "country_code",
	TagMerchantName:           "name",
	TagMerchantCity:           "city",
	TagAdditionalData:         "additional_data",
	TagCRC:                    "crc",
	TagTransactionContext:     "transaction_context",
	TagDiscountsLoyalty:       "discounts_loyalty",
	TagOfflineToOnline:        "offline_to_online",
	TagEcommerce:              "ecommerce",
	TagEndToEndID:             "end_to_end_id",
	TagTransactionTypeCode:    "transaction_type_code",
}

// tagName falls back to the raw ID for tags without a registered name.
func tagName(id string) string {
	if name, ok := TagNames[id]; ok {
		return name
	}
	return "tag_" + id
}

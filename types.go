package ethqr

// Mode is the point-of-initiation method of a payload.
type Mode int

const (
	ModeStatic Mode = iota
	ModeDynamic
)

func (m Mode) String() string {
	if m == ModeDynamic {
		return "dynamic"
	}
	return "static"
}

// Indicator returns the tag 01 value for the mode.
func (m Mode) Indicator() string {
	if m == ModeDynamic {
		return DynamicPOI
	}
	return StaticPOI
}

// Top-level tag identifiers.
const (
	TagPayloadFormatIndicator = "00"
	TagPointOfInitiation      = "01"
	TagVisa                   = "02"
	TagMastercard             = "04"
	TagUnionPay               = "15"
	TagInterbank              = "28"
	TagMerchantCategoryCode   = "52"
	TagTransactionCurrency    = "53"
	TagTransactionAmount      = "54"
	TagTipIndicator           = "55"
	TagConvenienceFeeFixed    = "56"
	TagConvenienceFeePercent  = "57"
	TagCountryCode            = "58"
	TagMerchantName           = "59"
	TagMerchantCity           = "60"
	TagAdditionalData         = "62"
	TagCRC                    = "63"
	TagTransactionContext     = "80"
	TagDiscountsLoyalty       = "81"
	TagOfflineToOnline        = "82"
	TagEcommerce              = "83"
	TagEndToEndID             = "84"
	TagTransactionTypeCode    = "85"
)

// Fixed values of the Ethiopian profile.
const (
	PayloadFormatIndicator = "01"
	StaticPOI              = "11"
	DynamicPOI             = "12"
	CurrencyETB            = "230"
	CountryEthiopia        = "ET"

	MaxPayloadLength    = 512
	MaxMerchantNameLen  = 25
	MaxMerchantCityLen  = 15
	MaxTagValueLen      = 99
	CategoryCodeLen     = 4
	InterbankGUIDLen    = 32
	MaxInterbankAccount = 24

	// crcHeader is tag 63 with its fixed length 04.
	crcHeader = TagCRC + "04"
)

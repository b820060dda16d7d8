package ethqr

import (
	"go.uber.org/zap/zapcore"
)

// MarshalLogObject implements zapcore.ObjectMarshaler. Account references
// are masked to their last four characters.
func (c *Config) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("merchant_name", c.MerchantName)
	enc.AddString("merchant_city", c.MerchantCity)
	enc.AddString("category_code", c.CategoryCode)
	enc.AddString("mode", c.Mode().String())
	if c.Amount != "" {
		enc.AddString("amount", c.Amount)
	}
	if c.TransactionContext != "" {
		enc.AddString("transaction_context", c.TransactionContext)
	}
	if c.ConvenienceFee != nil {
		enc.AddString("convenience_fee", c.ConvenienceFee.Kind.String())
	}
	enc.AddBool("additional_data", !c.AdditionalData.IsEmpty())
	return enc.AddArray("schemes", schemeArray(c.Schemes))
}

type schemeArray []Scheme

func (sa schemeArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, s := range sa {
		enc.AppendString(schemeLabel(s))
	}
	return nil
}

func schemeLabel(s Scheme) string {
	switch v := s.(type) {
	case Visa:
		return "visa:" + mask(v.AccountInfo)
	case Mastercard:
		return "mastercard:" + mask(v.AccountInfo)
	case UnionPay:
		return "unionpay:" + mask(v.AccountInfo)
	case Interbank:
		return "interbank:" + v.BIC + ":" + mask(v.Account)
	case *Visa:
		if v != nil {
			return schemeLabel(*v)
		}
	case *Mastercard:
		if v != nil {
			return schemeLabel(*v)
		}
	case *UnionPay:
		if v != nil {
			return schemeLabel(*v)
		}
	case *Interbank:
		if v != nil {
			return schemeLabel(*v)
		}
	}
	return "<unsupported>"
}

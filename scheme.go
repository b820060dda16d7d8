package ethqr

import (
	"strings"

	"github.com/google/uuid"
)

// Scheme is a merchant account reference for one payment rail. The set of
// implementations is closed: Visa, Mastercard, UnionPay and Interbank.
type Scheme interface {
	// TagID returns the merchant account information tag of the scheme.
	TagID() string
	scheme()
}

// Visa carries card-network account information under tag 02.
type Visa struct {
	AccountInfo string
}

// Mastercard carries card-network account information under tag 04.
type Mastercard struct {
	AccountInfo string
}

// UnionPay carries card-network account information under tag 15.
type UnionPay struct {
	AccountInfo string
}

// Interbank is the domestic account-routing scheme (tag 28). GUID is the
// scheme identifier without hyphens, BIC the bank code, Account the
// beneficiary account number.
type Interbank struct {
	GUID    string
	BIC     string
	Account string
}

func (Visa) TagID() string       { return TagVisa }
func (Mastercard) TagID() string { return TagMastercard }
func (UnionPay) TagID() string   { return TagUnionPay }
func (Interbank) TagID() string  { return TagInterbank }

func (Visa) scheme()       {}
func (Mastercard) scheme() {}
func (UnionPay) scheme()   {}
func (Interbank) scheme()  {}

func NewVisa(accountInfo string) Visa {
	return Visa{AccountInfo: accountInfo}
}

func NewMastercard(accountInfo string) Mastercard {
	return Mastercard{AccountInfo: accountInfo}
}

func NewUnionPay(accountInfo string) UnionPay {
	return UnionPay{AccountInfo: accountInfo}
}

func NewInterbank(guid, bic, account string) Interbank {
	return Interbank{GUID: guid, BIC: bic, Account: account}
}

// NewInterbankFromUUID uses the 32-digit hex form of id as the scheme GUID.
func NewInterbankFromUUID(id uuid.UUID, bic, account string) Interbank {
	return Interbank{GUID: GUIDFromUUID(id), BIC: bic, Account: account}
}

// GUIDFromUUID renders id without hyphens.
func GUIDFromUUID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}

// NormalizeGUID accepts a GUID either as 32 alphanumerics or as any UUID
// form understood by uuid.Parse (hyphenated, braced, urn:uuid:) and returns
// the 32-character form in the caller's letter case. Anything else is
// returned unchanged so that EncodeScheme reports it.
func NormalizeGUID(s string) string {
	if len(s) == InterbankGUIDLen {
		return s
	}
	if _, err := uuid.Parse(s); err != nil {
		return s
	}
	hex := s
	switch len(s) {
	case 36 + 9: // urn:uuid:
		hex = s[9:]
	case 36 + 2: // {...}
		hex = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(hex, "-", "")
}

// Validate checks the interbank sub-fields.
func (ib Interbank) Validate() error {
	if len(ib.GUID) != InterbankGUIDLen || !isASCIIAlnum(ib.GUID) {
		return invalid("guid", ib.GUID)
	}
	if len(ib.BIC) != 8 && len(ib.BIC) != 11 {
		return invalid("bic", ib.BIC)
	}
	if len(ib.Account) > MaxInterbankAccount {
		return invalid("account", ib.Account)
	}
	return nil
}

// EncodeScheme returns the merchant account information tag for s.
func EncodeScheme(s Scheme) (Tag, error) {
	switch v := s.(type) {
	case Visa:
		return NewTag(TagVisa, v.AccountInfo), nil
	case *Visa:
		if v == nil {
			return Tag{}, ErrUnsupportedScheme
		}
		return EncodeScheme(*v)
	case Mastercard:
		return NewTag(TagMastercard, v.AccountInfo), nil
	case *Mastercard:
		if v == nil {
			return Tag{}, ErrUnsupportedScheme
		}
		return EncodeScheme(*v)
	case UnionPay:
		return NewTag(TagUnionPay, v.AccountInfo), nil
	case *UnionPay:
		if v == nil {
			return Tag{}, ErrUnsupportedScheme
		}
		return EncodeScheme(*v)
	case Interbank:
		if err := v.Validate(); err != nil {
			return Tag{}, err
		}
		value, err := PackTags([]Tag{
			NewTag("00", v.GUID),
			NewTag("01", v.BIC),
			NewTag("02", v.Account),
		})
		if err != nil {
			return Tag{}, err
		}
		return NewTag(TagInterbank, value), nil
	case *Interbank:
		if v == nil {
			return Tag{}, ErrUnsupportedScheme
		}
		return EncodeScheme(*v)
	default:
		return Tag{}, ErrUnsupportedScheme
	}
}

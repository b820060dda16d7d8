// Package config loads merchant profiles (YAML) and server settings
// (environment, optionally from a .env file).
package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mkadit/ethqr"
)

// Scheme type names accepted in profiles and API requests.
const (
	SchemeVisa       = "visa"
	SchemeMastercard = "mastercard"
	SchemeUnionPay   = "unionpay"
	SchemeInterbank  = "interbank"
)

// Profile is a file describing one or more payloads.
type Profile struct {
	Payloads []Payload `yaml:"payloads" json:"payloads"`
}

// Merchant identifies the payee.
type Merchant struct {
	Name         string `yaml:"name" json:"name"`
	City         string `yaml:"city" json:"city"`
	CategoryCode string `yaml:"category_code" json:"category_code"`
}

// SchemeSpec is a scheme reference in serialized form. AccountInfo is used
// by the card schemes; GUID, BIC and Account by the interbank scheme.
type SchemeSpec struct {
	Type        string `yaml:"type" json:"type"`
	AccountInfo string `yaml:"account_info,omitempty" json:"account_info,omitempty"`
	GUID        string `yaml:"guid,omitempty" json:"guid,omitempty"`
	BIC         string `yaml:"bic,omitempty" json:"bic,omitempty"`
	Account     string `yaml:"account,omitempty" json:"account,omitempty"`
}

// FeeSpec is a convenience fee in serialized form.
type FeeSpec struct {
	Type  string `yaml:"type" json:"type"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Payload is the serialized form of ethqr.Config.
type Payload struct {
	Merchant           Merchant               `yaml:"merchant" json:"merchant"`
	Schemes            []SchemeSpec           `yaml:"schemes" json:"schemes"`
	Amount             string                 `yaml:"amount,omitempty" json:"amount,omitempty"`
	ConvenienceFee     *FeeSpec               `yaml:"convenience_fee,omitempty" json:"convenience_fee,omitempty"`
	AdditionalData     *ethqr.AdditionalData  `yaml:"additional_data,omitempty" json:"additional_data,omitempty"`
	TransactionContext string                 `yaml:"transaction_context,omitempty" json:"transaction_context,omitempty"`
	Extensions         *ethqr.ExtensionFields `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// Scheme converts s into an ethqr.Scheme. Hyphenated GUIDs are
// normalized; unknown types wrap ethqr.ErrUnsupportedScheme.
func (s SchemeSpec) Scheme() (ethqr.Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case SchemeVisa:
		return ethqr.NewVisa(s.AccountInfo), nil
	case SchemeMastercard:
		return ethqr.NewMastercard(s.AccountInfo), nil
	case SchemeUnionPay:
		return ethqr.NewUnionPay(s.AccountInfo), nil
	case SchemeInterbank, "ips_et", "ipset":
		return ethqr.NewInterbank(ethqr.NormalizeGUID(s.GUID), s.BIC, s.Account), nil
	default:
		return nil, errors.Wrapf(ethqr.ErrUnsupportedScheme, "scheme type %q", s.Type)
	}
}

// Config converts the payload into an ethqr.Config. Field validation is
// left to the assembler.
func (p Payload) Config() (ethqr.Config, error) {
	cfg := ethqr.Config{
		MerchantName:       p.Merchant.Name,
		MerchantCity:       p.Merchant.City,
		CategoryCode:       p.Merchant.CategoryCode,
		Amount:             p.Amount,
		AdditionalData:     p.AdditionalData,
		TransactionContext: p.TransactionContext,
		Extensions:         p.Extensions,
	}
	for i, spec := range p.Schemes {
		s, err := spec.Scheme()
		if err != nil {
			return ethqr.Config{}, errors.Wrapf(err, "scheme %d", i)
		}
		cfg.Schemes = append(cfg.Schemes, s)
	}
	if p.ConvenienceFee != nil {
		kind, ok := ethqr.ParseConvenienceFeeKind(strings.ToLower(p.ConvenienceFee.Type))
		if !ok {
			return ethqr.Config{}, errors.Wrapf(ethqr.ErrInvalidValue, "convenience fee type %q", p.ConvenienceFee.Type)
		}
		cfg.ConvenienceFee = &ethqr.ConvenienceFee{Kind: kind, Value: p.ConvenienceFee.Value}
	}
	return cfg, nil
}

// Configs converts every payload of the profile.
func (p *Profile) Configs() ([]ethqr.Config, error) {
	cfgs := make([]ethqr.Config, 0, len(p.Payloads))
	for i, pl := range p.Payloads {
		cfg, err := pl.Config()
		if err != nil {
			return nil, errors.Wrapf(err, "payload %d", i)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open profile")
	}
	defer f.Close()
	return DecodeProfile(f)
}

// ParseProfile decodes a YAML profile held in memory.
func ParseProfile(data []byte) (*Profile, error) {
	return DecodeProfile(bytes.NewReader(data))
}

// DecodeProfile decodes a YAML profile. Unknown keys are rejected so that
// misspelled optional fields do not silently disappear from the payload.
func DecodeProfile(r io.Reader) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "decode profile")
	}
	if len(p.Payloads) == 0 {
		return nil, errors.New("profile defines no payloads")
	}
	return &p, nil
}

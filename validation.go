package ethqr

import (
	"errors"
	"fmt"
	"sync"
)

// ValidationRule defines the interface for a single validation rule.
type ValidationRule interface {
	Validate(cfg *Config) error
	Name() string // Returns the name of the rule (e.g., "max_length")
}

// Validator runs an ordered list of rules and stops at the first failure.
// It is safe for concurrent use.
type Validator struct {
	rules []ValidationRule
	mu    sync.RWMutex
}

// NewValidator creates a validator with the mandatory merchant rules
// followed by any extra rules.
func NewValidator(extra ...ValidationRule) *Validator {
	v := &Validator{
		rules: []ValidationRule{
			maxBytesRule{field: "name", max: MaxMerchantNameLen, get: func(c *Config) string { return c.MerchantName }},
			maxBytesRule{field: "city", max: MaxMerchantCityLen, get: func(c *Config) string { return c.MerchantCity }},
			digitsRule{field: "category_code", length: CategoryCodeLen, get: func(c *Config) string { return c.CategoryCode }},
			schemesRule{},
			optionalDataRule{},
		},
	}
	v.rules = append(v.rules, extra...)
	return v
}

// AddRule appends a rule that runs after the existing ones.
func (v *Validator) AddRule(rule ValidationRule) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rules = append(v.rules, rule)
}

// Validate returns the first rule failure, or nil. Failures that are not a
// *FieldError are wrapped with ErrValidation and the rule name.
func (v *Validator) Validate(cfg *Config) error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, rule := range v.rules {
		if err := rule.Validate(cfg); err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				return err
			}
			return fmt.Errorf("%w: %s: %w", ErrValidation, rule.Name(), err)
		}
	}
	return nil
}

// Clone creates a copy of the validator that can be extended independently.
func (v *Validator) Clone() *Validator {
	v.mu.RLock()
	defer v.mu.RUnlock()
	clone := &Validator{rules: make([]ValidationRule, len(v.rules))}
	copy(clone.rules, v.rules)
	return clone
}

var defaultValidator = NewValidator()

type maxBytesRule struct {
	field string
	max   int
	get   func(*Config) string
}

func (r maxBytesRule) Name() string { return "max_length" }

func (r maxBytesRule) Validate(cfg *Config) error {
	if n := len(r.get(cfg)); n > r.max {
		return tooLong(r.field, n, r.max)
	}
	return nil
}

type digitsRule struct {
	field  string
	length int
	get    func(*Config) string
}

func (r digitsRule) Name() string { return "numeric" }

func (r digitsRule) Validate(cfg *Config) error {
	s := r.get(cfg)
	if len(s) != r.length || !isASCIIDigits(s) {
		return invalid(r.field, s)
	}
	return nil
}

type schemesRule struct{}

func (schemesRule) Name() string { return "mandatory" }

func (schemesRule) Validate(cfg *Config) error {
	if len(cfg.Schemes) == 0 {
		return missing("schemes")
	}
	return nil
}

// optionalDataRule checks the optional templates that are not covered by
// the length guard on top-level tags.
type optionalDataRule struct{}

func (optionalDataRule) Name() string { return "optional_data" }

func (optionalDataRule) Validate(cfg *Config) error {
	if err := cfg.AdditionalData.Validate(); err != nil {
		return err
	}
	return cfg.ConvenienceFee.validate()
}

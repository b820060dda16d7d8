package ethqr

import "go.uber.org/zap"

// Option represents a functional option for builder configuration
type Option func(*Builder)

// WithLogger sets the logger used to report assembled and rejected payloads
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithValidator replaces the validator; it should include the mandatory
// merchant rules, as the one returned by NewValidator does
func WithValidator(v *Validator) Option {
	return func(b *Builder) {
		if v != nil {
			b.validator = v
		}
	}
}

// WithRules adds rules that run after the built-in ones
func WithRules(rules ...ValidationRule) Option {
	return func(b *Builder) {
		v := b.validator.Clone()
		for _, rule := range rules {
			v.AddRule(rule)
		}
		b.validator = v
	}
}

// WithConfig seeds the builder with a copy of cfg
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		b.cfg = cfg.Clone()
	}
}

// WithMerchant sets name, city and category code
func WithMerchant(name, city, mcc string) Option {
	return func(b *Builder) {
		b.cfg.MerchantName = name
		b.cfg.MerchantCity = city
		b.cfg.CategoryCode = mcc
	}
}

// WithSchemes appends schemes in order
func WithSchemes(schemes ...Scheme) Option {
	return func(b *Builder) {
		b.cfg.Schemes = append(b.cfg.Schemes, schemes...)
	}
}

func WithAmount(amount string) Option {
	return func(b *Builder) {
		b.cfg.Amount = amount
	}
}

func WithAdditionalData(ad AdditionalData) Option {
	return func(b *Builder) {
		b.cfg.AdditionalData = &ad
	}
}

func WithTransactionContext(ctx string) Option {
	return func(b *Builder) {
		b.cfg.TransactionContext = ctx
	}
}

package ethqr

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Config is the complete description of one payload. Assembly enforces the
// name and city byte limits, a four-digit category code and at least one
// scheme; an empty name or city is encoded as a zero-length tag.
type Config struct {
	MerchantName       string
	MerchantCity       string
	CategoryCode       string
	Schemes            []Scheme
	Amount             string
	ConvenienceFee     *ConvenienceFee
	AdditionalData     *AdditionalData
	TransactionContext string
	Extensions         *ExtensionFields
}

// Mode derives the point of initiation: dynamic when an amount is set.
func (c *Config) Mode() Mode {
	if c.Amount != "" {
		return ModeDynamic
	}
	return ModeStatic
}

// Clone returns a deep copy of c.
func (c *Config) Clone() Config {
	out := *c
	out.Schemes = append([]Scheme(nil), c.Schemes...)
	if c.ConvenienceFee != nil {
		cf := *c.ConvenienceFee
		out.ConvenienceFee = &cf
	}
	if c.AdditionalData != nil {
		ad := *c.AdditionalData
		out.AdditionalData = &ad
	}
	if c.Extensions != nil {
		ef := *c.Extensions
		out.Extensions = &ef
	}
	return out
}

// Assemble validates cfg and returns the payload string.
func Assemble(cfg Config) (string, error) {
	return assemble(&cfg, defaultValidator)
}

func assemble(cfg *Config, v *Validator) (string, error) {
	if err := v.Validate(cfg); err != nil {
		return "", err
	}

	tags := make([]Tag, 0, 16+len(cfg.Schemes))
	tags = append(tags,
		NewTag(TagPayloadFormatIndicator, PayloadFormatIndicator),
		NewTag(TagPointOfInitiation, cfg.Mode().Indicator()),
	)
	for i, s := range cfg.Schemes {
		t, err := EncodeScheme(s)
		if err != nil {
			return "", &SchemeError{Index: i, Err: err}
		}
		tags = append(tags, t)
	}
	tags = append(tags,
		NewTag(TagMerchantCategoryCode, cfg.CategoryCode),
		NewTag(TagTransactionCurrency, CurrencyETB),
	)
	if cfg.Amount != "" {
		tags = append(tags, NewTag(TagTransactionAmount, cfg.Amount))
	}
	tags = append(tags, cfg.ConvenienceFee.tags()...)
	tags = append(tags,
		NewTag(TagCountryCode, CountryEthiopia),
		NewTag(TagMerchantName, cfg.MerchantName),
		NewTag(TagMerchantCity, cfg.MerchantCity),
	)
	if t, ok := cfg.AdditionalData.Encode(); ok {
		tags = append(tags, t)
	}
	if cfg.TransactionContext != "" {
		tags = append(tags, NewTag(TagTransactionContext, cfg.TransactionContext))
	}
	tags = append(tags, cfg.Extensions.tags()...)

	return withPayloadBuf(func(buf []byte) ([]byte, error) {
		buf, err := appendTags(buf, tags)
		if err != nil {
			return nil, err
		}
		buf = append(buf, crcHeader...)
		var sum [4]byte
		encodeHex16Upper(sum[:], CRC16(buf))
		buf = append(buf, sum[:]...)

		if len(buf) > MaxPayloadLength {
			return nil, &PayloadTooLongError{Length: len(buf), Max: MaxPayloadLength}
		}
		return buf, nil
	})
}

// Builder accumulates a Config through chained setters. Setters may be
// called in any order and any number of times; Build does not consume the
// configuration. A Builder is safe for concurrent use.
type Builder struct {
	cfg       Config
	validator *Validator
	logger    *zap.Logger
	mu        sync.RWMutex
}

// NewBuilder creates a builder configured by opts.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		validator: defaultValidator,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) set(fn func(*Config)) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.cfg)
	return b
}

func (b *Builder) MerchantName(name string) *Builder {
	return b.set(func(c *Config) { c.MerchantName = name })
}

func (b *Builder) MerchantCity(city string) *Builder {
	return b.set(func(c *Config) { c.MerchantCity = city })
}

// CategoryCode sets the four-digit merchant category code.
func (b *Builder) CategoryCode(mcc string) *Builder {
	return b.set(func(c *Config) { c.CategoryCode = mcc })
}

// AddScheme appends a scheme; schemes are emitted in the order added.
func (b *Builder) AddScheme(s Scheme) *Builder {
	return b.set(func(c *Config) { c.Schemes = append(c.Schemes, s) })
}

// Amount sets the transaction amount, which makes the payload dynamic.
// An empty amount makes it static again.
func (b *Builder) Amount(amount string) *Builder {
	return b.set(func(c *Config) { c.Amount = amount })
}

func (b *Builder) ConvenienceFee(fee *ConvenienceFee) *Builder {
	return b.set(func(c *Config) { c.ConvenienceFee = fee })
}

func (b *Builder) AdditionalData(ad AdditionalData) *Builder {
	return b.set(func(c *Config) { c.AdditionalData = &ad })
}

func (b *Builder) TransactionContext(ctx string) *Builder {
	return b.set(func(c *Config) { c.TransactionContext = ctx })
}

func (b *Builder) Extensions(ef ExtensionFields) *Builder {
	return b.set(func(c *Config) { c.Extensions = &ef })
}

// Config returns a copy of the current configuration.
func (b *Builder) Config() Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cfg.Clone()
}

// Reset clears the configuration, keeping logger and validator.
func (b *Builder) Reset() *Builder {
	return b.set(func(c *Config) { *c = Config{} })
}

// Build validates the current configuration and assembles the payload.
func (b *Builder) Build() (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	payload, err := assemble(&b.cfg, b.validator)
	if err != nil {
		b.logger.Warn("payload rejected", zap.Object("config", &b.cfg), zap.Error(err))
		return "", err
	}
	b.logger.Debug("payload assembled",
		zap.Stringer("mode", b.cfg.Mode()),
		zap.Int("length", len(payload)),
		zap.Object("config", &b.cfg),
	)
	return payload, nil
}

// MustBuild is like Build but panics with an error wrapping ErrBuilder.
func (b *Builder) MustBuild() string {
	payload, err := b.Build()
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrBuilder, err))
	}
	return payload
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mkadit/ethqr"
	"github.com/mkadit/ethqr/internal/config"
	"github.com/mkadit/ethqr/internal/metrics"
	"github.com/mkadit/ethqr/internal/server"
)

var version = "dev"

const (
	loggerKey = "logger"
	levelKey  = "level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ethqr",
		Usage:   "generate and verify Ethiopian interoperable QR payment payloads",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log debug information to stderr"},
			&cli.BoolFlag{Name: "silent", Usage: "log nothing"},
		},
		Before: setupLogger,
		After: func(ctx *cli.Context) error {
			_ = logger(ctx).Sync()
			return nil
		},
		Commands: []*cli.Command{
			generateCmd,
			verifyCmd,
			crcCmd,
			serveCmd,
		},
	}
}

func setupLogger(ctx *cli.Context) error {
	if ctx.Bool("verbose") && ctx.Bool("silent") {
		return errors.New("--verbose and --silent are mutually exclusive")
	}
	al := zap.NewAtomicLevelAt(zap.InfoLevel)
	if ctx.Bool("verbose") {
		al.SetLevel(zap.DebugLevel)
	}
	if ctx.Bool("silent") {
		al.SetLevel(zap.FatalLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	errWriter := ctx.App.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	l := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(errWriter)), al))
	if ctx.App.Metadata == nil {
		ctx.App.Metadata = map[string]interface{}{}
	}
	ctx.App.Metadata[loggerKey] = l
	ctx.App.Metadata[levelKey] = al
	return nil
}

func logger(ctx *cli.Context) *zap.Logger {
	if l, ok := ctx.App.Metadata[loggerKey].(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

var generateCmd = &cli.Command{
	Name:        "generate",
	Usage:       "assemble payloads from a YAML profile or from flags",
	Description: "Schemes given with --scheme are emitted in command-line order. The per-type\n" +
		"flags follow them grouped as visa, mastercard, unionpay, interbank. Use --scheme\n" +
		"or a --config profile when the order across types matters.",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML profile describing one or more payloads"},
		&cli.StringFlag{Name: "name", Usage: "merchant name (max 25 bytes)"},
		&cli.StringFlag{Name: "city", Usage: "merchant city (max 15 bytes)"},
		&cli.StringFlag{Name: "mcc", Usage: "merchant category code (4 digits)"},
		&cli.StringSliceFlag{Name: "scheme", Usage: "ordered scheme: visa=INFO, mastercard=INFO, unionpay=INFO or interbank=GUID:BIC:ACCOUNT"},
		&cli.StringSliceFlag{Name: "visa", Usage: "Visa merchant account information"},
		&cli.StringSliceFlag{Name: "mastercard", Usage: "Mastercard merchant account information"},
		&cli.StringSliceFlag{Name: "unionpay", Usage: "UnionPay merchant account information"},
		&cli.StringFlag{Name: "ips-guid", Usage: "interbank scheme GUID, with or without hyphens"},
		&cli.StringFlag{Name: "ips-bic", Usage: "interbank scheme BIC"},
		&cli.StringFlag{Name: "ips-account", Usage: "interbank scheme account number"},
		&cli.StringFlag{Name: "amount", Usage: "transaction amount; makes the payload dynamic"},
		&cli.StringFlag{Name: "tip", Usage: "convenience fee: prompt, fixed or percentage"},
		&cli.StringFlag{Name: "tip-value", Usage: "fixed fee amount or percentage"},
		&cli.StringFlag{Name: "bill-number"},
		&cli.StringFlag{Name: "mobile-number"},
		&cli.StringFlag{Name: "store-label"},
		&cli.StringFlag{Name: "reference-label"},
		&cli.StringFlag{Name: "customer-label"},
		&cli.StringFlag{Name: "terminal-number"},
		&cli.StringFlag{Name: "purpose"},
		&cli.StringFlag{Name: "context", Usage: "transaction context (tag 80)"},
		&cli.IntFlag{Name: "concurrency", Value: 4, Usage: "parallel builds for multi-payload profiles"},
	},
	Action: generate,
}

func generate(ctx *cli.Context) error {
	log := logger(ctx)

	var payloads []config.Payload
	if path := ctx.String("config"); path != "" {
		profile, err := config.LoadProfile(path)
		if err != nil {
			return err
		}
		payloads = profile.Payloads
	} else {
		p, err := payloadFromFlags(ctx)
		if err != nil {
			return err
		}
		payloads = []config.Payload{p}
	}

	cfgs := make([]ethqr.Config, 0, len(payloads))
	for i, p := range payloads {
		cfg, err := p.Config()
		if err != nil {
			return errors.Wrapf(err, "payload %d", i)
		}
		cfgs = append(cfgs, cfg)
	}

	p := ethqr.NewProcessor(
		ethqr.WithConcurrency(ctx.Int("concurrency")),
		ethqr.WithProcessorLogger(log),
	)
	results, err := p.ProcessBatch(ctx.Context, cfgs)
	if err != nil {
		for i, r := range results {
			if r.Err != nil {
				log.Error("payload rejected", zap.Int("index", i), zap.Error(r.Err))
			}
		}
		return errors.Wrap(err, "generate")
	}
	for i, r := range results {
		log.Debug("payload assembled", zap.Int("index", i), zap.Object("config", &cfgs[i]))
		fmt.Fprintln(ctx.App.Writer, r.Payload)
	}
	return nil
}

func payloadFromFlags(ctx *cli.Context) (config.Payload, error) {
	p := config.Payload{
		Merchant: config.Merchant{
			Name:         ctx.String("name"),
			City:         ctx.String("city"),
			CategoryCode: ctx.String("mcc"),
		},
		Amount:             ctx.String("amount"),
		TransactionContext: ctx.String("context"),
	}
	for _, v := range ctx.StringSlice("scheme") {
		spec, err := parseSchemeFlag(v)
		if err != nil {
			return config.Payload{}, err
		}
		p.Schemes = append(p.Schemes, spec)
	}
	for _, v := range ctx.StringSlice("visa") {
		p.Schemes = append(p.Schemes, config.SchemeSpec{Type: config.SchemeVisa, AccountInfo: v})
	}
	for _, v := range ctx.StringSlice("mastercard") {
		p.Schemes = append(p.Schemes, config.SchemeSpec{Type: config.SchemeMastercard, AccountInfo: v})
	}
	for _, v := range ctx.StringSlice("unionpay") {
		p.Schemes = append(p.Schemes, config.SchemeSpec{Type: config.SchemeUnionPay, AccountInfo: v})
	}
	if ctx.IsSet("ips-guid") || ctx.IsSet("ips-bic") || ctx.IsSet("ips-account") {
		p.Schemes = append(p.Schemes, config.SchemeSpec{
			Type:    config.SchemeInterbank,
			GUID:    ctx.String("ips-guid"),
			BIC:     ctx.String("ips-bic"),
			Account: ctx.String("ips-account"),
		})
	}
	if tip := ctx.String("tip"); tip != "" {
		p.ConvenienceFee = &config.FeeSpec{Type: tip, Value: ctx.String("tip-value")}
	}
	ad := ethqr.AdditionalData{
		BillNumber:     ctx.String("bill-number"),
		MobileNumber:   ctx.String("mobile-number"),
		StoreLabel:     ctx.String("store-label"),
		ReferenceLabel: ctx.String("reference-label"),
		CustomerLabel:  ctx.String("customer-label"),
		TerminalNumber: ctx.String("terminal-number"),
		Purpose:        ctx.String("purpose"),
	}
	if !ad.IsEmpty() {
		p.AdditionalData = &ad
	}
	return p, nil
}

// parseSchemeFlag reads TYPE=VALUE. Interbank values are GUID:BIC:ACCOUNT,
// with the account optional.
func parseSchemeFlag(v string) (config.SchemeSpec, error) {
	typ, value, ok := strings.Cut(v, "=")
	if !ok {
		return config.SchemeSpec{}, errors.Errorf("--scheme %q: expected TYPE=VALUE", v)
	}
	spec := config.SchemeSpec{Type: strings.ToLower(strings.TrimSpace(typ))}
	if spec.Type != config.SchemeInterbank {
		spec.AccountInfo = value
		return spec, nil
	}
	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 2 {
		return config.SchemeSpec{}, errors.Errorf("--scheme %q: expected interbank=GUID:BIC:ACCOUNT", v)
	}
	spec.GUID, spec.BIC = parts[0], parts[1]
	if len(parts) == 3 {
		spec.Account = parts[2]
	}
	return spec, nil
}

var verifyCmd = &cli.Command{
	Name:      "verify",
	Usage:     "check the CRC trailer of a payload",
	ArgsUsage: "<payload>",
	Action: func(ctx *cli.Context) error {
		if ctx.Args().Len() != 1 {
			return errors.New("expected exactly one payload argument")
		}
		if err := ethqr.ValidatePayload(ctx.Args().First()); err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, "valid")
		return nil
	},
}

var crcCmd = &cli.Command{
	Name:      "crc",
	Usage:     "print the CRC-16 of the argument as four hex digits",
	ArgsUsage: "<data>",
	Action: func(ctx *cli.Context) error {
		if ctx.Args().Len() != 1 {
			return errors.New("expected exactly one data argument")
		}
		fmt.Fprintln(ctx.App.Writer, ethqr.ComputeCRC(ctx.Args().First()))
		return nil
	},
}

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "serve the HTTP API",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file with ETHQR_* settings"},
		&cli.StringFlag{Name: "listen", Usage: "listen address, overrides " + config.EnvListen},
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := config.ServerFromEnv(ctx.String("env-file"))
		if err != nil {
			return err
		}
		if l := ctx.String("listen"); l != "" {
			cfg.Listen = l
		}
		log := logger(ctx)
		if al, ok := ctx.App.Metadata[levelKey].(zap.AtomicLevel); ok && !ctx.Bool("verbose") && !ctx.Bool("silent") {
			al.SetLevel(cfg.LogLevel)
		}

		appCtx, cancel := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
		defer cancel()

		srv := server.New(server.Config{
			Logger:      log,
			Metrics:     metrics.New(),
			Concurrency: cfg.Concurrency,
		})
		return srv.ListenAndServe(appCtx, cfg.Listen, cfg.ShutdownTimeout)
	},
}

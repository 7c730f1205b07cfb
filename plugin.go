package fbcanal

import (
	"os"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/fbcanal/charset"
	"github.com/huangjunwen/fbcanal/event"
	"github.com/huangjunwen/fbcanal/fbtypes"
	"github.com/huangjunwen/fbcanal/filter"
	"github.com/huangjunwen/fbcanal/logr"
	"github.com/huangjunwen/fbcanal/logr/zerologr"
	"github.com/huangjunwen/fbcanal/record"
	"github.com/huangjunwen/fbcanal/segment"
	"github.com/huangjunwen/fbcanal/txn"
)

// Plugin receives replication notifications of one stream.
type Plugin struct {
	cfg     *Config
	logger  logr.Logger
	metrics *Metrics

	charsetFactory charset.Factory
	decoderOpts    []record.DecoderOption

	filter   *filter.TableFilter
	charsets *charset.Cache
	decoder  *record.Decoder
	doc      segment.Document
	registry *txn.Registry
}

// Option configures Plugin.
type Option func(*Plugin) error

// WithLogger sets the logger, the default one writes json lines to stderr at
// cfg.LogLevel.
func WithLogger(logger logr.Logger) Option {
	return func(p *Plugin) error {
		p.logger = logger
		return nil
	}
}

// WithMetrics sets metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(p *Plugin) error {
		p.metrics = metrics
		return nil
	}
}

// WithCharsetFactory replaces the default charset converter factory.
func WithCharsetFactory(factory charset.Factory) Option {
	return func(p *Plugin) error {
		p.charsetFactory = factory
		return nil
	}
}

// WithNumericFormatter replaces the INT128/DECFLOAT formatter.
func WithNumericFormatter(numeric fbtypes.NumericFormatter) Option {
	return func(p *Plugin) error {
		p.decoderOpts = append(p.decoderOpts, record.WithNumericFormatter(numeric))
		return nil
	}
}

// WithTemporalDecoder replaces the date/time decoder.
func WithTemporalDecoder(temporal fbtypes.TemporalDecoder) Option {
	return func(p *Plugin) error {
		p.decoderOpts = append(p.decoderOpts, record.WithTemporalDecoder(temporal))
		return nil
	}
}

// NewPlugin validates cfg and creates a Plugin.
func NewPlugin(cfg *Config, opts ...Option) (*Plugin, error) {
	if cfg == nil {
		return nil, perrors.Wrap(ErrConfiguration, "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Plugin{
		cfg: cfg,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.logger == nil {
		logger, err := zerologr.New(os.Stderr, cfg.LogLevel)
		if err != nil {
			return nil, perrors.Wrapf(ErrConfiguration, "log_level: %s", err)
		}
		p.logger = logger
	}

	var err error
	if p.filter, err = cfg.tableFilter(); err != nil {
		return nil, err
	}
	p.charsets = charset.NewCache(p.charsetFactory)
	p.decoder = record.NewDecoder(p.charsets, p.decoderOpts...)
	p.registry = txn.NewRegistry(
		documentSink{p},
		txn.WithLogger(p.logger),
		txn.WithDiscardHook(p.metrics.eventsDiscarded),
	)
	return p, nil
}

// Config returns the configuration.
func (p *Plugin) Config() *Config {
	return p.cfg
}

// StartSegment opens the document of a new segment. A document not finished yet
// is dropped.
func (p *Plugin) StartSegment(h segment.Header) {
	if p.doc.IsOpen() {
		prev := p.doc.Header()
		p.logger.Warn("segment not finished, dropped", "segment", prev.Name, "events", len(p.doc.Events()))
	}
	p.logger.Debug("start segment",
		"segment", h.Name,
		"guid", segment.FormatGUID(h.GUID),
		"sequence", h.Sequence,
		"version", h.Version,
		"state", h.State.String(),
		"length", h.Length,
	)
	p.doc.Open(h)
}

// FinishSegment writes the document of the current segment. If the file
// already exists the document is discarded and nothing is written.
func (p *Plugin) FinishSegment() error {
	if !p.doc.IsOpen() {
		panic(perrors.New("FinishSegment: no segment started"))
	}
	h := p.doc.Header()
	path := p.cfg.SegmentPath(h.Name)
	written, err := p.doc.Close(path)
	if err != nil {
		p.logger.Error(err, "write segment failed", "segment", h.Name, "path", path)
		return err
	}
	p.metrics.segmentFinished(written)
	if written {
		p.logger.Info("segment written", "segment", h.Name, "path", path)
	} else {
		p.logger.Info("segment file exists, skipped", "segment", h.Name, "path", path)
	}
	return nil
}

// SetSequence records a SET SEQUENCE event.
func (p *Plugin) SetSequence(name string, value int64) {
	if !p.cfg.RegisterSequenceEvents {
		return
	}
	documentSink{p}.Append(event.NewSetSequence(name, value))
}

// MatchTable returns true if changes of the table should be replicated.
func (p *Plugin) MatchTable(name string) bool {
	return p.filter.Match(name)
}

// StartTransaction begins a transaction.
func (p *Plugin) StartTransaction(tnx int64) *Transaction {
	return p.newTransaction(p.registry.Begin(tnx))
}

// GetTransaction returns a started transaction, txn.ErrNotFound if absent.
func (p *Plugin) GetTransaction(tnx int64) (*Transaction, error) {
	buf, err := p.registry.Get(tnx)
	if err != nil {
		return nil, err
	}
	return p.newTransaction(buf), nil
}

// CleanupTransaction forgets a transaction.
func (p *Plugin) CleanupTransaction(tnx int64) {
	p.registry.End(tnx)
}

// CleanupTransactions rolls back and forgets all transactions.
func (p *Plugin) CleanupTransactions() {
	p.registry.CleanupTransactions()
}

// documentSink appends to the document of the current segment.
type documentSink struct {
	p *Plugin
}

func (sink documentSink) Append(ev event.Event) {
	p := sink.p
	if !p.doc.IsOpen() {
		p.logger.Warn("event outside segment, dropped", "event", ev.Kind.String(), "tnx", ev.Tnx)
		return
	}
	p.doc.Append(ev)
	p.metrics.eventAppended(ev.Kind)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package messaging

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"

	"github.com/jeranaias/enigma-tui/internal/config"
	"github.com/jeranaias/enigma-tui/internal/enigma"
	"github.com/jeranaias/enigma-tui/internal/logging"
	"github.com/jeranaias/enigma-tui/internal/storage"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrRateLimited is returned by Send when the configured send rate is exceeded.
var ErrRateLimited = errors.New("sending too fast, try again in a moment")

// ValidationError reports which required form fields were left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "please fill out all fields"
}

// =============================================================================
// TYPES
// =============================================================================

// SendRequest carries the four fields of the send form. All are required.
type SendRequest struct {
	Sender    string
	Rotors    string
	Plugboard string
	Text      string
}

// Decoded pairs a log entry with its plaintext under the reader's key.
type Decoded struct {
	storage.Entry
	Plaintext string `json:"plaintext"`
}

// Options configures a Service. The zero value means no rate limit, upper
// case output and a discarded log.
type Options struct {
	// SendsPerSecond and SendBurst bound Send. Zero rate disables the limit.
	SendsPerSecond float64
	SendBurst      int

	PreserveCase bool

	// Workers bounds concurrent decoding in Inbox; zero means GOMAXPROCS.
	Workers int

	Logger logrus.FieldLogger
}

// Service sends and reads enciphered messages.
type Service struct {
	log     storage.Log
	limiter *rate.Limiter
	opts    Options
	logger  logrus.FieldLogger
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// NewService returns a Service over log.
func NewService(log storage.Log, opts Options) *Service {
	s := &Service{log: log, opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if opts.SendsPerSecond > 0 {
		burst := opts.SendBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.SendsPerSecond), burst)
	}
	if s.opts.Workers <= 0 {
		s.opts.Workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Open builds a Service from cfg, opening the configured message log.
// The caller owns the Service and must Close it.
func Open(cfg *config.Config, logger logrus.FieldLogger) (*Service, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	log, err := storage.Open(cfg.Store.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open message log: %w", err)
	}
	if logger != nil {
		logger.WithFields(logrus.Fields{"backend": cfg.Store.Backend, "path": path}).Debug("message log opened")
	}
	return NewService(log, Options{
		SendsPerSecond: cfg.Limits.SendsPerSecond,
		SendBurst:      cfg.Limits.SendBurst,
		PreserveCase:   cfg.Cipher.PreserveCase,
		Logger:         logger,
	}), nil
}

// Log returns the underlying message log.
func (s *Service) Log() storage.Log { return s.log }

// Close closes the message log.
func (s *Service) Close() error { return s.log.Close() }

// =============================================================================
// OPERATIONS
// =============================================================================

// Normalize puts plaintext into Unicode NFC so that composed and decomposed
// forms of the same character encipher identically. Ciphertext must never be
// normalized: composing a deciphered letter with a following combining mark
// would turn it into a non-ASCII rune the machine passes through.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// Send enciphers req.Text under the key in req and appends the ciphertext to
// the log.
func (s *Service) Send(ctx context.Context, req SendRequest) (storage.Entry, error) {
	if missing := req.missing(); len(missing) > 0 {
		return storage.Entry{}, &ValidationError{Fields: missing}
	}

	key, err := enigma.ParseKey(req.Rotors, req.Plugboard)
	if err != nil {
		return storage.Entry{}, err
	}

	if s.limiter != nil && !s.limiter.Allow() {
		return storage.Entry{}, ErrRateLimited
	}

	ciphertext, err := enigma.EncodeMessage(key, Normalize(req.Text), s.machineOptions()...)
	if err != nil {
		return storage.Entry{}, err
	}

	entry, err := s.log.Append(ctx, storage.Entry{
		Sender:     strings.TrimSpace(req.Sender),
		Ciphertext: ciphertext,
	})
	if err != nil {
		return storage.Entry{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"entry_id": entry.ID,
		"sender":   entry.Sender,
		"length":   len(ciphertext),
		"rotors":   len(key.Rotors),
	}).Info("message sent")
	return entry, nil
}

// Decode deciphers a single ciphertext with a fresh machine. The ciphertext
// is used exactly as stored.
func (s *Service) Decode(key enigma.Key, ciphertext string) (string, error) {
	return enigma.EncodeMessage(key, ciphertext, s.machineOptions()...)
}

// Inbox returns every log entry deciphered with key, in log order.
func (s *Service) Inbox(ctx context.Context, key enigma.Key) ([]Decoded, error) {
	// Reject a bad key once rather than once per entry.
	if _, err := enigma.NewMachine(key); err != nil {
		return nil, err
	}

	entries, err := s.log.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Decoded, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plain, err := s.Decode(key, entry.Ciphertext)
			if err != nil {
				return fmt.Errorf("entry %s: %w", entry.ID, err)
			}
			out[i] = Decoded{Entry: entry, Plaintext: plain}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.WithField("count", len(out)).Debug("inbox decoded")
	return out, nil
}

func (s *Service) machineOptions() []enigma.Option {
	return []enigma.Option{enigma.WithPreserveCase(s.opts.PreserveCase)}
}

func (r SendRequest) missing() []string {
	var fields []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields = append(fields, name)
		}
	}
	check("sender", r.Sender)
	check("rotors", r.Rotors)
	check("plugboard", r.Plugboard)
	check("message", r.Text)
	return fields
}

package usecase

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/allisson/randtoken/internal/errors"
	"github.com/allisson/randtoken/internal/token/domain"
	"github.com/allisson/randtoken/internal/token/service"
)

// maxCachedGenerators bounds the generator cache; requests beyond it get a throwaway
// generator. A slot is reserved before storing, so the bound holds under concurrency.
const maxCachedGenerators = 1024

// ErrHashingDisabled is returned when a caller asks for a digest but TOKEN_HASH_ENABLED is off.
var ErrHashingDisabled = apperrors.Wrap(apperrors.ErrInvalidInput, "token hashing is disabled")

// Config holds token use case limits and defaults.
type Config struct {
	// DefaultBitSize applies when a request leaves BitSize nil.
	DefaultBitSize int
	// DefaultAlphabet is a literal alphabet (see domain.ResolveAlphabet) applied when
	// a request names neither an alphabet nor a preset.
	DefaultAlphabet string
	MaxBitSize      int
	MaxBatchSize    int
	BatchWorkers    int
	HashEnabled     bool
}

type generatorKey struct {
	bitSize  int
	alphabet string
}

type tokenUseCase struct {
	config     Config
	source     service.EntropySource
	hasher     service.TokenHasher
	logger     *slog.Logger
	generators sync.Map
	cached     atomic.Int64
}

// NewTokenUseCase creates a TokenUseCase drawing entropy from source. A nil source
// selects crypto/rand. hasher may be nil when config.HashEnabled is false.
func NewTokenUseCase(
	config Config,
	source service.EntropySource,
	hasher service.TokenHasher,
	logger *slog.Logger,
) TokenUseCase {
	if source == nil {
		source = service.NewCryptoSource(nil)
	}
	if config.BatchWorkers < 1 {
		config.BatchWorkers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &tokenUseCase{
		config: config,
		source: source,
		hasher: hasher,
		logger: logger,
	}
}

func (t *tokenUseCase) Generate(ctx context.Context, params GenerateParams) (*domain.Token, error) {
	gen, err := t.prepare(params)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token, err := t.issue(gen, params.Hash)
	if err != nil {
		cfg := gen.Config()
		t.logger.Error("token generation failed",
			slog.Int("bit_size", cfg.BitSize),
			slog.Int("base", cfg.Base),
			slog.Any("error", err),
		)
		return nil, err
	}
	return token, nil
}

func (t *tokenUseCase) GenerateBatch(
	ctx context.Context,
	params GenerateParams,
	count int,
) (*domain.Batch, error) {
	if count < 1 || count > t.config.MaxBatchSize {
		return nil, apperrors.Wrapf(domain.ErrInvalidCount, "got %d, limit is %d", count, t.config.MaxBatchSize)
	}

	gen, err := t.prepare(params)
	if err != nil {
		return nil, err
	}

	tokens := make([]*domain.Token, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.config.BatchWorkers)

	for i := range tokens {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			token, err := t.issue(gen, params.Hash)
			if err != nil {
				return err
			}
			tokens[i] = token
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		cfg := gen.Config()
		t.logger.Error("batch generation failed",
			slog.Int("count", count),
			slog.Int("bit_size", cfg.BitSize),
			slog.Int("base", cfg.Base),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &domain.Batch{Config: gen.Config(), Tokens: tokens}, nil
}

func (t *tokenUseCase) Describe(ctx context.Context, params GenerateParams) (*domain.Config, error) {
	cfg, err := t.resolve(params)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (t *tokenUseCase) Validate(ctx context.Context, token string, params GenerateParams) (bool, error) {
	gen, err := t.prepare(params)
	if err != nil {
		return false, err
	}
	if err := gen.Validate(token); err != nil {
		if apperrors.Is(err, domain.ErrInvalidToken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (t *tokenUseCase) Verify(ctx context.Context, token, hash string) bool {
	if t.hasher == nil {
		return false
	}
	return t.hasher.Verify(token, hash)
}

func (t *tokenUseCase) Presets(ctx context.Context) []domain.Preset {
	return domain.Presets()
}

// resolve turns request params into a validated configuration within service limits.
func (t *tokenUseCase) resolve(params GenerateParams) (*domain.Config, error) {
	alphabet := params.Alphabet
	if s, ok := alphabet.(string); ok && s == "" {
		alphabet = nil
	}

	if params.Preset != "" {
		if alphabet != nil {
			return nil, apperrors.Wrap(domain.ErrInvalidAlphabet, "preset and alphabet are mutually exclusive")
		}
		presetAlphabet, err := domain.LookupPreset(params.Preset)
		if err != nil {
			return nil, err
		}
		alphabet = presetAlphabet
	}

	if alphabet == nil && t.config.DefaultAlphabet != "" {
		alphabet = t.config.DefaultAlphabet
	}

	bitSize := params.BitSize
	if _, ok := bitSize.(string); ok {
		return nil, apperrors.Wrap(domain.ErrInvalidBitSize, "got string")
	}
	if bitSize == nil && t.config.DefaultBitSize != 0 {
		bitSize = t.config.DefaultBitSize
	}

	cfg, err := domain.ParseConfig(bitSize, alphabet)
	if err != nil {
		return nil, err
	}

	if t.config.MaxBitSize > 0 && cfg.BitSize > t.config.MaxBitSize {
		return nil, apperrors.Wrapf(domain.ErrInvalidBitSize, "got %d, limit is %d", cfg.BitSize, t.config.MaxBitSize)
	}

	return cfg, nil
}

// prepare resolves params and returns the generator for the resulting configuration,
// reusing a cached one when possible.
func (t *tokenUseCase) prepare(params GenerateParams) (service.TokenGenerator, error) {
	if params.Hash && (!t.config.HashEnabled || t.hasher == nil) {
		return nil, ErrHashingDisabled
	}

	cfg, err := t.resolve(params)
	if err != nil {
		return nil, err
	}

	key := generatorKey{bitSize: cfg.BitSize, alphabet: cfg.Alphabet}
	if cached, ok := t.generators.Load(key); ok {
		return cached.(service.TokenGenerator), nil
	}

	gen := service.NewGenerator(cfg, t.source)
	if t.cached.Add(1) > maxCachedGenerators {
		t.cached.Add(-1)
		return gen, nil
	}

	actual, loaded := t.generators.LoadOrStore(key, gen)
	if loaded {
		t.cached.Add(-1)
	}
	return actual.(service.TokenGenerator), nil
}

func (t *tokenUseCase) issue(gen service.TokenGenerator, hash bool) (*domain.Token, error) {
	value, err := gen.Generate()
	if err != nil {
		return nil, err
	}

	cfg := gen.Config()
	token := &domain.Token{
		Value:     value,
		BitSize:   cfg.BitSize,
		Base:      cfg.Base,
		CreatedAt: time.Now().UTC(),
	}

	if hash {
		digest, err := t.hasher.Hash(value)
		if err != nil {
			return nil, err
		}
		token.Hash = &digest
	}

	return token, nil
}

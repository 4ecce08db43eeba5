package app

import (
	"fmt"

	"github.com/allisson/randtoken/internal/token/domain"
	tokenHTTP "github.com/allisson/randtoken/internal/token/http"
	"github.com/allisson/randtoken/internal/token/service"
	tokenUseCase "github.com/allisson/randtoken/internal/token/usecase"
)

// EntropySource returns the randomness source shared by all generators.
func (c *Container) EntropySource() service.EntropySource {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entropySource == nil {
		c.entropySource = service.NewCryptoSource(nil)
	}
	return c.entropySource
}

// TokenHasher returns the Argon2id token hasher, or nil when hashing is disabled.
func (c *Container) TokenHasher() (service.TokenHasher, error) {
	var err error
	c.tokenHasherInit.Do(func() {
		c.tokenHasher, err = c.initTokenHasher()
		if err != nil {
			c.initErrors["tokenHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHasher"]; exists {
		return nil, storedErr
	}
	return c.tokenHasher, nil
}

// TokenUseCase returns the token use case, instrumented when metrics are enabled.
func (c *Container) TokenUseCase() (tokenUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the token HTTP handler.
func (c *Container) TokenHandler() (*tokenHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

func (c *Container) initTokenHasher() (service.TokenHasher, error) {
	if !c.config.TokenHashEnabled {
		return nil, nil
	}

	hasher, err := service.NewTokenHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to create token hasher: %w", err)
	}
	return hasher, nil
}

// initTokenUseCase validates the configured defaults up front so a bad
// TOKEN_DEFAULT_* value fails at startup instead of on every request.
func (c *Container) initTokenUseCase() (tokenUseCase.TokenUseCase, error) {
	defaults, err := domain.NewConfig(
		c.config.TokenDefaultBitSize,
		domain.ResolveAlphabet(c.config.TokenDefaultAlphabet),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid default token configuration: %w", err)
	}
	if c.config.TokenMaxBitSize > 0 && defaults.BitSize > c.config.TokenMaxBitSize {
		return nil, fmt.Errorf(
			"default bit size %d exceeds TOKEN_MAX_BIT_SIZE %d",
			defaults.BitSize,
			c.config.TokenMaxBitSize,
		)
	}

	hasher, err := c.TokenHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get token hasher for token use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}

	useCase := tokenUseCase.NewTokenUseCase(tokenUseCase.Config{
		DefaultBitSize:  defaults.BitSize,
		DefaultAlphabet: defaults.Alphabet,
		MaxBitSize:      c.config.TokenMaxBitSize,
		MaxBatchSize:    c.config.TokenMaxBatchSize,
		BatchWorkers:    c.config.TokenBatchWorkers,
		HashEnabled:     c.config.TokenHashEnabled,
	}, c.EntropySource(), hasher, c.Logger())

	if c.config.MetricsEnabled {
		useCase = tokenUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

func (c *Container) initTokenHandler() (*tokenHTTP.TokenHandler, error) {
	useCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}
	return tokenHTTP.NewTokenHandler(useCase, c.Logger()), nil
}

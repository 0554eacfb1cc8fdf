// Package secrets resolves the findings API key from the environment, AWS SSM
// Parameter Store or the OS keychain. No source has a built-in default.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/reaandrew/boostfindings/core"
	"github.com/reaandrew/boostfindings/utils"
	log "github.com/sirupsen/logrus"
)

const ApiKeyEnvVar = "BOOST_API_KEY"

// ErrNotFound is returned by a Source that holds no key; Chain moves on to the next one.
var ErrNotFound = errors.New("secret not found")

type Source interface {
	Name() string
	Lookup(ctx context.Context) (string, error)
}

type EnvSource struct {
	Variable string
}

func (e EnvSource) Name() string {
	return "env:" + e.Variable
}

func (e EnvSource) Lookup(ctx context.Context) (string, error) {
	value, ok := os.LookupEnv(e.Variable)
	if !ok || value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

// Chain tries each source in order and returns the first key found.
type Chain []Source

func (c Chain) Lookup(ctx context.Context) (string, error) {
	for _, source := range c {
		key, err := source.Lookup(ctx)
		if errors.Is(err, ErrNotFound) {
			log.Debugf("No API key in %s", source.Name())
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read API key from %s: %w", source.Name(), err)
		}
		log.Infof("Using API key %s from %s", utils.MaskApiKey(key), source.Name())
		return key, nil
	}
	return "", core.ErrMissingApiKey
}

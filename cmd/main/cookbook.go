package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/CTAG07/Cookery/pkg/markov"
)

// Cookbook pairs a title chain with a body chain.
type Cookbook struct {
	titles *markov.Model
	bodies *markov.Model
	config *GeneratorConfig
}

// NewCookbook looks up the configured title and body chains in models.
func NewCookbook(models map[string]*markov.Model, config *GeneratorConfig) (*Cookbook, error) {
	titles, ok := models[config.TitleChain]
	if !ok {
		return nil, fmt.Errorf("title chain '%s' not in manifest", config.TitleChain)
	}
	bodies, ok := models[config.BodyChain]
	if !ok {
		return nil, fmt.Errorf("body chain '%s' not in manifest", config.BodyChain)
	}
	return &Cookbook{titles: titles, bodies: bodies, config: config}, nil
}

// Title generates a fixed-length title without the closing period.
func (c *Cookbook) Title(rng markov.Rand) (string, error) {
	title, err := c.titles.GenerateBounded(rng, c.config.TitleSteps)
	if err != nil {
		return "", fmt.Errorf("title: %w", err)
	}
	return strings.TrimSuffix(title, "."), nil
}

// WriteRecipe writes a title line, then streams the body sentences to w as
// their tokens are sampled, and ends the body with a newline. A failure part
// way through the body leaves the tokens already written in w.
func (c *Cookbook) WriteRecipe(ctx context.Context, rng markov.Rand, w io.Writer) error {
	title, err := c.Title(rng)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	first := true
	for i := range c.config.BodySentences {
		if err := c.streamSentence(ctx, rng, w, &first); err != nil {
			return fmt.Errorf("body sentence %d: %w", i+1, err)
		}
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// streamSentence copies one streamed sentence to w, separating tokens with
// single spaces.
func (c *Cookbook) streamSentence(ctx context.Context, rng markov.Rand, w io.Writer, first *bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tokens, errc := c.bodies.Stream(ctx, rng, markov.WithMaxSteps(c.config.MaxSteps))
	var writeErr error
	for token := range tokens {
		if writeErr != nil {
			continue // drain until the stream sees the cancellation
		}
		sep := " "
		if *first {
			sep = ""
			*first = false
		}
		if _, writeErr = io.WriteString(w, sep+token.Text); writeErr != nil {
			cancel()
		}
	}
	streamErr := <-errc
	if writeErr != nil {
		return writeErr
	}
	return streamErr
}

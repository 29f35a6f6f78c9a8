package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/cardforge-labs/cardforge-cli/internal/cardparse"
	"github.com/cardforge-labs/cardforge-cli/internal/core/domain"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driven"
	"github.com/cardforge-labs/cardforge-cli/internal/core/ports/driving"
	"github.com/cardforge-labs/cardforge-cli/internal/logger"
)

// Ensure GenerateService implements the interface.
var _ driving.GenerateService = (*GenerateService)(nil)

// NormaliserRegistry selects a normaliser for an input.
type NormaliserRegistry interface {
	// ForMIMEType returns the best normaliser for the MIME type.
	ForMIMEType(mimeType string) (driven.Normaliser, error)

	// DetectMIMEType guesses the MIME type from a file path.
	DetectMIMEType(path string) string
}

// PipelineFactory builds a chunking pipeline for a validated config.
// Construction fails on an invalid config, before any generation work.
type PipelineFactory func(cfg domain.ChunkingConfig) (driven.PostProcessorPipeline, error)

// GenerateService turns an input file or paste into a deck of cards.
type GenerateService struct {
	generator   driven.CardGenerator
	decks       driven.DeckStore
	registry    NormaliserRegistry
	pipelineFor PipelineFactory
	settings    domain.AppSettings

	stdin io.Reader

	mu       sync.Mutex
	progress driving.ChunkProgress
}

// NewGenerateService creates a new generate service.
func NewGenerateService(
	generator driven.CardGenerator,
	decks driven.DeckStore,
	registry NormaliserRegistry,
	pipelineFor PipelineFactory,
	settings domain.AppSettings,
) *GenerateService {
	return &GenerateService{
		generator:   generator,
		decks:       decks,
		registry:    registry,
		pipelineFor: pipelineFor,
		settings:    settings,
		stdin:       os.Stdin,
	}
}

// SetProgress installs a progress callback for subsequent runs.
func (s *GenerateService) SetProgress(fn driving.ChunkProgress) {
	s.mu.Lock()
	s.progress = fn
	s.mu.Unlock()
}

// GenerateFromFile reads, normalises, chunks, and generates cards from
// the file at path. "-" reads stdin.
func (s *GenerateService) GenerateFromFile(ctx context.Context, path string, opts driving.GenerateOptions) (*domain.GenerationReport, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty input path", domain.ErrInvalidInput)
	}

	var content []byte
	var err error
	if path == "-" {
		content, err = io.ReadAll(s.stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	mimeType := s.registry.DetectMIMEType(path)
	logger.Section("Input")
	logger.Debug("Source: %s (%s, %d bytes)", path, mimeType, len(content))

	normaliser, err := s.registry.ForMIMEType(mimeType)
	if err != nil {
		return nil, err
	}

	doc, err := normaliser.Normalise(ctx, &driven.RawInput{
		URI:      path,
		MIMEType: mimeType,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("normalise input: %w", err)
	}

	return s.generate(ctx, doc, opts)
}

// GenerateFromText runs the same pipeline on already-extracted text.
func (s *GenerateService) GenerateFromText(ctx context.Context, title, text string, opts driving.GenerateOptions) (*domain.GenerationReport, error) {
	normaliser, err := s.registry.ForMIMEType("text/plain")
	if err != nil {
		return nil, err
	}

	doc, err := normaliser.Normalise(ctx, &driven.RawInput{
		URI:      "-",
		MIMEType: "text/plain",
		Content:  []byte(text),
	})
	if err != nil {
		return nil, fmt.Errorf("normalise input: %w", err)
	}
	if title != "" {
		doc.Title = title
	}

	return s.generate(ctx, doc, opts)
}

// generate runs the chunk-and-generate pipeline on a normalised document.
func (s *GenerateService) generate(ctx context.Context, doc *domain.Document, opts driving.GenerateOptions) (*domain.GenerationReport, error) {
	chunkCfg := s.settings.Chunking
	if opts.Chunking != nil {
		chunkCfg = *opts.Chunking
	}

	pipeline, err := s.pipelineFor(chunkCfg)
	if err != nil {
		return nil, err
	}

	logger.Section("Chunking")
	chunks, err := pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	logger.Debug("Document %q split into %d chunks", doc.Title, len(chunks))

	totalCards := opts.Cards
	if totalCards <= 0 {
		totalCards = s.settings.Generate.Cards
	}
	if totalCards <= 0 {
		totalCards = domain.DefaultAppSettings().Generate.Cards
	}
	quotas := splitQuota(totalCards, len(chunks))

	concurrency := s.settings.Generate.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	var limiter *rate.Limiter
	if rps := s.settings.Generate.RequestsPerSecond; rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	logger.Section("Card Generation")
	logger.Debug("Model: %s, target cards: %d, concurrency: %d",
		s.generator.ModelName(), totalCards, concurrency)

	results := make([][]cardparse.Pair, len(chunks))
	failures := make(map[int]string)
	var resMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range chunks {
		if quotas[i] == 0 {
			continue
		}
		chunk := chunks[i]
		idx := i
		g.Go(func() error {
			pairs, err := s.generateChunk(gctx, limiter, chunk, quotas[idx])
			if err != nil {
				// Cancellation aborts the run; anything else is a
				// per-chunk failure and the run continues.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warn("Chunk %d failed: %v", chunk.Position, err)
			}

			resMu.Lock()
			if err != nil {
				failures[chunk.Position] = err.Error()
			} else {
				results[idx] = pairs
			}
			resMu.Unlock()

			s.reportProgress(chunk.Position, len(chunks), len(pairs), err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var cards []domain.Card
	for i := range chunks {
		for _, pair := range results[i] {
			cards = append(cards, domain.Card{
				ID:            uuid.NewString(),
				Front:         pair.Front,
				Back:          pair.Back,
				ChunkPosition: chunks[i].Position,
				Position:      len(cards),
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
	}

	report := &domain.GenerationReport{
		Chunks:   len(chunks),
		Cards:    len(cards),
		Failures: failures,
	}

	if len(cards) == 0 {
		return report, fmt.Errorf("%w: all %d chunks failed", domain.ErrNoCards, len(chunks))
	}

	name := opts.DeckName
	if name == "" {
		name = doc.Title
	}
	if name == "" {
		name = "untitled"
	}

	deck := &domain.Deck{
		ID:        uuid.NewString(),
		Name:      name,
		SourceURI: doc.URI,
		Model:     s.generator.ModelName(),
		Cards:     cards,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range deck.Cards {
		deck.Cards[i].DeckID = deck.ID
	}

	if err := s.decks.SaveDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}

	report.DeckID = deck.ID
	logger.Info("Deck %q: %d cards from %d chunks (%d failed)",
		deck.Name, report.Cards, report.Chunks, report.Failed())

	return report, nil
}

// generateChunk requests cards for one chunk, retrying once in strict
// format when the first reply yields nothing parseable.
func (s *GenerateService) generateChunk(ctx context.Context, limiter *rate.Limiter, chunk domain.Chunk, quota int) ([]cardparse.Pair, error) {
	req := driven.CardRequest{
		ChunkText:   chunk.Content,
		CardCount:   quota,
		Temperature: s.settings.Generate.Temperature,
	}

	pairs, err := s.requestAndParse(ctx, limiter, req)
	if err != nil {
		return nil, err
	}

	if len(pairs) == 0 {
		logger.Debug("Chunk %d reply unparseable, retrying in strict format", chunk.Position)
		req.StrictFormat = true
		pairs, err = s.requestAndParse(ctx, limiter, req)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, domain.ErrNoCards
		}
	}

	if len(pairs) > quota {
		pairs = pairs[:quota]
	}
	return validPairs(chunk.Position, pairs), nil
}

// requestAndParse performs one rate-limited model call and parses the reply.
func (s *GenerateService) requestAndParse(ctx context.Context, limiter *rate.Limiter, req driven.CardRequest) ([]cardparse.Pair, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reply, err := s.generator.GenerateCards(ctx, req)
	if err != nil {
		return nil, err
	}
	return cardparse.Parse(reply), nil
}

// reportProgress invokes the progress callback, if one is installed.
func (s *GenerateService) reportProgress(position, total, cards int, err error) {
	s.mu.Lock()
	fn := s.progress
	s.mu.Unlock()
	if fn != nil {
		fn(position, total, cards, err)
	}
}

// validPairs drops pairs that would not survive export validation.
func validPairs(position int, pairs []cardparse.Pair) []cardparse.Pair {
	kept := pairs[:0]
	for _, pair := range pairs {
		card := domain.Card{Front: pair.Front, Back: pair.Back}
		if err := card.Validate(); err != nil {
			logger.Debug("Chunk %d: dropping card: %v", position, err)
			continue
		}
		kept = append(kept, pair)
	}
	return kept
}

// splitQuota distributes the total card budget across chunks, front
// loaded: earlier chunks take the remainder.
func splitQuota(total, chunks int) []int {
	quotas := make([]int, chunks)
	if chunks == 0 || total <= 0 {
		return quotas
	}
	base := total / chunks
	rem := total % chunks
	for i := range quotas {
		quotas[i] = base
		if i < rem {
			quotas[i]++
		}
	}
	return quotas
}

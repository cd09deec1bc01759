package gates

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/extract-gates/internal/errors"
	"github.com/NielsdaWheelz/extract-gates/internal/story"
)

// Story keys read by the extractor.
const (
	keyVerification = "verification"
	keyGates        = "gates"
	keyName         = "name"
	keyType         = "type"
	keyCommand      = "command"
	keyExpectedExit = "expected_exit"
)

// Extractor reads gates from story files.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor returns an Extractor that logs to logger (nil means no logging).
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract loads the story at path and returns its gates in source order.
// On failure the result is nil and the error carries E_FILE_NOT_FOUND,
// E_MALFORMED_INPUT, or E_INTERNAL.
func (x *Extractor) Extract(path string) ([]Gate, error) {
	doc, err := story.Load(path)
	if err != nil {
		x.logger.Debug("story load failed",
			zap.String("path", path),
			zap.String("code", string(errors.GetCode(err))))
		return nil, err
	}

	gates, err := FromDocument(doc)
	if err != nil {
		if e, ok := errors.AsError(err); ok {
			if e.Details == nil {
				e.Details = map[string]string{}
			}
			e.Details["path"] = path
		}
		x.logger.Debug("story traversal failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	x.logger.Debug("gates extracted", zap.String("path", path), zap.Int("count", len(gates)))
	return gates, nil
}

// Extract reads gates from the story at path without logging.
func Extract(path string) ([]Gate, error) {
	return NewExtractor(nil).Extract(path)
}

// FromDocument builds gates from a parsed story.
// An empty document, a missing or non-mapping verification section, and a
// missing or non-sequence gate list all yield no gates. A non-mapping root or
// a non-mapping gate entry is an E_INTERNAL error and yields no gates.
func FromDocument(doc story.Document) ([]Gate, error) {
	if doc.Empty() {
		return nil, nil
	}

	root := doc.Root()
	if k := root.Kind(); k != story.KindMapping {
		return nil, errors.NewWithDetails(errors.EInternal,
			fmt.Sprintf("story document must be a mapping, got %s", k),
			map[string]string{"kind": k.String()})
	}

	entries := root.Mapping(keyVerification).Sequence(keyGates)
	if len(entries) == 0 {
		return nil, nil
	}

	gates := make([]Gate, 0, len(entries))
	for i, entry := range entries {
		if k := entry.Kind(); k != story.KindMapping {
			return nil, errors.NewWithDetails(errors.EInternal,
				fmt.Sprintf("verification.gates[%d] must be a mapping, got %s", i, k),
				map[string]string{"index": strconv.Itoa(i), "kind": k.String()})
		}
		gates = append(gates, fromEntry(entry))
	}
	return gates, nil
}

func fromEntry(entry story.Value) Gate {
	return Gate{
		Name:         entry.StringOr(keyName, DefaultName),
		Type:         entry.StringOr(keyType, DefaultType),
		Command:      entry.StringOr(keyCommand, DefaultCommand),
		ExpectedExit: entry.StringOr(keyExpectedExit, DefaultExpectedExit),
	}
}

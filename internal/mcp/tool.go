package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/spellbee/internal/model"
	"github.com/verte-zerg/spellbee/internal/toolerr"
)

// LongestWordTool is the name of the only tool this server exposes.
const LongestWordTool = "get_longest_word"

const longestWordDescription = "Get the longest word from the word list that can be spelled " +
	"using only the given letters (letters may repeat) and has not been used yet. " +
	"Returns the word, or \"No valid words found\" when nothing matches."

type longestWordArgs struct {
	UsedWords    []string `json:"used_words" validate:"required"`
	LettersArray []string `json:"letters_array" validate:"required,dive,len=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		return name
	})
	return v
}

func stringArraySchema(description string, items map[string]any) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       items,
		"description": description,
	}
}

func longestWordToolDescription() toolDescription {
	return toolDescription{
		Name:        LongestWordTool,
		Title:       "Longest word",
		Description: longestWordDescription,
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"used_words": stringArraySchema("Words already used; they are never returned.",
					map[string]any{"type": "string"}),
				"letters_array": stringArraySchema("Allowed letters, one character per entry. Case-insensitive.",
					map[string]any{"type": "string", "minLength": 1, "maxLength": 1}),
			},
			"required": []string{"used_words", "letters_array"},
		},
		Annotations: &toolAnnotations{
			ReadOnlyHint:    boolPtr(true),
			DestructiveHint: boolPtr(false),
			IdempotentHint:  boolPtr(true),
			OpenWorldHint:   boolPtr(false),
		},
	}
}

func decodeLongestWordArgs(raw json.RawMessage) (longestWordArgs, error) {
	var args longestWordArgs
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return longestWordArgs{}, toolerr.InvalidArgument("invalid arguments: %w", err)
		}
	}
	if err := validate.Struct(args); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Tag() == "required" {
				return longestWordArgs{}, toolerr.InvalidArgument("missing required argument %s", fe.Field())
			}
			return longestWordArgs{}, toolerr.InvalidArgument("%s must be a single character, got %q", fe.Field(), fe.Value())
		}
		return longestWordArgs{}, toolerr.InvalidArgument("invalid arguments: %w", err)
	}
	return args, nil
}

func (s *Server) runLongestWord(ctx context.Context, raw json.RawMessage) (string, error) {
	args, err := decodeLongestWordArgs(raw)
	if err != nil {
		return "", err
	}
	answer, err := s.solver.Solve(ctx, model.Query{
		Source:    model.SourceTool,
		UsedWords: args.UsedWords,
		Letters:   args.LettersArray,
	})
	if err != nil {
		return "", err
	}
	return answer.Word, nil
}

func boolPtr(value bool) *bool {
	return &value
}

package questionset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-questionnaire/pkg/questionnaire"
)

// Parser decodes YAML or JSON question-set documents. Two shapes are
// accepted: a document with a `sections` list of {key, name, questions}
// entries, and a flat mapping of section key to question list. Key order is
// preserved in both.
type Parser struct{}

var _ questionnaire.Parser = Parser{}

// NewParser returns the YAML/JSON question-set parser.
func NewParser() Parser { return Parser{} }

// Parse implements questionnaire.Parser.
func (Parser) Parse(ctx context.Context, doc questionnaire.Document) (questionnaire.QuestionSet, error) {
	select {
	case <-ctx.Done():
		return questionnaire.QuestionSet{}, ctx.Err()
	default:
	}
	set, err := ParseBytes(doc.Raw)
	if err != nil && doc.Source != nil {
		return questionnaire.QuestionSet{}, fmt.Errorf("%w (source %s)", err, doc.Source.Location())
	}
	return set, err
}

// ParseBytes decodes raw into an ordered, validated QuestionSet.
func ParseBytes(raw []byte) (questionnaire.QuestionSet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return questionnaire.QuestionSet{}, fmt.Errorf("questionset: decode: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return questionnaire.QuestionSet{}, errors.New("questionset: document is empty")
	}
	body := root.Content[0]
	if body.Kind != yaml.MappingNode {
		return questionnaire.QuestionSet{}, fmt.Errorf("questionset: line %d: expected a mapping at the document root", body.Line)
	}

	var (
		set questionnaire.QuestionSet
		err error
	)
	if sections := mappingValue(body, "sections"); sections != nil && sections.Kind == yaml.SequenceNode {
		set, err = parseStructured(body, sections)
	} else {
		set, err = parseFlat(body)
	}
	if err != nil {
		return questionnaire.QuestionSet{}, err
	}
	if len(set.Sections) == 0 {
		return questionnaire.QuestionSet{}, errors.New("questionset: no sections defined")
	}
	if err := set.Validate(); err != nil {
		return questionnaire.QuestionSet{}, err
	}
	return set, nil
}

type sectionDoc struct {
	Key       string   `yaml:"key"`
	Name      string   `yaml:"name"`
	Questions []string `yaml:"questions"`
}

func parseStructured(body, sections *yaml.Node) (questionnaire.QuestionSet, error) {
	set := questionnaire.QuestionSet{}
	if title := mappingValue(body, "title"); title != nil {
		if title.Kind != yaml.ScalarNode {
			return set, fmt.Errorf("questionset: line %d: title must be a string", title.Line)
		}
		set.Title = strings.TrimSpace(title.Value)
	}

	for _, item := range sections.Content {
		var entry sectionDoc
		if err := item.Decode(&entry); err != nil {
			return set, fmt.Errorf("questionset: line %d: %w", item.Line, err)
		}
		questions, err := cleanQuestions(entry.Key, entry.Questions)
		if err != nil {
			return set, err
		}
		set.Sections = append(set.Sections, questionnaire.Section{
			Key:       strings.TrimSpace(entry.Key),
			Name:      strings.TrimSpace(entry.Name),
			Questions: questions,
		})
	}
	return set, nil
}

func parseFlat(body *yaml.Node) (questionnaire.QuestionSet, error) {
	set := questionnaire.QuestionSet{}
	for i := 0; i+1 < len(body.Content); i += 2 {
		keyNode, valueNode := body.Content[i], body.Content[i+1]
		key := strings.TrimSpace(keyNode.Value)

		if key == "title" && valueNode.Kind == yaml.ScalarNode {
			set.Title = strings.TrimSpace(valueNode.Value)
			continue
		}
		if valueNode.Kind != yaml.SequenceNode {
			return set, fmt.Errorf("questionset: line %d: section %q must list questions", valueNode.Line, key)
		}

		var raw []string
		if err := valueNode.Decode(&raw); err != nil {
			return set, fmt.Errorf("questionset: line %d: %w", valueNode.Line, err)
		}
		questions, err := cleanQuestions(key, raw)
		if err != nil {
			return set, err
		}
		set.Sections = append(set.Sections, questionnaire.Section{Key: key, Questions: questions})
	}
	return set, nil
}

func cleanQuestions(key string, raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for idx, question := range raw {
		trimmed := strings.TrimSpace(question)
		if trimmed == "" {
			return nil, fmt.Errorf("questionset: section %q question %d is blank", key, idx+1)
		}
		out = append(out, trimmed)
	}
	return out, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

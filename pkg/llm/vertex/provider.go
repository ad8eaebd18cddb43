package vertex

import (
	"context"
	"strings"

	"lessoncraft-be/pkg/llm"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// SessionFactory is the part of gollem.LLMClient this provider needs.
type SessionFactory interface {
	NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

// Provider runs one gollem session per call. System messages become the
// session system prompt; the remaining turns are flattened into one input.
type Provider struct {
	client SessionFactory
}

var (
	_ llm.LLMProvider = (*Provider)(nil)
	_ SessionFactory  = (gollem.LLMClient)(nil)
)

func NewProvider(client SessionFactory) *Provider {
	return &Provider{client: client}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	var system []string
	var turns []string
	for _, msg := range history {
		if msg.Role == llm.RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		if len(history) == 1 {
			turns = append(turns, msg.Content)
			continue
		}
		turns = append(turns, msg.Role+": "+msg.Content)
	}

	var sessionOpts []gollem.SessionOption
	if len(system) > 0 {
		sessionOpts = append(sessionOpts, gollem.WithSessionSystemPrompt(strings.Join(system, "\n\n")))
	}

	session, err := p.client.NewSession(ctx, sessionOpts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(strings.Join(turns, "\n\n")))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned no text")
	}

	return strings.Join(resp.Texts, ""), nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

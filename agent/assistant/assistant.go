package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/contract"
	sessionx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/session"
	toolx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/tool"
)

const (
	defaultHistoryWindow = 6
	defaultMaxToolRounds = 4
)

// ModelBuilder constructs the chat model the assistant drives. Satisfied by
// openrouterx.Config.
type ModelBuilder interface {
	New(ctx context.Context) (einomodel.ToolCallingChatModel, error)
}

type Config struct {
	// HistoryWindow is how many recent turns are replayed to the model.
	// The session store keeps the full thread regardless.
	HistoryWindow int
	// MaxToolRounds caps tool-invocation round trips per question.
	MaxToolRounds int
}

// Assistant is the orchestration loop: it combines a user question with the
// stored thread history, lets the model issue tool calls through the
// gateway, and appends the exchange back onto the thread.
type Assistant struct {
	model         einomodel.ToolCallingChatModel
	executor      toolx.Executor
	sessions      contractx.SessionStore
	systemPrompt  string
	historyWindow int
	maxToolRounds int
}

func New(
	ctx context.Context,
	builder ModelBuilder,
	gateway *toolx.Gateway,
	sessions contractx.SessionStore,
	systemPrompt string,
	cfg Config,
) (*Assistant, error) {
	if builder == nil {
		return nil, errors.New("model builder is required")
	}
	if gateway == nil {
		return nil, errors.New("tool gateway is required")
	}
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: system prompt is empty", contractx.ErrValidation)
	}

	chatModel, err := builder.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create chat model: %v", contractx.ErrModelInvoke, err)
	}
	toolModel, err := chatModel.WithTools(gateway.Infos())
	if err != nil {
		return nil, fmt.Errorf("%w: bind catalog tools: %v", contractx.ErrModelInvoke, err)
	}

	historyWindow := cfg.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}
	maxToolRounds := cfg.MaxToolRounds
	if maxToolRounds <= 0 {
		maxToolRounds = defaultMaxToolRounds
	}

	return &Assistant{
		model:         toolModel,
		executor:      gateway.Executor(),
		sessions:      sessions,
		systemPrompt:  strings.TrimSpace(systemPrompt),
		historyWindow: historyWindow,
		maxToolRounds: maxToolRounds,
	}, nil
}

// Answer handles one (user, query) pair. The triggering turn, any tool
// invocations, and the final answer are appended to the user's thread only
// after the answer is produced, so a failed request leaves the thread
// untouched.
func (a *Assistant) Answer(ctx context.Context, userID string, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: query is empty", contractx.ErrValidation)
	}

	history, err := a.sessions.History(ctx, userID)
	if err != nil {
		return "", err
	}

	messages := a.buildMessages(history, query)
	pending := []sessionx.Turn{sessionx.NewTurn(sessionx.RoleUser, query)}

	for round := 0; round <= a.maxToolRounds; round++ {
		msg, err := a.model.Generate(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("%w: generate: %v", contractx.ErrModelInvoke, err)
		}

		if len(msg.ToolCalls) == 0 {
			reply := strings.TrimSpace(msg.Content)
			if reply == "" {
				return "", fmt.Errorf("%w: model returned an empty answer", contractx.ErrSchemaViolation)
			}
			pending = append(pending, sessionx.NewTurn(sessionx.RoleAssistant, reply))
			if err := a.appendTurns(ctx, userID, pending); err != nil {
				return "", err
			}
			return reply, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			toolMsg, turn, err := a.runToolCall(ctx, call)
			if err != nil {
				return "", err
			}
			messages = append(messages, toolMsg)
			pending = append(pending, turn)
		}
	}

	return "", fmt.Errorf("%w: tool loop exceeded %d rounds", contractx.ErrSchemaViolation, a.maxToolRounds)
}

// Reset clears the user's conversation thread.
func (a *Assistant) Reset(ctx context.Context, userID string) error {
	return a.sessions.Clear(ctx, userID)
}

func (a *Assistant) runToolCall(ctx context.Context, call schema.ToolCall) (*schema.Message, sessionx.Turn, error) {
	name := strings.TrimSpace(call.Function.Name)
	if name == "" {
		return nil, sessionx.Turn{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, sessionx.Turn{}, fmt.Errorf("%w: invalid args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
		}
	}

	result, err := a.executor(ctx, name, args)
	if err != nil {
		return nil, sessionx.Turn{}, err
	}
	log.Debug().Str("tool", name).Bool("ok", result.OK).Msg("tool invoked")

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, sessionx.Turn{}, fmt.Errorf("%w: marshal tool result: %v", contractx.ErrValidation, err)
	}

	return schema.ToolMessage(string(payload), call.ID),
		sessionx.NewTurn(sessionx.RoleTool, string(payload)),
		nil
}

// buildMessages replays the most recent user/assistant turns inside the
// history window; tool turns stay in the thread for audit but are not fed
// back to the model.
func (a *Assistant) buildMessages(history []sessionx.Turn, query string) []*schema.Message {
	messages := []*schema.Message{schema.SystemMessage(a.systemPrompt)}

	recent := history
	if len(recent) > a.historyWindow {
		recent = recent[len(recent)-a.historyWindow:]
	}
	for _, turn := range recent {
		switch turn.Role {
		case sessionx.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Content))
		case sessionx.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		}
	}

	return append(messages, schema.UserMessage(query))
}

func (a *Assistant) appendTurns(ctx context.Context, userID string, turns []sessionx.Turn) error {
	for _, turn := range turns {
		if err := a.sessions.Append(ctx, userID, turn); err != nil {
			return err
		}
	}
	return nil
}

package authsdk

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
)

// completeFunc adopts the session a finished attempt created. client is the
// record returned alongside the finishing step.
type completeFunc func(ctx context.Context, client *ClientRecord, sessionID string) error

// flowBase is the plumbing shared by sign-in and sign-up flows.
type flowBase struct {
	requester Requester
	complete  completeFunc
	logger    *slog.Logger
}

// do sends one flow step and returns the envelope. When the provider
// rejects the step and attaches the client record, that record is returned
// too so the caller can sync its attempt.
func (f *flowBase) do(ctx context.Context, req Request) (*Envelope, *ClientRecord, error) {
	env, err := f.requester.Request(ctx, req)
	if err == nil {
		return env, nil, nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) && len(pe.client) > 0 && string(pe.client) != "null" {
		if client, derr := decodeResource[ClientRecord](pe.client); derr == nil {
			return nil, client, err
		}
	}
	return nil, nil, err
}

// finish hands the created session to the completion hook.
func (f *flowBase) finish(ctx context.Context, env *Envelope, sessionID string) error {
	client, err := decodeResource[ClientRecord](env.Client)
	if err != nil {
		return err
	}
	return f.complete(ctx, client, sessionID)
}

func form(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			v.Set(pairs[i], pairs[i+1])
		}
	}
	return v
}

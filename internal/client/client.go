package client

import (
	"context"
	"fmt"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

// callEnvelope issues a gateway request and unwraps the commerce API's
// uniform {status, message, data} envelope. Transport and auth failures
// come back as gateway errors; business failures stay inside the envelope
// for the caller to branch on.
func callEnvelope(ctx context.Context, g *gateway.Gateway, path string, opts *gateway.Options) (*model.Envelope, error) {
	res, err := g.Request(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	var env model.Envelope
	if err := res.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope from %s: %w", path, err)
	}
	return &env, nil
}

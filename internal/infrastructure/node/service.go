// Package node implements ports.Node with the JSON-RPC interface exposed by
// a network node over websocket.
package node

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const handshakeTimeout = 10 * time.Second

type service struct {
	url    string
	dialer *websocket.Dialer
}

// NewService returns a Node submitting transactions to the given websocket
// endpoint. A connection is opened for every submission.
func NewService(url string) (ports.Node, error) {
	if len(strings.TrimSpace(url)) <= 0 {
		return nil, ErrNullUrl
	}
	return &service{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
	}, nil
}

// SubmitTransaction sends the serialized transaction to the node and returns
// the hash it was accepted with. A transaction refused by the node results
// in ports.ErrSubmissionRejected wrapping the node's reason. The call is
// bounded only by ctx.
func (s *service) SubmitTransaction(
	ctx context.Context, tx []byte,
) (string, error) {
	if len(tx) <= 0 {
		return "", ErrNullTransaction
	}

	req := rpcRequest{
		JsonRpc: jsonrpcVersion,
		Id:      uuid.New().String(),
		Method:  submitExtrinsicMethod,
		Params:  []interface{}{"0x" + hex.EncodeToString(tx)},
	}
	res, err := s.call(ctx, req)
	if err != nil {
		return "", err
	}
	if res.Error != nil {
		return "", fmt.Errorf("%w: %s", ports.ErrSubmissionRejected, res.Error)
	}

	log.WithField("txhash", res.Result).Debug("transaction accepted by node")
	return strings.TrimPrefix(res.Result, "0x"), nil
}

func (s *service) call(ctx context.Context, req rpcRequest) (*rpcResponse, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to node: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		//nolint
		conn.SetWriteDeadline(deadline)
		//nolint
		conn.SetReadDeadline(deadline)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(req); err != nil {
		return nil, s.wrapErr(ctx, err)
	}

	// notifications and responses to other requests are skipped.
	for {
		var res rpcResponse
		if err := conn.ReadJSON(&res); err != nil {
			return nil, s.wrapErr(ctx, err)
		}
		if res.Id != req.Id {
			continue
		}

		//nolint
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		return &res, nil
	}
}

func (s *service) wrapErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if d, ok := ctx.Deadline(); ok && !time.Now().Before(d) {
		return context.DeadlineExceeded
	}
	return fmt.Errorf("node connection: %w", err)
}

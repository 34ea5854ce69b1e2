package client

import (
	"context"
	"encoding/json"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client talks to one full node.
type Client struct {
	conn *grpc.ClientConn
	svc  service.FullNodeServiceClient
}

// NewClient connects to the full node at addr. Extra options are appended after the
// insecure transport credentials.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", addr)
	}
	return &Client{
		conn: conn,
		svc:  service.NewFullNodeServiceClient(conn),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Balance(ctx context.Context, address string) (int64, error) {
	res, err := c.svc.GetBalance(ctx, wrapperspb.String(address))
	if err != nil {
		return 0, errors.Wrap(err, "get balance")
	}
	return res.GetValue(), nil
}

func (c *Client) Height(ctx context.Context) (int64, error) {
	res, err := c.svc.GetHeight(ctx, &emptypb.Empty{})
	if err != nil {
		return 0, errors.Wrap(err, "get height")
	}
	return res.GetValue(), nil
}

func (c *Client) Block(ctx context.Context, index int64) (model.BlockView, error) {
	res, err := c.svc.GetBlock(ctx, wrapperspb.Int64(index))
	if err != nil {
		return model.BlockView{}, errors.Wrapf(err, "get block %d", index)
	}
	return structToView(res.AsMap())
}

func (c *Client) IsValid(ctx context.Context) (bool, error) {
	res, err := c.svc.IsValid(ctx, &emptypb.Empty{})
	if err != nil {
		return false, errors.Wrap(err, "is valid")
	}
	return res.GetValue(), nil
}

// Mine asks the node to mine its pending transactions.
func (c *Client) Mine(ctx context.Context) (model.BlockView, error) {
	res, err := c.svc.Mine(ctx, &emptypb.Empty{})
	if err != nil {
		return model.BlockView{}, errors.Wrap(err, "mine")
	}
	return structToView(res.AsMap())
}

// structToView decodes a block projection sent as a protobuf Struct.
func structToView(fields map[string]interface{}) (model.BlockView, error) {
	var v model.BlockView
	raw, err := json.Marshal(fields)
	if err != nil {
		return v, errors.Wrap(err, "encode block")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, errors.Wrap(err, "decode block")
	}
	return v, nil
}

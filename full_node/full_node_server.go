package full_node

import (
	"context"
	"encoding/json"
	"net"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FullNodeServer exposes a full node over gRPC.
type FullNodeServer struct {
	service.UnimplementedFullNodeServiceServer
	fullNode *FullNode
	logger   *zap.Logger
}

func NewFullNodeServer(f *FullNode) *FullNodeServer {
	return &FullNodeServer{
		fullNode: f,
		logger:   f.logger,
	}
}

func (sev *FullNodeServer) FullNode() *FullNode {
	return sev.fullNode
}

// Serve starts serving on lis in the background. The channel receives what grpc Serve
// returns once the server stops.
func (sev *FullNodeServer) Serve(lis net.Listener) (*grpc.Server, <-chan error) {
	grpcServer := grpc.NewServer()
	service.RegisterFullNodeServiceServer(grpcServer, sev)
	done := make(chan error, 1)
	go func() {
		sev.logger.Info("serving full node", zap.String("addr", lis.Addr().String()))
		done <- grpcServer.Serve(lis)
	}()
	return grpcServer, done
}

func (sev *FullNodeServer) GetBalance(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "address is missing")
	}
	balance, err := sev.fullNode.GetBalance(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Int64(balance.Amount), nil
}

func (sev *FullNodeServer) GetHeight(ctx context.Context, req *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(sev.fullNode.GetHeight()), nil
}

func (sev *FullNodeServer) GetBlock(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	b, err := sev.fullNode.GetBlock(req.GetValue())
	if errors.Is(err, model.ErrBlockNotFound) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return BlockToStruct(b)
}

func (sev *FullNodeServer) IsValid(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(sev.fullNode.IsValid()), nil
}

// Mine one block out of the pending pool.
func (sev *FullNodeServer) Mine(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error) {
	b, err := sev.fullNode.CreateNewBlock()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return BlockToStruct(b)
}

// BlockToStruct converts the JSON projection of a block to a protobuf Struct.
func BlockToStruct(b *model.Block) (*structpb.Struct, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

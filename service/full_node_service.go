// Package service declares the gRPC surface of a full node. Messages are protobuf well-known
// types, so no generated code is needed.
package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	FullNodeService_ServiceName = "ledger.FullNodeService"

	FullNodeService_GetBalance_FullMethodName = "/ledger.FullNodeService/GetBalance"
	FullNodeService_GetHeight_FullMethodName  = "/ledger.FullNodeService/GetHeight"
	FullNodeService_GetBlock_FullMethodName   = "/ledger.FullNodeService/GetBlock"
	FullNodeService_IsValid_FullMethodName    = "/ledger.FullNodeService/IsValid"
	FullNodeService_Mine_FullMethodName       = "/ledger.FullNodeService/Mine"
)

// FullNodeServiceClient reads the ledger of a full node and asks it to mine.
type FullNodeServiceClient interface {
	// Balance of an address, in the ledger currency.
	GetBalance(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	// Index of the last block.
	GetHeight(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	// Projection of the block at an index.
	GetBlock(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	IsValid(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	// Mines the pending transactions and returns the projection of the new block.
	Mine(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type fullNodeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFullNodeServiceClient(cc grpc.ClientConnInterface) FullNodeServiceClient {
	return &fullNodeServiceClient{cc}
}

func (c *fullNodeServiceClient) GetBalance(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, FullNodeService_GetBalance_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) GetHeight(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, FullNodeService_GetHeight_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) GetBlock(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullNodeService_GetBlock_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) IsValid(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, FullNodeService_IsValid_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) Mine(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullNodeService_Mine_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// FullNodeServiceServer is implemented by full nodes. Embed
// UnimplementedFullNodeServiceServer to stay forward compatible.
type FullNodeServiceServer interface {
	GetBalance(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error)
	GetHeight(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	GetBlock(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	IsValid(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	Mine(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	mustEmbedUnimplementedFullNodeServiceServer()
}

type UnimplementedFullNodeServiceServer struct{}

func (UnimplementedFullNodeServiceServer) GetBalance(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedFullNodeServiceServer) GetHeight(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetHeight not implemented")
}
func (UnimplementedFullNodeServiceServer) GetBlock(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBlock not implemented")
}
func (UnimplementedFullNodeServiceServer) IsValid(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method IsValid not implemented")
}
func (UnimplementedFullNodeServiceServer) Mine(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Mine not implemented")
}
func (UnimplementedFullNodeServiceServer) mustEmbedUnimplementedFullNodeServiceServer() {}

func RegisterFullNodeServiceServer(s grpc.ServiceRegistrar, srv FullNodeServiceServer) {
	s.RegisterService(&FullNodeService_ServiceDesc, srv)
}

func _FullNodeService_GetBalance_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FullNodeServiceServer).GetBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullNodeService_GetBalance_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FullNodeServiceServer).GetBalance(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _FullNodeService_GetHeight_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FullNodeServiceServer).GetHeight(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullNodeService_GetHeight_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FullNodeServiceServer).GetHeight(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _FullNodeService_GetBlock_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FullNodeServiceServer).GetBlock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullNodeService_GetBlock_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FullNodeServiceServer).GetBlock(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _FullNodeService_IsValid_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FullNodeServiceServer).IsValid(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullNodeService_IsValid_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FullNodeServiceServer).IsValid(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _FullNodeService_Mine_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FullNodeServiceServer).Mine(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullNodeService_Mine_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FullNodeServiceServer).Mine(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var FullNodeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: FullNodeService_ServiceName,
	HandlerType: (*FullNodeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetBalance", Handler: _FullNodeService_GetBalance_Handler},
		{MethodName: "GetHeight", Handler: _FullNodeService_GetHeight_Handler},
		{MethodName: "GetBlock", Handler: _FullNodeService_GetBlock_Handler},
		{MethodName: "IsValid", Handler: _FullNodeService_IsValid_Handler},
		{MethodName: "Mine", Handler: _FullNodeService_Mine_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/full_node_service",
}

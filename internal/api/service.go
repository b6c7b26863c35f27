package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "zkvault.v1.VaultService"

const (
	VaultService_Ping_FullMethodName         = "/" + ServiceName + "/Ping"
	VaultService_Signup_FullMethodName       = "/" + ServiceName + "/Signup"
	VaultService_Login_FullMethodName        = "/" + ServiceName + "/Login"
	VaultService_Logout_FullMethodName       = "/" + ServiceName + "/Logout"
	VaultService_GetSalt_FullMethodName      = "/" + ServiceName + "/GetSalt"
	VaultService_ListRecords_FullMethodName  = "/" + ServiceName + "/ListRecords"
	VaultService_AddRecord_FullMethodName    = "/" + ServiceName + "/AddRecord"
	VaultService_UpdateRecord_FullMethodName = "/" + ServiceName + "/UpdateRecord"
	VaultService_DeleteRecord_FullMethodName = "/" + ServiceName + "/DeleteRecord"
)

// VaultServiceServer is implemented by the server.
type VaultServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error)
	AddRecord(context.Context, *AddRecordRequest) (*AddRecordResponse, error)
	UpdateRecord(context.Context, *UpdateRecordRequest) (*UpdateRecordResponse, error)
	DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error)
}

// UnimplementedVaultServiceServer answers every method with Unimplemented.
// Embed it by value.
type UnimplementedVaultServiceServer struct{}

func (UnimplementedVaultServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedVaultServiceServer) Signup(context.Context, *SignupRequest) (*SignupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedVaultServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedVaultServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedVaultServiceServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedVaultServiceServer) ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecords not implemented")
}
func (UnimplementedVaultServiceServer) AddRecord(context.Context, *AddRecordRequest) (*AddRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddRecord not implemented")
}
func (UnimplementedVaultServiceServer) UpdateRecord(context.Context, *UpdateRecordRequest) (*UpdateRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateRecord not implemented")
}
func (UnimplementedVaultServiceServer) DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteRecord not implemented")
}

func RegisterVaultServiceServer(s grpc.ServiceRegistrar, srv VaultServiceServer) {
	s.RegisterService(&VaultService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(VaultServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VaultServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VaultServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// VaultService_ServiceDesc describes the service for grpc.ServiceRegistrar.
var VaultService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VaultServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(VaultService_Ping_FullMethodName, VaultServiceServer.Ping)},
		{MethodName: "Signup", Handler: unaryHandler(VaultService_Signup_FullMethodName, VaultServiceServer.Signup)},
		{MethodName: "Login", Handler: unaryHandler(VaultService_Login_FullMethodName, VaultServiceServer.Login)},
		{MethodName: "Logout", Handler: unaryHandler(VaultService_Logout_FullMethodName, VaultServiceServer.Logout)},
		{MethodName: "GetSalt", Handler: unaryHandler(VaultService_GetSalt_FullMethodName, VaultServiceServer.GetSalt)},
		{MethodName: "ListRecords", Handler: unaryHandler(VaultService_ListRecords_FullMethodName, VaultServiceServer.ListRecords)},
		{MethodName: "AddRecord", Handler: unaryHandler(VaultService_AddRecord_FullMethodName, VaultServiceServer.AddRecord)},
		{MethodName: "UpdateRecord", Handler: unaryHandler(VaultService_UpdateRecord_FullMethodName, VaultServiceServer.UpdateRecord)},
		{MethodName: "DeleteRecord", Handler: unaryHandler(VaultService_DeleteRecord_FullMethodName, VaultServiceServer.DeleteRecord)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "zkvault/v1/vault",
}

// VaultServiceClient is the client side of VaultService.
type VaultServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error)
	AddRecord(ctx context.Context, in *AddRecordRequest, opts ...grpc.CallOption) (*AddRecordResponse, error)
	UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*UpdateRecordResponse, error)
	DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error)
}

type vaultServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewVaultServiceClient returns a client that always selects the JSON codec.
func NewVaultServiceClient(cc grpc.ClientConnInterface) VaultServiceClient {
	return &vaultServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *vaultServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, VaultService_Ping_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, VaultService_Signup_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, VaultService_Login_FullMethodName, in, opts)
}

func (c *vaultServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, VaultService_Logout_FullMethodName, in, opts)
}

func (c *vaultServiceClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, VaultService_GetSalt_FullMethodName, in, opts)
}

func (c *vaultServiceClient) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error) {
	return invoke[ListRecordsResponse](ctx, c.cc, VaultService_ListRecords_FullMethodName, in, opts)
}

func (c *vaultServiceClient) AddRecord(ctx context.Context, in *AddRecordRequest, opts ...grpc.CallOption) (*AddRecordResponse, error) {
	return invoke[AddRecordResponse](ctx, c.cc, VaultService_AddRecord_FullMethodName, in, opts)
}

func (c *vaultServiceClient) UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*UpdateRecordResponse, error) {
	return invoke[UpdateRecordResponse](ctx, c.cc, VaultService_UpdateRecord_FullMethodName, in, opts)
}

func (c *vaultServiceClient) DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error) {
	return invoke[DeleteRecordResponse](ctx, c.cc, VaultService_DeleteRecord_FullMethodName, in, opts)
}

package grpc

// proto.go defines the gRPC server interface derived from
// careops/dropout/v1/dropout.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DropoutServiceServer is the server API for DropoutService.
type DropoutServiceServer interface {
	AssessPatient(context.Context, *AssessPatientRequest) (*AssessPatientResponse, error)
	mustEmbedUnimplementedDropoutServiceServer()
}

// UnimplementedDropoutServiceServer provides forward-compatible default implementations.
type UnimplementedDropoutServiceServer struct{}

func (UnimplementedDropoutServiceServer) AssessPatient(context.Context, *AssessPatientRequest) (*AssessPatientResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessPatient not implemented")
}
func (UnimplementedDropoutServiceServer) mustEmbedUnimplementedDropoutServiceServer() {}

// RegisterDropoutServiceServer registers the DropoutServiceServer with the gRPC server.
func RegisterDropoutServiceServer(s *grpclib.Server, srv DropoutServiceServer) {
	s.RegisterService(&_DropoutService_serviceDesc, srv)
}

var _DropoutService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "careops.dropout.v1.DropoutService",
	HandlerType: (*DropoutServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessPatient", Handler: _DropoutService_AssessPatient_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _DropoutService_AssessPatient_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessPatientRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(DropoutServiceServer).AssessPatient(ctx, req)
}

package grpc

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC statuses. Policy errors carry
// the sentinel's text; anything unrecognised is logged and reported as a
// bare internal error so storage details never reach the caller.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch kind := common.KindOf(err); kind {
	case common.KindAlreadyExists:
		return status.Error(codes.AlreadyExists, common.ErrAlreadyExists.Error())
	case common.KindInvalidCredentials:
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case common.KindUnauthorized:
		return status.Error(codes.Unauthenticated, common.ErrUnauthorized.Error())
	case common.KindInvalidToken:
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case common.KindNotFound:
		return status.Error(codes.NotFound, common.ErrNotFound.Error())
	case common.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case common.KindRateLimited:
		return status.Error(codes.ResourceExhausted, common.ErrRateLimited.Error())
	default:
		s.logger.Error(ctx, "request failed", "method", method, "error", err.Error())
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}
}

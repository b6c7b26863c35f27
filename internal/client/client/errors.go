package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotLoggedIn = errors.New("not logged in")
)

// mapError turns a gRPC status into the matching sentinel error.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.AlreadyExists:
		return common.ErrAlreadyExists
	case codes.Unauthenticated, codes.PermissionDenied:
		switch st.Message() {
		case common.ErrInvalidCredentials.Error():
			return common.ErrInvalidCredentials
		case common.ErrInvalidToken.Error():
			return common.ErrInvalidToken
		default:
			return common.ErrUnauthorized
		}
	case codes.NotFound:
		return common.ErrNotFound
	case codes.InvalidArgument:
		detail := strings.TrimPrefix(st.Message(), common.ErrValidation.Error()+": ")
		return fmt.Errorf("%w: %s", common.ErrValidation, detail)
	case codes.ResourceExhausted:
		return common.ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Internal:
		return common.ErrInternal
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

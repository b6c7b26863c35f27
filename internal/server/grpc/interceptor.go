package grpc

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/dmitrijs2005/zkvault/internal/api"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	tokenKey  ctxKey = "token"
)

// publicMethods do not require a session token.
var publicMethods = map[string]struct{}{
	api.VaultService_Ping_FullMethodName:    {},
	api.VaultService_Signup_FullMethodName:  {},
	api.VaultService_Login_FullMethodName:   {},
	api.VaultService_GetSalt_FullMethodName: {},
}

// limitedMethods draw from the per-IP login budget.
var limitedMethods = map[string]struct{}{
	api.VaultService_Signup_FullMethodName: {},
	api.VaultService_Login_FullMethodName:  {},
}

// UserIDFromContext returns the subject placed by the auth interceptor.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func tokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

// bearerToken reads the session token from incoming metadata. The
// "authorization: Bearer <jwt>" form wins over "access_token".
func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
		v := values[0]
		if len(v) >= len(common.BearerPrefix) && strings.EqualFold(v[:len(common.BearerPrefix)], common.BearerPrefix) {
			return strings.TrimSpace(v[len(common.BearerPrefix):])
		}
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
		return values[0]
	}
	return ""
}

// peerIP is the rate limit key. Port is dropped so reconnects share a bucket.
func peerIP(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start).String(),
	)
	return resp, err
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.limiter == nil {
		return handler(ctx, req)
	}
	if _, ok := limitedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}
	ip := peerIP(ctx)
	if !s.limiter.Allow(ip) {
		s.logger.Warn(ctx, "rate limited", "method", info.FullMethod, "peer", ip)
		return nil, status.Error(codes.ResourceExhausted, common.ErrRateLimited.Error())
	}
	return handler(ctx, req)
}

func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	token := bearerToken(ctx)
	userID, err := s.users.Verify(ctx, token)
	if err != nil {
		return nil, s.toStatus(ctx, info.FullMethod, err)
	}

	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, tokenKey, token)
	return handler(ctx, req)
}

package grpc

import (
	"context"

	"github.com/dmitrijs2005/zkvault/internal/api"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/cryptox"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Signup(ctx context.Context, req *api.SignupRequest) (*api.SignupResponse, error) {
	user, err := s.users.Signup(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.VaultService_Signup_FullMethodName, err)
	}
	return &api.SignupResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	sess, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.VaultService_Login_FullMethodName, err)
	}
	return &api.LoginResponse{
		AccessToken: sess.Token,
		ExpiresAt:   sess.ExpiresAt,
		KDFSalt:     sess.KDFSalt,
	}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {
	if err := s.users.Logout(ctx, tokenFromContext(ctx)); err != nil {
		return nil, s.toStatus(ctx, api.VaultService_Logout_FullMethodName, err)
	}
	return &api.LogoutResponse{}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *api.GetSaltRequest) (*api.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Email)
	if err != nil {
		return nil, s.toStatus(ctx, api.VaultService_GetSalt_FullMethodName, err)
	}
	return &api.GetSaltResponse{KDFSalt: salt}, nil
}

func (s *GRPCServer) ListRecords(ctx context.Context, req *api.ListRecordsRequest) (*api.ListRecordsResponse, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, api.VaultService_ListRecords_FullMethodName, common.ErrUnauthorized)
	}

	list, err := s.records.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.VaultService_ListRecords_FullMethodName, err)
	}

	out := make([]*api.Record, 0, len(list))
	for _, r := range list {
		out = append(out, recordToAPI(r))
	}
	return &api.ListRecordsResponse{Records: out}, nil
}

func (s *GRPCServer) AddRecord(ctx context.Context, req *api.AddRecordRequest) (*api.AddRecordResponse, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, api.VaultService_AddRecord_FullMethodName, common.ErrUnauthorized)
	}

	rec, err := s.records.Add(ctx, userID, cryptox.Envelope{Ciphertext: req.Ciphertext, Nonce: req.Nonce})
	if err != nil {
		return nil, s.toStatus(ctx, api.VaultService_AddRecord_FullMethodName, err)
	}
	return &api.AddRecordResponse{Record: recordToAPI(rec)}, nil
}

func (s *GRPCServer) UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.UpdateRecordResponse, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, api.VaultService_UpdateRecord_FullMethodName, common.ErrUnauthorized)
	}

	rec, err := s.records.Update(ctx, userID, req.ID, cryptox.Envelope{Ciphertext: req.Ciphertext, Nonce: req.Nonce})
	if err != nil {
		return nil, s.toStatus(ctx, api.VaultService_UpdateRecord_FullMethodName, err)
	}
	return &api.UpdateRecordResponse{Record: recordToAPI(rec)}, nil
}

func (s *GRPCServer) DeleteRecord(ctx context.Context, req *api.DeleteRecordRequest) (*api.DeleteRecordResponse, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, s.toStatus(ctx, api.VaultService_DeleteRecord_FullMethodName, common.ErrUnauthorized)
	}

	if err := s.records.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.VaultService_DeleteRecord_FullMethodName, err)
	}
	return &api.DeleteRecordResponse{}, nil
}

func recordToAPI(r *models.Record) *api.Record {
	return &api.Record{
		ID:         r.ID,
		Ciphertext: r.Ciphertext,
		Nonce:      r.Nonce,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

package mocks

import (
	"context"
	"fmt"

	"github.com/nexahub/nexahub-backend/internal/core/domain/operation"
	"github.com/nexahub/nexahub-backend/internal/core/domain/verification"
)

// VerificationRepositoryMock is a lightweight mock for VerificationRepository
type VerificationRepositoryMock struct {
	GetFn    func(ctx context.Context, email string) (*verification.Record, bool, error)
	PutFn    func(ctx context.Context, record *verification.Record) error
	DeleteFn func(ctx context.Context, email string) error
}

func (m *VerificationRepositoryMock) Get(ctx context.Context, email string) (*verification.Record, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, email)
	}
	return nil, false, nil
}

func (m *VerificationRepositoryMock) Put(ctx context.Context, record *verification.Record) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, record)
	}
	return nil
}

func (m *VerificationRepositoryMock) Delete(ctx context.Context, email string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, email)
	}
	return nil
}

// EmailServiceMock is a lightweight mock for EmailService
type EmailServiceMock struct {
	SendVerificationCodeFn func(ctx context.Context, email, code string) error
}

func (m *EmailServiceMock) SendVerificationCode(ctx context.Context, email, code string) error {
	if m.SendVerificationCodeFn != nil {
		return m.SendVerificationCodeFn(ctx, email, code)
	}
	return nil
}

// ProviderClientMock is a lightweight mock for ProviderClient
type ProviderClientMock struct {
	SendFn func(ctx context.Context, req *operation.ProviderRequest) (*operation.Result, error)
}

func (m *ProviderClientMock) Send(ctx context.Context, req *operation.ProviderRequest) (*operation.Result, error) {
	if m.SendFn != nil {
		return m.SendFn(ctx, req)
	}
	return &operation.Result{Output: "ok"}, nil
}

// VerificationServiceMock is a lightweight mock for VerificationService
type VerificationServiceMock struct {
	IssueCodeFn  func(ctx context.Context, email string) (string, error)
	SendCodeFn   func(ctx context.Context, email string) error
	VerifyCodeFn func(ctx context.Context, email, suppliedCode string) (verification.Outcome, error)
}

func (m *VerificationServiceMock) IssueCode(ctx context.Context, email string) (string, error) {
	if m.IssueCodeFn != nil {
		return m.IssueCodeFn(ctx, email)
	}
	return "123456", nil
}

func (m *VerificationServiceMock) SendCode(ctx context.Context, email string) error {
	if m.SendCodeFn != nil {
		return m.SendCodeFn(ctx, email)
	}
	return nil
}

func (m *VerificationServiceMock) VerifyCode(ctx context.Context, email, suppliedCode string) (verification.Outcome, error) {
	if m.VerifyCodeFn != nil {
		return m.VerifyCodeFn(ctx, email, suppliedCode)
	}
	return verification.OutcomeNotFound, nil
}

// OperationServiceMock is a lightweight mock for OperationService
type OperationServiceMock struct {
	BuildRequestFn func(req *operation.Request) (*operation.ProviderRequest, error)
	DispatchFn     func(ctx context.Context, req *operation.Request) (*operation.Result, error)
}

func (m *OperationServiceMock) BuildRequest(req *operation.Request) (*operation.ProviderRequest, error) {
	if m.BuildRequestFn != nil {
		return m.BuildRequestFn(req)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *OperationServiceMock) Dispatch(ctx context.Context, req *operation.Request) (*operation.Result, error) {
	if m.DispatchFn != nil {
		return m.DispatchFn(ctx, req)
	}
	return &operation.Result{Output: "ok"}, nil
}

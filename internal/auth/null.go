package auth

import (
	"context"

	"spendsmart/internal/core"
)

// NullSession stands in when no session was installed for a request.
// It is never authenticated and every operation fails with "Not initialized".
type NullSession struct{}

var _ Service = NullSession{}

func (NullSession) State() State { return State{} }

func (NullSession) Login(context.Context, string, string) Result {
	return failure(MsgNotInitialized)
}

func (NullSession) Logout(context.Context) {}

func (NullSession) Register(context.Context, core.RegisterRequest) Result {
	return failure(MsgNotInitialized)
}

func (NullSession) VerifyOTP(context.Context, string, string) Result {
	return failure(MsgNotInitialized)
}

func (NullSession) ResendOTP(context.Context, string) Result {
	return failure(MsgNotInitialized)
}

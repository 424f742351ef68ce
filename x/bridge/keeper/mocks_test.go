package keeper_test

import (
	sdkmath "cosmossdk.io/math"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

// custodianMock is a function-field test double for the custodian
// collaborator.
type custodianMock struct {
	BalanceOfFunc func(identity string) sdkmath.Int
	PullFromFunc  func(identity string, amount sdkmath.Int) error
	WrapFunc      func(nativeAmount sdkmath.Int) sdkmath.Int
	PayOutFunc    func(identity string, amount sdkmath.Int) error
}

var _ types.Custodian = (*custodianMock)(nil)

func (m *custodianMock) BalanceOf(identity string) sdkmath.Int {
	if m.BalanceOfFunc != nil {
		return m.BalanceOfFunc(identity)
	}
	return sdkmath.ZeroInt()
}

func (m *custodianMock) PullFrom(identity string, amount sdkmath.Int) error {
	if m.PullFromFunc != nil {
		return m.PullFromFunc(identity, amount)
	}
	return nil
}

func (m *custodianMock) Wrap(nativeAmount sdkmath.Int) sdkmath.Int {
	if m.WrapFunc != nil {
		return m.WrapFunc(nativeAmount)
	}
	return nativeAmount
}

func (m *custodianMock) PayOut(identity string, amount sdkmath.Int) error {
	if m.PayOutFunc != nil {
		return m.PayOutFunc(identity, amount)
	}
	return nil
}

// resolverMock maps recipients through a function field.
type resolverMock struct {
	ResolveFunc func(recipient types.RecipientID) (string, error)
}

var _ types.RecipientResolver = (*resolverMock)(nil)

func (m *resolverMock) Resolve(recipient types.RecipientID) (string, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(recipient)
	}
	return recipient.String(), nil
}

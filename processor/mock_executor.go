// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package processor

import (
	reflect "reflect"

	state "github.com/Fantom-foundation/txexec/state"
	gomock "github.com/golang/mock/gomock"
)

// MockMessageExecutor is a mock of MessageExecutor interface.
type MockMessageExecutor struct {
	ctrl     *gomock.Controller
	recorder *MockMessageExecutorMockRecorder
}

// MockMessageExecutorMockRecorder is the mock recorder for MockMessageExecutor.
type MockMessageExecutorMockRecorder struct {
	mock *MockMessageExecutor
}

// NewMockMessageExecutor creates a new mock instance.
func NewMockMessageExecutor(ctrl *gomock.Controller) *MockMessageExecutor {
	mock := &MockMessageExecutor{ctrl: ctrl}
	mock.recorder = &MockMessageExecutorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMessageExecutor) EXPECT() *MockMessageExecutorMockRecorder {
	return m.recorder
}

// Execute mocks base method.
func (m *MockMessageExecutor) Execute(store state.AccountStore, message Message, context TxContext, block Block) (ExecutionResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Execute", store, message, context, block)
	ret0, _ := ret[0].(ExecutionResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Execute indicates an expected call of Execute.
func (mr *MockMessageExecutorMockRecorder) Execute(store, message, context, block interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Execute", reflect.TypeOf((*MockMessageExecutor)(nil).Execute), store, message, context, block)
}

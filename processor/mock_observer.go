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

	gomock "github.com/golang/mock/gomock"
)

// MockObserver is a mock of Observer interface.
type MockObserver struct {
	ctrl     *gomock.Controller
	recorder *MockObserverMockRecorder
}

// MockObserverMockRecorder is the mock recorder for MockObserver.
type MockObserverMockRecorder struct {
	mock *MockObserver
}

// NewMockObserver creates a new mock instance.
func NewMockObserver(ctrl *gomock.Controller) *MockObserver {
	mock := &MockObserver{ctrl: ctrl}
	mock.recorder = &MockObserverMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockObserver) EXPECT() *MockObserverMockRecorder {
	return m.recorder
}

// AfterTx mocks base method.
func (m *MockObserver) AfterTx(event AfterTxEvent) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AfterTx", event)
}

// AfterTx indicates an expected call of AfterTx.
func (mr *MockObserverMockRecorder) AfterTx(event interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AfterTx", reflect.TypeOf((*MockObserver)(nil).AfterTx), event)
}

// BeforeTx mocks base method.
func (m *MockObserver) BeforeTx(tx *Transaction) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "BeforeTx", tx)
}

// BeforeTx indicates an expected call of BeforeTx.
func (mr *MockObserverMockRecorder) BeforeTx(tx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BeforeTx", reflect.TypeOf((*MockObserver)(nil).BeforeTx), tx)
}

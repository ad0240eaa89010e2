// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"errors"
	"fmt"
	"testing"
)

const errTarget = ConstError("target")

func TestConstError_MessageIsPreserved(t *testing.T) {
	if got := errTarget.Error(); got != "target" {
		t.Errorf("unexpected message: %v", got)
	}
}

func TestConstError_SurvivesWrappingAndJoining(t *testing.T) {
	wrapped := fmt.Errorf("%w: balance 5", errTarget)
	for _, err := range []error{
		errTarget,
		wrapped,
		fmt.Errorf("failed to run transaction 3: %w", wrapped),
		errors.Join(wrapped, errors.New("revert failed")),
	} {
		if !errors.Is(err, errTarget) {
			t.Errorf("%v should match its sentinel", err)
		}
	}
	if errors.Is(ConstError("target "), errTarget) {
		t.Errorf("different messages must not match")
	}
}

// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package common

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Bytes32 is a 32 byte digest or storage slot position.
type Bytes32 ethcommon.Hash

func (b Bytes32) String() string { return hexutil.Encode(b[:]) }
func (b Bytes32) Bytes() []byte  { return b[:] }
func (b Bytes32) IsZero() bool   { return b == Bytes32{} }

// AbbrevString keeps the first and last four bytes, for logs.
func (b Bytes32) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", b[:4], b[28:])
}

// ParseBytes32 parses a 0x prefixed 64 digit hex string.
func ParseBytes32(s string) (Bytes32, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return Bytes32{}, errors.Wrap(err, "parse bytes32")
	}
	if len(raw) != len(Bytes32{}) {
		return Bytes32{}, errors.Errorf("parse bytes32: invalid length %d", len(raw))
	}
	return Bytes32(raw), nil
}

// BytesToBytes32 left pads b to 32 bytes, keeping the rightmost 32 if longer.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(ethcommon.BytesToHash(b))
}

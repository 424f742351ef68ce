package keeper

import (
	"time"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

// SystemClock is a wall-clock Clock in unix seconds.
type SystemClock struct{}

var _ types.Clock = SystemClock{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

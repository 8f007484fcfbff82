package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedChainID struct {
	id  *big.Int
	err error
}

func (f fixedChainID) ChainID(context.Context) (*big.Int, error) { return f.id, f.err }

func TestVerifyChainID(t *testing.T) {
	require.NoError(t, VerifyChainID(context.Background(), fixedChainID{id: big.NewInt(84532)}, 84532))

	err := VerifyChainID(context.Background(), fixedChainID{id: big.NewInt(8453)}, 84532)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc serves chain 8453")

	err = VerifyChainID(context.Background(), fixedChainID{err: errors.New("dial tcp: refused")}, 84532)
	assert.ErrorContains(t, err, "get chain id")
}

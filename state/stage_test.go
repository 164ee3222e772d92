// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/thor"
)

func TestStage(t *testing.T) {
	db := kv.NewMem()
	stater := NewStater(db)
	st := stater.NewState()

	addr := thor.BytesToAddress([]byte("acc1"))
	storage := map[thor.Bytes32]uint64{
		thor.BytesToBytes32([]byte("s1")): 1,
		thor.BytesToBytes32([]byte("s2")): 2,
		thor.BytesToBytes32([]byte("s3")): 3,
	}
	for k, v := range storage {
		require.NoError(t, st.EncodeStorage(addr, k, encodeUint(v)))
	}

	stage := st.Stage()
	assert.Equal(t, 3, stage.Len())
	hash := stage.Hash()

	root, err := stage.Commit()
	require.NoError(t, err)
	assert.Equal(t, hash, root)

	// fresh stater bypasses the shared cache
	st = NewStater(db).NewState()
	for k, v := range storage {
		var got uint64
		require.NoError(t, st.DecodeStorage(addr, k, decodeUint(&got)))
		assert.Equal(t, v, got)
	}

	// deleting a record removes it from the store
	st.SetRawStorage(addr, thor.BytesToBytes32([]byte("s1")), nil)
	_, err = st.Stage().Commit()
	require.NoError(t, err)

	has, err := storageBucket.NewGetter(db).Has(storageKey{addr, thor.BytesToBytes32([]byte("s1"))}.bytes())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStageHashDeterministic(t *testing.T) {
	addr := thor.BytesToAddress([]byte("acc1"))
	k1 := thor.BytesToBytes32([]byte("a"))
	k2 := thor.BytesToBytes32([]byte("b"))

	s1 := NewStater(kv.NewMem()).NewState()
	require.NoError(t, s1.EncodeStorage(addr, k1, encodeUint(1)))
	require.NoError(t, s1.EncodeStorage(addr, k2, encodeUint(2)))

	s2 := NewStater(kv.NewMem()).NewState()
	require.NoError(t, s2.EncodeStorage(addr, k2, encodeUint(2)))
	require.NoError(t, s2.EncodeStorage(addr, k1, encodeUint(1)))

	assert.Equal(t, s1.Stage().Hash(), s2.Stage().Hash())
}

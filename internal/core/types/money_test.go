package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("2.50")
	require.NoError(t, err)
	assert.True(t, MustMoney("2.50").Equal(m))

	m, err = NewMoneyFromString("2.505")
	require.NoError(t, err)
	assert.True(t, MustMoney("2.50").Equal(m), "values round to two fraction digits")

	_, err = NewMoneyFromString("not a number")
	assert.Error(t, err)
}

func TestMulQuantity(t *testing.T) {
	price := MustMoney("2.50")

	assert.True(t, MustMoney("25.00").Equal(MulQuantity(price, 10)))
	assert.True(t, MustMoney("0.00").Equal(MulQuantity(price, 0)))

	// Repeated addition and multiplication agree, no float drift
	sum := Zero()
	for i := 0; i < 3; i++ {
		sum = sum.Add(MustMoney("0.10"))
	}
	assert.True(t, sum.Equal(MulQuantity(MustMoney("0.10"), 3)))
}

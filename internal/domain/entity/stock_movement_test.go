package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Los códigos enteros están persistidos: este test congela el mapeo para que
// una renumeración accidental falle en CI antes de corromper datos.
func TestMovementType_CodigosEstables(t *testing.T) {
	assert.Equal(t, MovementType(1), MovementPurchase)
	assert.Equal(t, MovementType(2), MovementSale)
	assert.Equal(t, MovementType(3), MovementAdjustment)
	assert.Equal(t, MovementType(4), MovementTransfer)
	assert.Equal(t, MovementType(5), MovementReturn)
	assert.Equal(t, MovementType(6), MovementDamage)
}

func TestMovementType_ParseYString(t *testing.T) {
	for _, typ := range []MovementType{
		MovementPurchase, MovementSale, MovementAdjustment,
		MovementTransfer, MovementReturn, MovementDamage,
	} {
		parsed, ok := ParseMovementType(typ.String())
		assert.True(t, ok)
		assert.Equal(t, typ, parsed)
		assert.True(t, typ.IsValid())
	}

	_, ok := ParseMovementType("NO-EXISTE")
	assert.False(t, ok)
	assert.Equal(t, "UNKNOWN", MovementType(0).String())
	assert.False(t, MovementType(0).IsValid())
	assert.False(t, MovementType(7).IsValid())
}
